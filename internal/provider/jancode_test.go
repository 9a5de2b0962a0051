package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchByBarcode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("appId"))
		assert.Equal(t, "4901234567894", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"product": [{
				"codeNumber": "4901234567894",
				"itemName": "タマゴ 10個入り",
				"makerName": "テストメーカー",
				"brandName": "",
				"itemImageUrl": "https://images.example.com/tamago.jpg"
			}]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)

	product, err := client.FetchByBarcode(context.Background(), "4901234567894")
	require.NoError(t, err)
	require.NotNil(t, product)

	assert.Equal(t, "4901234567894", product.CodeNumber)
	assert.Equal(t, "タマゴ 10個入り", product.ItemName)
	assert.Equal(t, "テストメーカー", product.MakerName)
	assert.Empty(t, product.BrandName)
	assert.Equal(t, "https://images.example.com/tamago.jpg", product.ItemImageURL)
}

func TestFetchByBarcodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"product": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)

	product, err := client.FetchByBarcode(context.Background(), "4999999999999")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestFetchByBarcodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5*time.Second)

	_, err := client.FetchByBarcode(context.Background(), "4901234567894")
	assert.Error(t, err)
}

func TestFetchByBarcodeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"product": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 20*time.Millisecond)

	_, err := client.FetchByBarcode(context.Background(), "4901234567894")
	assert.Error(t, err)
}
