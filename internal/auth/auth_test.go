package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.Token != "valid-id-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uid": "user-123"}`))
	}))
	defer srv.Close()

	verifier := NewHTTPVerifier(srv.URL)

	uid, err := verifier.VerifyIDToken(context.Background(), "valid-id-token")
	require.NoError(t, err)
	assert.Equal(t, "user-123", uid)

	_, err = verifier.VerifyIDToken(context.Background(), "bad-token")
	assert.Error(t, err)
}

func TestHTTPVerifierEmptyUID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	verifier := NewHTTPVerifier(srv.URL)

	_, err := verifier.VerifyIDToken(context.Background(), "token")
	assert.Error(t, err)
}
