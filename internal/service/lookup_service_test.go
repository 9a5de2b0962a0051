package service

import (
	"context"
	"errors"
	"testing"

	"price-catalog/internal/errs"
	"price-catalog/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	product *provider.Product
	err     error
	queries []string
}

func (f *fakeProvider) FetchByBarcode(_ context.Context, barcode string) (*provider.Product, error) {
	f.queries = append(f.queries, barcode)
	return f.product, f.err
}

type fakeEnricher struct{}

func (fakeEnricher) CachedURL(_ context.Context, barcode, _ string) string {
	return "https://cdn.example.com/image/fetch/" + barcode
}

func TestLookupLocalHit(t *testing.T) {
	fs := newFakeStore()
	storeA := fs.addStore("スーパーA")
	storeB := fs.addStore("スーパーB")
	catalog := NewCatalogService(fs, nil)

	_, err := catalog.RegisterProduct(context.Background(), &RegisterProductRequest{
		Name:    "タマゴ",
		Barcode: "4901234567894",
		Price:   300,
		StoreID: storeA,
	})
	require.NoError(t, err)
	_, err = catalog.AddPrice(context.Background(), "4901234567894", &AddPriceRequest{Price: 250, StoreID: storeB})
	require.NoError(t, err)

	p := &fakeProvider{}
	svc := NewLookupService(fs, p, nil)

	detail, err := svc.LookupByBarcode(context.Background(), "4901234567894")
	require.NoError(t, err)

	assert.True(t, detail.IsRegistered)
	assert.Equal(t, "タマゴ", detail.Name)
	require.Len(t, detail.Prices, 2)
	assert.Equal(t, int64(250), detail.Prices[0].Price)
	assert.Equal(t, "スーパーB", detail.Prices[0].StoreName)

	// No upstream call when the catalog already has the barcode.
	assert.Empty(t, p.queries)
}

func TestLookupUpstreamFallback(t *testing.T) {
	fs := newFakeStore()
	p := &fakeProvider{product: &provider.Product{
		CodeNumber:   "4901234567894",
		ItemName:     "タマゴ 10個入り",
		MakerName:    "テストメーカー",
		BrandName:    "",
		ItemImageURL: "https://images.example.com/tamago.jpg",
	}}
	svc := NewLookupService(fs, p, fakeEnricher{})

	detail, err := svc.LookupByBarcode(context.Background(), "490123456789")
	require.NoError(t, err)

	assert.False(t, detail.IsRegistered)
	assert.Equal(t, "タマゴ 10個入り", detail.Name)
	require.NotNil(t, detail.MakerName)
	assert.Equal(t, "テストメーカー", *detail.MakerName)

	// Blank provider fields are replaced by the placeholder.
	require.NotNil(t, detail.BrandName)
	assert.Equal(t, "不明", *detail.BrandName)

	// The provider's canonical code wins over the scanned one.
	assert.Equal(t, "4901234567894", detail.Barcode)

	assert.Equal(t, "https://cdn.example.com/image/fetch/4901234567894", detail.ImageURL)
	assert.Empty(t, detail.Prices)

	// The preview is not persisted.
	assert.Empty(t, fs.products)
}

func TestLookupCanonicalBarcodeVariant(t *testing.T) {
	fs := newFakeStore()
	storeID := fs.addStore("スーパーA")
	catalog := NewCatalogService(fs, nil)

	// Registered under the canonical thirteen-digit code.
	_, err := catalog.RegisterProduct(context.Background(), &RegisterProductRequest{
		Name:    "タマゴ",
		Barcode: "4901234567894",
		Price:   300,
		StoreID: storeID,
	})
	require.NoError(t, err)

	p := &fakeProvider{product: &provider.Product{
		CodeNumber: "4901234567894",
		ItemName:   "タマゴ 10個入り",
	}}
	svc := NewLookupService(fs, p, nil)

	// The scan dropped the check digit; the local catalog misses but the
	// second lookup on the canonical code flags the product as registered.
	detail, err := svc.LookupByBarcode(context.Background(), "490123456789")
	require.NoError(t, err)

	assert.True(t, detail.IsRegistered)
	assert.Equal(t, "4901234567894", detail.Barcode)
	assert.Equal(t, []string{"490123456789"}, p.queries)
}

func TestLookupUnknownEverywhere(t *testing.T) {
	svc := NewLookupService(newFakeStore(), &fakeProvider{}, nil)

	_, err := svc.LookupByBarcode(context.Background(), "4999999999999")
	require.Error(t, err)
	assert.Equal(t, errs.NotFound, errs.KindOf(err))
}

func TestLookupProviderUnavailable(t *testing.T) {
	svc := NewLookupService(newFakeStore(), &fakeProvider{err: errors.New("connection refused")}, nil)

	_, err := svc.LookupByBarcode(context.Background(), "4901234567894")
	require.Error(t, err)
	assert.Equal(t, errs.UpstreamUnavailable, errs.KindOf(err))
}

func TestLookupBlankImageSkipsEnrichment(t *testing.T) {
	p := &fakeProvider{product: &provider.Product{
		CodeNumber: "4901234567894",
		ItemName:   "タマゴ",
	}}
	svc := NewLookupService(newFakeStore(), p, fakeEnricher{})

	detail, err := svc.LookupByBarcode(context.Background(), "4901234567894")
	require.NoError(t, err)
	assert.Equal(t, "不明", detail.ImageURL)
}
