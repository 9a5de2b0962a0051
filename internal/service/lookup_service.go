package service

import (
	"context"

	"price-catalog/internal/errs"
	"price-catalog/internal/models"
	"price-catalog/internal/provider"
	"price-catalog/internal/util"

	"go.uber.org/zap"
)

// unknownField substitutes blank descriptive fields from the provider.
const unknownField = "不明"

// ProductProvider is the external product-data collaborator.
type ProductProvider interface {
	FetchByBarcode(ctx context.Context, barcode string) (*provider.Product, error)
}

// ImageEnricher maps a barcode and source image URL to a stable cacheable
// URL. Implementations must degrade to the source URL rather than fail.
type ImageEnricher interface {
	CachedURL(ctx context.Context, barcode, sourceURL string) string
}

// LookupService resolves scanned barcodes: locally catalogued products are
// returned with their prices, unknown ones fall back to the external
// provider as an unpersisted preview.
type LookupService struct {
	store    CatalogStore
	provider ProductProvider
	images   ImageEnricher
	logger   *zap.Logger
}

// NewLookupService creates a new lookup service
func NewLookupService(store CatalogStore, productProvider ProductProvider, images ImageEnricher) *LookupService {
	return &LookupService{
		store:    store,
		provider: productProvider,
		images:   images,
		logger:   util.GetLogger(),
	}
}

// LookupByBarcode returns the catalogued product for a barcode, or a preview
// mapped from the external provider. The preview is never persisted; the
// registration flag tells the client which flow to start. The provider's
// canonical code may differ from the scanned one in its trailing check
// digit, so registration is decided by a second local lookup on that code.
func (s *LookupService) LookupByBarcode(ctx context.Context, barcode string) (*ProductDetail, error) {
	ctx, span := util.StartSpan(ctx, "LookupService.LookupByBarcode")
	defer span.End()

	product, err := s.store.GetProductByBarcode(ctx, barcode)
	if err == nil {
		prices, err := s.store.GetPricesByProductID(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		sortPricesAscending(prices)
		if prices == nil {
			prices = []models.PriceEntry{}
		}

		util.LookupsTotal.WithLabelValues("local").Inc()
		return &ProductDetail{
			ID:           product.ID,
			Name:         product.Name,
			MakerName:    product.MakerName,
			BrandName:    product.BrandName,
			Barcode:      product.Barcode,
			Prices:       prices,
			IsRegistered: true,
		}, nil
	}
	if !errs.IsKind(err, errs.NotFound) {
		return nil, err
	}

	upstream, err := s.provider.FetchByBarcode(ctx, barcode)
	if err != nil {
		util.LookupFailuresTotal.WithLabelValues("upstream_unavailable").Inc()
		s.logger.Warn("Provider lookup failed",
			zap.String("barcode", barcode),
			zap.Error(err))
		return nil, errs.Wrap(errs.UpstreamUnavailable, err, "product data provider unavailable")
	}
	if upstream == nil {
		util.LookupFailuresTotal.WithLabelValues("not_found").Inc()
		return nil, errs.Errorf(errs.NotFound, "product not found: %s", barcode)
	}

	registered := false
	if _, err := s.store.GetProductByBarcode(ctx, upstream.CodeNumber); err == nil {
		registered = true
	} else if !errs.IsKind(err, errs.NotFound) {
		return nil, err
	}

	imageURL := orUnknown(upstream.ItemImageURL)
	if s.images != nil && upstream.ItemImageURL != "" {
		imageURL = s.images.CachedURL(ctx, upstream.CodeNumber, upstream.ItemImageURL)
	}

	makerName := orUnknown(upstream.MakerName)
	brandName := orUnknown(upstream.BrandName)

	util.LookupsTotal.WithLabelValues("upstream").Inc()
	return &ProductDetail{
		Name:         orUnknown(upstream.ItemName),
		MakerName:    &makerName,
		BrandName:    &brandName,
		Barcode:      upstream.CodeNumber,
		ImageURL:     imageURL,
		Prices:       []models.PriceEntry{},
		IsRegistered: registered,
	}, nil
}

func orUnknown(s string) string {
	if s == "" {
		return unknownField
	}
	return s
}
