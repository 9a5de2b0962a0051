package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"price-catalog/internal/errs"
	"price-catalog/internal/models"
	"price-catalog/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoreFilterAll is the sentinel storeId value that disables store scoping.
const StoreFilterAll = "all"

// CatalogStore is the persistence contract the catalog resolvers run over.
type CatalogStore interface {
	GetProductByBarcode(ctx context.Context, barcode string) (*models.Product, error)
	GetProducts(ctx context.Context) ([]models.Product, error)
	SearchProductsByName(ctx context.Context, terms []string) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product, storeID, price int64) error
	UpsertPrice(ctx context.Context, productID, storeID, price int64) (*models.ProductPrice, bool, error)
	GetPricesByProductID(ctx context.Context, productID int64) ([]models.PriceEntry, error)
	GetPricesByProductIDs(ctx context.Context, productIDs []int64) (map[int64][]models.PriceEntry, error)
	CreateStore(ctx context.Context, st *models.Store) error
	GetStores(ctx context.Context) ([]models.Store, error)
}

// EventPublisher publishes catalog domain events.
type EventPublisher interface {
	PublishProductRegistered(ctx context.Context, event *models.ProductRegisteredEvent) error
	PublishPriceUpdated(ctx context.Context, event *models.PriceUpdatedEvent) error
}

// CatalogService handles product, store and price business logic
type CatalogService struct {
	store     CatalogStore
	publisher EventPublisher
	logger    *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store CatalogStore, publisher EventPublisher) *CatalogService {
	return &CatalogService{
		store:     store,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// RegisterProductRequest represents a request to register a scanned product
type RegisterProductRequest struct {
	Name      string  `json:"name" binding:"required"`
	MakerName *string `json:"maker_name"`
	BrandName *string `json:"brand_name"`
	Barcode   string  `json:"barcode" binding:"required"`
	ImageURL  string  `json:"image_url"`
	Price     int64   `json:"price" binding:"required,gt=0"`
	StoreID   int64   `json:"store_id" binding:"required"`
}

// AddPriceRequest represents a price submission for an existing product
type AddPriceRequest struct {
	Price   int64 `json:"price" binding:"required,gt=0"`
	StoreID int64 `json:"store_id" binding:"required"`
}

// ProductSummary is a product annotated with its ordered price list and the
// cheapest price's store for display.
type ProductSummary struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	MakerName *string             `json:"maker_name"`
	BrandName *string             `json:"brand_name"`
	Barcode   string              `json:"barcode"`
	Prices    []models.PriceEntry `json:"prices"`
	StoreName string              `json:"store_name,omitempty"`
	UpdatedAt *time.Time          `json:"updated_at,omitempty"`
}

// ProductDetail is the full lookup shape, including the registration flag
// used by the client to branch between price entry and product registration.
type ProductDetail struct {
	ID           int64               `json:"id,omitempty"`
	Name         string              `json:"name"`
	MakerName    *string             `json:"maker_name"`
	BrandName    *string             `json:"brand_name"`
	Barcode      string              `json:"barcode"`
	ImageURL     string              `json:"image_url,omitempty"`
	Prices       []models.PriceEntry `json:"prices"`
	IsRegistered bool                `json:"is_registered"`
}

// RegisterProduct creates a product and its first price in one transaction.
// The barcode is the natural key: a duplicate registration signals Conflict.
func (s *CatalogService) RegisterProduct(ctx context.Context, req *RegisterProductRequest) (*ProductDetail, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.RegisterProduct")
	defer span.End()

	product := &models.Product{
		Name:      req.Name,
		MakerName: req.MakerName,
		BrandName: req.BrandName,
		Barcode:   req.Barcode,
	}

	if err := s.store.CreateProduct(ctx, product, req.StoreID, req.Price); err != nil {
		return nil, err
	}

	util.ProductsRegisteredTotal.Inc()
	s.logger.Info("Product registered",
		zap.Int64("product_id", product.ID),
		zap.String("barcode", product.Barcode))

	prices, err := s.store.GetPricesByProductID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	event := &models.ProductRegisteredEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeProductRegistered,
			Timestamp: time.Now(),
		},
		ProductID: product.ID,
		Barcode:   product.Barcode,
		Name:      product.Name,
		ImageURL:  req.ImageURL,
		StoreID:   req.StoreID,
		Price:     req.Price,
	}
	if s.publisher != nil {
		if err := s.publisher.PublishProductRegistered(ctx, event); err != nil {
			s.logger.Error("Failed to publish ProductRegistered event", zap.Error(err))
		}
	}

	return &ProductDetail{
		ID:           product.ID,
		Name:         product.Name,
		MakerName:    product.MakerName,
		BrandName:    product.BrandName,
		Barcode:      product.Barcode,
		ImageURL:     req.ImageURL,
		Prices:       prices,
		IsRegistered: true,
	}, nil
}

// AddPrice records a store's price for the product with the given barcode.
// Exactly one price row exists per (product, store) pair afterwards: a first
// submission inserts, later ones overwrite in place and refresh updated_at.
func (s *CatalogService) AddPrice(ctx context.Context, barcode string, req *AddPriceRequest) (*models.ProductPrice, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.AddPrice")
	defer span.End()

	product, err := s.store.GetProductByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	price, created, err := s.store.UpsertPrice(ctx, product.ID, req.StoreID, req.Price)
	if err != nil {
		return nil, err
	}

	result := "updated"
	if created {
		result = "created"
	}
	util.PriceUpsertsTotal.WithLabelValues(result).Inc()
	s.logger.Info("Price upserted",
		zap.Int64("product_id", product.ID),
		zap.Int64("store_id", req.StoreID),
		zap.Int64("price", req.Price),
		zap.String("result", result))

	event := &models.PriceUpdatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypePriceUpdated,
			Timestamp: time.Now(),
		},
		ProductID: product.ID,
		Barcode:   product.Barcode,
		StoreID:   req.StoreID,
		Price:     req.Price,
		Created:   created,
		UpdatedAt: price.UpdatedAt,
	}
	if s.publisher != nil {
		if err := s.publisher.PublishPriceUpdated(ctx, event); err != nil {
			s.logger.Error("Failed to publish PriceUpdated event", zap.Error(err))
		}
	}

	return price, nil
}

// Search resolves a free-text term to a ranked product list. A product
// matches if its name contains the term as given, or with katakana folded to
// hiragana, or with hiragana folded to katakana. Results are ordered by name
// descending; each product's prices are ordered cheapest first. A non-"all"
// storeID keeps only products whose cheapest price belongs to that store.
func (s *CatalogService) Search(ctx context.Context, term, storeID string) ([]ProductSummary, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.Search")
	defer span.End()

	util.SearchesTotal.Inc()

	var filterID int64
	filtered := storeID != "" && storeID != StoreFilterAll
	if filtered {
		var err error
		filterID, err = strconv.ParseInt(storeID, 10, 64)
		if err != nil {
			return nil, errs.Errorf(errs.InvalidArgument, "invalid storeId: %s", storeID)
		}
	}

	terms := []string{
		term,
		FoldKatakanaToHiragana(term),
		FoldHiraganaToKatakana(term),
	}

	products, err := s.store.SearchProductsByName(ctx, terms)
	if err != nil {
		return nil, err
	}

	// Plain lexicographic descending, independent of database collation.
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Name > products[j].Name
	})

	return s.buildSummaries(ctx, products, filtered, filterID)
}

// ListProducts returns the whole catalog with ordered prices
func (s *CatalogService) ListProducts(ctx context.Context) ([]ProductSummary, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListProducts")
	defer span.End()

	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	return s.buildSummaries(ctx, products, false, 0)
}

func (s *CatalogService) buildSummaries(ctx context.Context, products []models.Product, filtered bool, filterID int64) ([]ProductSummary, error) {
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	priceMap, err := s.store.GetPricesByProductIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		prices := priceMap[p.ID]
		sortPricesAscending(prices)

		// A product with no prices belongs to no store.
		if filtered && (len(prices) == 0 || prices[0].StoreID != filterID) {
			continue
		}

		summary := ProductSummary{
			ID:        p.ID,
			Name:      p.Name,
			MakerName: p.MakerName,
			BrandName: p.BrandName,
			Barcode:   p.Barcode,
			Prices:    prices,
		}
		if summary.Prices == nil {
			summary.Prices = []models.PriceEntry{}
		}
		if len(prices) > 0 {
			summary.StoreName = prices[0].StoreName
			updatedAt := prices[0].UpdatedAt
			summary.UpdatedAt = &updatedAt
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// sortPricesAscending guarantees the cheapest-first contract even if the
// store returned rows in a different order.
func sortPricesAscending(prices []models.PriceEntry) {
	sort.SliceStable(prices, func(i, j int) bool {
		return prices[i].Price < prices[j].Price
	})
}

// CreateStore registers a new store
func (s *CatalogService) CreateStore(ctx context.Context, name string) (*models.Store, error) {
	st := &models.Store{Name: name}
	if err := s.store.CreateStore(ctx, st); err != nil {
		return nil, err
	}
	s.logger.Info("Store registered", zap.Int64("store_id", st.ID), zap.String("name", st.Name))
	return st, nil
}

// ListStores returns all registered stores
func (s *CatalogService) ListStores(ctx context.Context) ([]models.Store, error) {
	return s.store.GetStores(ctx)
}
