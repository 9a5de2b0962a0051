package worker

import (
	"context"

	"price-catalog/internal/broker"
	"price-catalog/internal/imagecache"
	"price-catalog/internal/models"
	"price-catalog/internal/util"

	"go.uber.org/zap"
)

// CatalogWorker consumes catalog events in the background. Its one job is
// warming the image cache when a product is registered, so the first lookup
// after registration does not pay for the CDN rewrite.
type CatalogWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	images       *imagecache.Cache
	logger       *zap.Logger
}

// NewCatalogWorker creates a new catalog worker
func NewCatalogWorker(consumer *broker.Consumer, images *imagecache.Cache) *CatalogWorker {
	w := &CatalogWorker{
		consumer: consumer,
		images:   images,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnProductRegistered(w.handleProductRegistered)
	w.eventHandler = eventHandler

	return w
}

// Start consumes events until the context is cancelled
func (w *CatalogWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting catalog worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop closes the underlying consumer
func (w *CatalogWorker) Stop() {
	if err := w.consumer.Close(); err != nil {
		w.logger.Error("Failed to close consumer", zap.Error(err))
	}
	w.logger.Info("Catalog worker stopped")
}

func (w *CatalogWorker) handleProductRegistered(ctx context.Context, event *models.ProductRegisteredEvent) error {
	if event.ImageURL == "" {
		return nil
	}

	url := w.images.CachedURL(ctx, event.Barcode, event.ImageURL)
	w.logger.Debug("Warmed image cache",
		zap.String("barcode", event.Barcode),
		zap.String("url", url))
	return nil
}
