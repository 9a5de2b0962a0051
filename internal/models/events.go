package models

import "time"

// Event types
const (
	EventTypeProductRegistered = "PRODUCT_REGISTERED"
	EventTypePriceUpdated      = "PRICE_UPDATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductRegisteredEvent published when a new product enters the catalog
type ProductRegisteredEvent struct {
	BaseEvent
	ProductID int64  `json:"product_id"`
	Barcode   string `json:"barcode"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url,omitempty"`
	StoreID   int64  `json:"store_id"`
	Price     int64  `json:"price"`
}

// PriceUpdatedEvent published when a store's price for a product is upserted
type PriceUpdatedEvent struct {
	BaseEvent
	ProductID int64     `json:"product_id"`
	Barcode   string    `json:"barcode"`
	StoreID   int64     `json:"store_id"`
	Price     int64     `json:"price"`
	Created   bool      `json:"created"`
	UpdatedAt time.Time `json:"updated_at"`
}
