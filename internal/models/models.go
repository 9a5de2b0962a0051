package models

import "time"

// Store is a retail store prices are recorded against.
type Store struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Product is a catalogued retail product. The barcode is the natural key:
// one product per distinct barcode, and the barcode never changes after
// registration.
type Product struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	MakerName *string   `db:"maker_name" json:"maker_name"`
	BrandName *string   `db:"brand_name" json:"brand_name"`
	Barcode   string    `db:"barcode" json:"barcode"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ProductPrice is a store's current price for a product. At most one row
// exists per (product, store) pair; updates overwrite in place, so there is
// no price history.
type ProductPrice struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	StoreID   int64     `db:"store_id" json:"store_id"`
	Price     int64     `db:"price" json:"price"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PriceEntry is a price row joined with its store, as returned to clients.
type PriceEntry struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	StoreID   int64     `db:"store_id" json:"store_id"`
	StoreName string    `db:"store_name" json:"store_name"`
	Price     int64     `db:"price" json:"price"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User is an authenticated account. Identity lives in the external provider;
// only the uid and profile basics are mirrored here.
type User struct {
	UID            string    `db:"uid" json:"uid"`
	Email          string    `db:"email" json:"email"`
	Name           string    `db:"name" json:"name"`
	LastLoggedInAt time.Time `db:"last_logged_in_at" json:"last_logged_in_at"`
}
