package store

import (
	"context"

	"price-catalog/internal/models"

	"github.com/jmoiron/sqlx"
)

// UpsertPrice inserts or updates the single price row for a (product, store)
// pair and stamps updated_at. The returned bool reports whether a new row was
// created. A missing store surfaces as NotFound via the foreign key.
func (s *Store) UpsertPrice(ctx context.Context, productID, storeID, price int64) (*models.ProductPrice, bool, error) {
	var row struct {
		models.ProductPrice
		Inserted bool `db:"inserted"`
	}

	err := s.db.GetContext(ctx, &row, `
		INSERT INTO product_prices (product_id, store_id, price, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (product_id, store_id)
		DO UPDATE SET price = EXCLUDED.price, updated_at = NOW()
		RETURNING id, product_id, store_id, price, updated_at, (xmax = 0) AS inserted`,
		productID, storeID, price)
	if err != nil {
		return nil, false, mapPgError(err, "failed to upsert price")
	}

	return &row.ProductPrice, row.Inserted, nil
}

// GetPricesByProductID retrieves a product's prices with their stores,
// cheapest first.
func (s *Store) GetPricesByProductID(ctx context.Context, productID int64) ([]models.PriceEntry, error) {
	var prices []models.PriceEntry
	err := s.db.SelectContext(ctx, &prices, `
		SELECT pp.id, pp.product_id, pp.store_id, st.name AS store_name, pp.price, pp.updated_at
		FROM product_prices pp
		JOIN stores st ON st.id = pp.store_id
		WHERE pp.product_id = $1
		ORDER BY pp.price ASC, pp.id ASC`, productID)
	return prices, err
}

// GetPricesByProductIDs retrieves prices for multiple products, grouped by
// product, each group cheapest first.
func (s *Store) GetPricesByProductIDs(ctx context.Context, productIDs []int64) (map[int64][]models.PriceEntry, error) {
	result := make(map[int64][]models.PriceEntry, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`
		SELECT pp.id, pp.product_id, pp.store_id, st.name AS store_name, pp.price, pp.updated_at
		FROM product_prices pp
		JOIN stores st ON st.id = pp.store_id
		WHERE pp.product_id IN (?)
		ORDER BY pp.price ASC, pp.id ASC`, productIDs)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var prices []models.PriceEntry
	if err := s.db.SelectContext(ctx, &prices, query, args...); err != nil {
		return nil, err
	}

	for _, p := range prices {
		result[p.ProductID] = append(result[p.ProductID], p)
	}
	return result, nil
}
