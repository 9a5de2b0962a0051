package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"price-catalog/internal/errs"
	"price-catalog/internal/models"

	"github.com/lib/pq"
)

// GetProductByBarcode retrieves a product by its barcode
func (s *Store) GetProductByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE barcode = $1", barcode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.Errorf(errs.NotFound, "product not found: %s", barcode)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves all products
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products, "SELECT * FROM products ORDER BY id")
	return products, err
}

// SearchProductsByName retrieves products whose name contains any of the
// given terms, case-insensitively. Ordered by name descending.
func (s *Store) SearchProductsByName(ctx context.Context, terms []string) ([]models.Product, error) {
	patterns := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		if seen[term] {
			continue
		}
		seen[term] = true
		patterns = append(patterns, "%"+escapeLike(term)+"%")
	}

	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE name ILIKE ANY($1) ORDER BY name DESC",
		pq.Array(patterns))
	return products, err
}

// CreateProduct inserts a product together with its first price in one
// transaction. A duplicate barcode signals Conflict.
func (s *Store) CreateProduct(ctx context.Context, product *models.Product, storeID, price int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.GetContext(ctx, product, `
		INSERT INTO products (name, maker_name, brand_name, barcode)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		product.Name, product.MakerName, product.BrandName, product.Barcode)
	if err != nil {
		return mapPgError(err, "failed to create product")
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO product_prices (product_id, store_id, price, updated_at)
		VALUES ($1, $2, $3, NOW())`,
		product.ID, storeID, price)
	if err != nil {
		return mapPgError(err, "failed to create initial price")
	}

	return tx.Commit()
}

func mapPgError(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return errs.Wrap(errs.Conflict, err, msg)
		case "23503": // foreign_key_violation
			return errs.Wrap(errs.NotFound, err, msg)
		}
	}
	return err
}

// escapeLike escapes LIKE metacharacters so user terms match literally.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
