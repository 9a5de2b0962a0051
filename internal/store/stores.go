package store

import (
	"context"
	"database/sql"
	"errors"

	"price-catalog/internal/errs"
	"price-catalog/internal/models"
)

// CreateStore registers a new store
func (s *Store) CreateStore(ctx context.Context, st *models.Store) error {
	return s.db.GetContext(ctx, &st.ID,
		"INSERT INTO stores (name) VALUES ($1) RETURNING id", st.Name)
}

// GetStores retrieves all stores
func (s *Store) GetStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := s.db.SelectContext(ctx, &stores, "SELECT * FROM stores ORDER BY id")
	return stores, err
}

// GetStoreByID retrieves a store by ID
func (s *Store) GetStoreByID(ctx context.Context, id int64) (*models.Store, error) {
	var st models.Store
	err := s.db.GetContext(ctx, &st, "SELECT * FROM stores WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.Errorf(errs.NotFound, "store not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}
