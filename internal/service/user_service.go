package service

import (
	"context"

	"price-catalog/internal/models"
	"price-catalog/internal/util"

	"go.uber.org/zap"
)

// UserStore is the persistence contract for user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	TouchUserLogin(ctx context.Context, uid string) (*models.User, error)
	UpdateUserName(ctx context.Context, uid, name string) (*models.User, error)
	DeleteUser(ctx context.Context, uid string) error
}

// UserService mirrors identity-provider accounts into the local users table.
type UserService struct {
	store  UserStore
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(store UserStore) *UserService {
	return &UserService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// CreateUserRequest represents a signup triggered after identity verification
type CreateUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

// UpdateUserNameRequest represents a display-name change
type UpdateUserNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create registers a user record for an authenticated uid
func (s *UserService) Create(ctx context.Context, uid string, req *CreateUserRequest) (*models.User, error) {
	user := &models.User{
		UID:   uid,
		Email: req.Email,
		Name:  req.Name,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("User created", zap.String("uid", uid))
	return user, nil
}

// Login refreshes the user's last login time
func (s *UserService) Login(ctx context.Context, uid string) (*models.User, error) {
	return s.store.TouchUserLogin(ctx, uid)
}

// Me returns the user record for an authenticated uid
func (s *UserService) Me(ctx context.Context, uid string) (*models.User, error) {
	return s.store.GetUserByUID(ctx, uid)
}

// UpdateName changes the user's display name
func (s *UserService) UpdateName(ctx context.Context, uid string, req *UpdateUserNameRequest) (*models.User, error) {
	return s.store.UpdateUserName(ctx, uid, req.Name)
}

// Delete removes the user record
func (s *UserService) Delete(ctx context.Context, uid string) error {
	return s.store.DeleteUser(ctx, uid)
}
