package users

import (
	"context"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/lenddesk/lenddesk-backend/pkg/errors"
)

// User is a borrower. Immutable once created.
type User struct {
	ID   uuid.UUID `json:"user_id"`
	Name string    `json:"name"`
}

// NewUser builds a user record with a generated id.
func NewUser(name string) User {
	return User{
		ID:   uuid.New(),
		Name: name,
	}
}

// Store is the slice of the record store the user service needs.
type Store interface {
	AddUser(ctx context.Context, user User) error
	ListUsers(ctx context.Context) ([]User, error)
}

// ServiceParams groups dependencies for the user service.
type ServiceParams struct {
	Store Store
}

// Service exposes borrower registration and listing.
type Service interface {
	Create(ctx context.Context, name string) (User, error)
	List(ctx context.Context) ([]User, error)
}

type service struct {
	store Store
}

// NewService builds a user service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "record store is required")
	}
	return &service{store: params.Store}, nil
}

// Create registers a new borrower and persists it through the store.
func (s *service) Create(ctx context.Context, name string) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, pkgerrors.New(pkgerrors.CodeValidation, "user name is required")
	}

	user := NewUser(name)
	if err := s.store.AddUser(ctx, user); err != nil {
		return User{}, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persisting user")
	}
	return user, nil
}

// List returns every registered borrower in insertion order.
func (s *service) List(ctx context.Context) ([]User, error) {
	list, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading users")
	}
	return list, nil
}
