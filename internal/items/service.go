package items

import (
	"context"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/lenddesk/lenddesk-backend/pkg/errors"
)

// Item is a loanable physical object. Immutable once created.
type Item struct {
	ID              uuid.UUID `json:"item_id"`
	Name            string    `json:"name"`
	InventoryNumber string    `json:"inventory_number"`
}

// NewItem builds an item record with a generated id.
func NewItem(name, inventoryNumber string) Item {
	return Item{
		ID:              uuid.New(),
		Name:            name,
		InventoryNumber: inventoryNumber,
	}
}

// Store is the slice of the record store the item service needs.
type Store interface {
	AddItem(ctx context.Context, item Item) error
	ListItems(ctx context.Context) ([]Item, error)
}

// ServiceParams groups dependencies for the item service.
type ServiceParams struct {
	Store Store
}

// Service exposes item registration and listing.
type Service interface {
	Create(ctx context.Context, name, inventoryNumber string) (Item, error)
	List(ctx context.Context) ([]Item, error)
}

type service struct {
	store Store
}

// NewService builds an item service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "record store is required")
	}
	return &service{store: params.Store}, nil
}

// Create registers a new item and persists it through the store.
func (s *service) Create(ctx context.Context, name, inventoryNumber string) (Item, error) {
	name = strings.TrimSpace(name)
	inventoryNumber = strings.TrimSpace(inventoryNumber)
	if name == "" {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if inventoryNumber == "" {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "inventory number is required")
	}

	item := NewItem(name, inventoryNumber)
	if err := s.store.AddItem(ctx, item); err != nil {
		return Item{}, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persisting item")
	}
	return item, nil
}

// List returns every registered item in insertion order.
func (s *service) List(ctx context.Context) ([]Item, error) {
	list, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "loading items")
	}
	return list, nil
}
