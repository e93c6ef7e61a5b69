package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/lenddesk/lenddesk-backend/internal/items"
	"github.com/lenddesk/lenddesk-backend/internal/loans"
	"github.com/lenddesk/lenddesk-backend/internal/users"
)

// Store is the full record-store surface. The JSON document store and the
// database store both implement it; domain services consume only the
// slices they declare themselves.
type Store interface {
	AddItem(ctx context.Context, item items.Item) error
	ListItems(ctx context.Context) ([]items.Item, error)
	HasItem(ctx context.Context, itemID uuid.UUID) (bool, error)

	AddUser(ctx context.Context, user users.User) error
	ListUsers(ctx context.Context) ([]users.User, error)
	HasUser(ctx context.Context, userID uuid.UUID) (bool, error)

	AddLoan(ctx context.Context, loan loans.Loan) error
	LoansForItem(ctx context.Context, itemID uuid.UUID) ([]loans.Loan, error)

	Ping(ctx context.Context) error
	Close() error
}
