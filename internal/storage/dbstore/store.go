package dbstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lenddesk/lenddesk-backend/internal/items"
	"github.com/lenddesk/lenddesk-backend/internal/loans"
	"github.com/lenddesk/lenddesk-backend/internal/users"
	"github.com/lenddesk/lenddesk-backend/pkg/db"
	"github.com/lenddesk/lenddesk-backend/pkg/enums"
)

// Store is the GORM-backed record store. It keeps the same append and
// lookup semantics as the JSON document store: loans are stored flat with
// their loan_type discriminant and textual interval timestamps, and
// per-item queries come back in insertion order.
type Store struct {
	client *db.Client
}

type itemRow struct {
	Seq             int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	ID              uuid.UUID `gorm:"column:id;uniqueIndex"`
	Name            string    `gorm:"column:name"`
	InventoryNumber string    `gorm:"column:inventory_number"`
}

func (itemRow) TableName() string { return "items" }

type userRow struct {
	Seq  int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	ID   uuid.UUID `gorm:"column:id;uniqueIndex"`
	Name string    `gorm:"column:name"`
}

func (userRow) TableName() string { return "users" }

type loanRow struct {
	Seq       int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	ID        uuid.UUID `gorm:"column:id;uniqueIndex"`
	ItemID    uuid.UUID `gorm:"column:item_id;index"`
	UserID    uuid.UUID `gorm:"column:user_id"`
	StartTime string    `gorm:"column:start_time"`
	EndTime   string    `gorm:"column:end_time"`
	Variant   string    `gorm:"column:loan_type"`
	Note      string    `gorm:"column:note"`
}

func (loanRow) TableName() string { return "loans" }

// New wraps the shared database client as a record store.
func New(client *db.Client) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &Store{client: client}, nil
}

// AutoMigrate creates the three record tables. Intended for dev
// environments behind the auto-migrate config flag.
func (s *Store) AutoMigrate(ctx context.Context) error {
	return s.client.DB().WithContext(ctx).AutoMigrate(&itemRow{}, &userRow{}, &loanRow{})
}

// AddItem appends an item record.
func (s *Store) AddItem(ctx context.Context, item items.Item) error {
	row := itemRow{
		ID:              item.ID,
		Name:            item.Name,
		InventoryNumber: item.InventoryNumber,
	}
	return s.client.DB().WithContext(ctx).Create(&row).Error
}

// ListItems returns all items in insertion order.
func (s *Store) ListItems(ctx context.Context) ([]items.Item, error) {
	var rows []itemRow
	if err := s.client.DB().WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]items.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, items.Item{
			ID:              row.ID,
			Name:            row.Name,
			InventoryNumber: row.InventoryNumber,
		})
	}
	return out, nil
}

// HasItem reports whether an item with the given id exists.
func (s *Store) HasItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	return s.exists(ctx, &itemRow{}, itemID)
}

// AddUser appends a user record.
func (s *Store) AddUser(ctx context.Context, user users.User) error {
	row := userRow{
		ID:   user.ID,
		Name: user.Name,
	}
	return s.client.DB().WithContext(ctx).Create(&row).Error
}

// ListUsers returns all users in insertion order.
func (s *Store) ListUsers(ctx context.Context) ([]users.User, error) {
	var rows []userRow
	if err := s.client.DB().WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]users.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, users.User{
			ID:   row.ID,
			Name: row.Name,
		})
	}
	return out, nil
}

// HasUser reports whether a user with the given id exists.
func (s *Store) HasUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.exists(ctx, &userRow{}, userID)
}

// AddLoan appends a loan record.
func (s *Store) AddLoan(ctx context.Context, loan loans.Loan) error {
	row := loanRow{
		ID:        loan.ID,
		ItemID:    loan.ItemID,
		UserID:    loan.UserID,
		StartTime: loan.StartTime,
		EndTime:   loan.EndTime,
		Variant:   loan.Variant.String(),
		Note:      loan.Note,
	}
	return s.client.DB().WithContext(ctx).Create(&row).Error
}

// LoansForItem returns all loans for the item, any variant, in insertion
// order. Unknown items yield an empty slice.
func (s *Store) LoansForItem(ctx context.Context, itemID uuid.UUID) ([]loans.Loan, error) {
	var rows []loanRow
	err := s.client.DB().WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("seq ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]loans.Loan, 0, len(rows))
	for _, row := range rows {
		out = append(out, loans.Loan{
			ID:        row.ID,
			ItemID:    row.ItemID,
			UserID:    row.UserID,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Variant:   enums.LoanVariant(row.Variant),
			Note:      row.Note,
		})
	}
	return out, nil
}

// Ping verifies the datasource is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close shuts down the pooled connections.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) exists(ctx context.Context, model any, id uuid.UUID) (bool, error) {
	var count int64
	err := s.client.DB().WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
