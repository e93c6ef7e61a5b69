package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/lenddesk/lenddesk-backend/internal/items"
	"github.com/lenddesk/lenddesk-backend/internal/loans"
	"github.com/lenddesk/lenddesk-backend/internal/users"
	"github.com/lenddesk/lenddesk-backend/pkg/logger"
)

// document is the persisted layout: three named, ordered collections in a
// single JSON file. Absent collections default to empty on load.
type document struct {
	Items []items.Item `json:"items"`
	Users []users.User `json:"users"`
	Loans []loans.Loan `json:"loans"`
}

// Store is a write-through JSON document store. Every append persists the
// full document before returning, so a caller never observes a success
// that is later lost.
//
// A corrupt backing file is logged and replaced with empty collections on
// open. That discards prior data; callers opting into this store accept
// the reset behavior.
type Store struct {
	path string
	logg *logger.Logger

	mu  sync.Mutex
	doc document
}

// Open loads the document at path. A missing file starts empty and is not
// an error.
func Open(ctx context.Context, path string, logg *logger.Logger) (*Store, error) {
	s := &Store{path: path, logg: logg}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		s.doc = emptyDocument()
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("reading store file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		if logg != nil {
			lctx := logg.WithField(ctx, "path", path)
			logg.Warn(lctx, "store file corrupt, resetting to empty collections")
		}
		s.doc = emptyDocument()
		return s, nil
	}

	normalize(&doc)
	s.doc = doc
	return s, nil
}

func emptyDocument() document {
	return document{
		Items: []items.Item{},
		Users: []users.User{},
		Loans: []loans.Loan{},
	}
}

func normalize(doc *document) {
	if doc.Items == nil {
		doc.Items = []items.Item{}
	}
	if doc.Users == nil {
		doc.Users = []users.User{}
	}
	if doc.Loans == nil {
		doc.Loans = []loans.Loan{}
	}
}

// AddItem appends the item and persists the document.
func (s *Store) AddItem(_ context.Context, item items.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Items = append(s.doc.Items, item)
	if err := s.persist(); err != nil {
		s.doc.Items = s.doc.Items[:len(s.doc.Items)-1]
		return err
	}
	return nil
}

// ListItems returns all items in insertion order.
func (s *Store) ListItems(_ context.Context) ([]items.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]items.Item, len(s.doc.Items))
	copy(out, s.doc.Items)
	return out, nil
}

// HasItem reports whether an item with the given id exists.
func (s *Store) HasItem(_ context.Context, itemID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.doc.Items {
		if item.ID == itemID {
			return true, nil
		}
	}
	return false, nil
}

// AddUser appends the user and persists the document.
func (s *Store) AddUser(_ context.Context, user users.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Users = append(s.doc.Users, user)
	if err := s.persist(); err != nil {
		s.doc.Users = s.doc.Users[:len(s.doc.Users)-1]
		return err
	}
	return nil
}

// ListUsers returns all users in insertion order.
func (s *Store) ListUsers(_ context.Context) ([]users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]users.User, len(s.doc.Users))
	copy(out, s.doc.Users)
	return out, nil
}

// HasUser reports whether a user with the given id exists.
func (s *Store) HasUser(_ context.Context, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.doc.Users {
		if user.ID == userID {
			return true, nil
		}
	}
	return false, nil
}

// AddLoan appends the loan and persists the document.
func (s *Store) AddLoan(_ context.Context, loan loans.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Loans = append(s.doc.Loans, loan)
	if err := s.persist(); err != nil {
		s.doc.Loans = s.doc.Loans[:len(s.doc.Loans)-1]
		return err
	}
	return nil
}

// LoansForItem returns all loans for the item, any variant, in insertion
// order. Unknown items yield an empty slice.
func (s *Store) LoansForItem(_ context.Context, itemID uuid.UUID) ([]loans.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []loans.Loan{}
	for _, loan := range s.doc.Loans {
		if loan.ItemID == itemID {
			out = append(out, loan)
		}
	}
	return out, nil
}

// Ping verifies the store directory is reachable.
func (s *Store) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("store directory unavailable: %w", err)
	}
	return nil
}

// Close is a no-op; every append already persisted synchronously.
func (s *Store) Close() error {
	return nil
}

// persist writes the full document through a temp file and rename so a
// crash mid-write cannot corrupt the existing store.
func (s *Store) persist() error {
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing store file: %w", err)
	}
	return nil
}
