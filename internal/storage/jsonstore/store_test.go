package jsonstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenddesk/lenddesk-backend/internal/items"
	"github.com/lenddesk/lenddesk-backend/internal/loans"
	"github.com/lenddesk/lenddesk-backend/internal/users"
	"github.com/lenddesk/lenddesk-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lending_db.json")
	store, err := Open(context.Background(), path, testLogger())
	require.NoError(t, err)
	return store, path
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	store, _ := openTestStore(t)

	got, err := store.ListItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	loansList, err := store.LoansForItem(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, loansList)
}

func TestOpenCorruptFileResetsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lending_db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := Open(context.Background(), path, testLogger())
	require.NoError(t, err)

	got, err := store.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenMissingCollectionsDefaultEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lending_db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"items":[]}`), 0o644))

	store, err := Open(context.Background(), path, testLogger())
	require.NoError(t, err)

	got, err := store.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAppendPersistsAndReloads(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()

	item := items.NewItem("Go Cookbook", "B101")
	user := users.NewUser("Jiri Ryska")
	require.NoError(t, store.AddItem(ctx, item))
	require.NoError(t, store.AddUser(ctx, user))

	loan, err := loans.NewLoan("staff", item.ID, user.ID, "2026-11-28 15:00", "2026-11-28 16:00", loans.Extras{Note: "training"})
	require.NoError(t, err)
	require.NoError(t, store.AddLoan(ctx, loan))

	// Reopen from disk: every field and the variant tag must survive.
	reloaded, err := Open(ctx, path, testLogger())
	require.NoError(t, err)

	gotItems, err := reloaded.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, gotItems, 1)
	assert.Equal(t, item, gotItems[0])

	gotLoans, err := reloaded.LoansForItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, gotLoans, 1)
	assert.Equal(t, loan, gotLoans[0])
	assert.Equal(t, "training", gotLoans[0].Note)

	ok, err := reloaded.HasUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoansForItemFiltersAndOrders(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	itemA := items.NewItem("Go Cookbook", "B101")
	itemB := items.NewItem("Go in Action", "B102")
	user := users.NewUser("Jiri Ryska")
	require.NoError(t, store.AddItem(ctx, itemA))
	require.NoError(t, store.AddItem(ctx, itemB))
	require.NoError(t, store.AddUser(ctx, user))

	intervals := [][2]string{
		{"2026-11-28 10:00", "2026-11-28 12:00"},
		{"2026-11-28 12:00", "2026-11-28 14:00"},
		{"2026-11-28 14:00", "2026-11-28 16:00"},
	}
	var want []uuid.UUID
	for i, iv := range intervals {
		target := itemA.ID
		if i == 1 {
			target = itemB.ID
		}
		loan, err := loans.NewLoan("standard", target, user.ID, iv[0], iv[1], loans.Extras{})
		require.NoError(t, err)
		require.NoError(t, store.AddLoan(ctx, loan))
		if target == itemA.ID {
			want = append(want, loan.ID)
		}
	}

	got, err := store.LoansForItem(ctx, itemA.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, want[0], got[0].ID)
	assert.Equal(t, want[1], got[1].ID)
}

func TestHasItemUnknownID(t *testing.T) {
	store, _ := openTestStore(t)

	ok, err := store.HasItem(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddLoanRollsBackOnWriteFailure(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	item := items.NewItem("Go Cookbook", "B101")
	user := users.NewUser("Jiri Ryska")
	require.NoError(t, store.AddItem(ctx, item))
	require.NoError(t, store.AddUser(ctx, user))

	// Point the store at an unwritable path; the in-memory state must not
	// keep a loan the medium rejected.
	store.path = filepath.Join(store.path, "nope", "lending_db.json")

	loan, err := loans.NewLoan("standard", item.ID, user.ID, "2026-11-28 10:00", "2026-11-28 12:00", loans.Extras{})
	require.NoError(t, err)
	require.Error(t, store.AddLoan(ctx, loan))

	got, err := store.LoansForItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPing(t *testing.T) {
	store, _ := openTestStore(t)
	require.NoError(t, store.Ping(context.Background()))

	store.path = filepath.Join("/nonexistent-dir-for-test", "lending_db.json")
	require.Error(t, store.Ping(context.Background()))
}
