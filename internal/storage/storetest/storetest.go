// Package storetest holds the behavior every storage.Store implementation
// must share. Implementations call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/internal/storage"
)

// Run exercises a fresh store returned by newStore for each subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	ctx := context.Background()

	t.Run("CreateGroup and GetGroup", func(t *testing.T) {
		store := newStore(t)

		group := &models.Group{
			ID:   "ABC-123",
			Name: "Room ABC-123",
			Members: []models.Member{
				{ID: "m1", Name: "Alice"},
			},
		}
		require.NoError(t, store.CreateGroup(ctx, group))
		assert.NotZero(t, group.CreatedAt)

		got, err := store.GetGroup(ctx, "ABC-123")
		require.NoError(t, err)
		assert.Equal(t, group.ID, got.ID)
		assert.Equal(t, group.Name, got.Name)
		assert.Equal(t, group.CreatedAt, got.CreatedAt)
		assert.Equal(t, group.Members, got.Members)
	})

	t.Run("CreateGroup rejects a taken code", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.CreateGroup(ctx, &models.Group{ID: "DUP-001", Name: "first"}))
		err := store.CreateGroup(ctx, &models.Group{ID: "DUP-001", Name: "second"})
		assert.True(t, errors.Is(err, storage.ErrConflict), "got %v", err)

		got, err := store.GetGroup(ctx, "DUP-001")
		require.NoError(t, err)
		assert.Equal(t, "first", got.Name)
	})

	t.Run("GetGroup returns ErrNotFound", func(t *testing.T) {
		store := newStore(t)

		_, err := store.GetGroup(ctx, "NOP-000")
		assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)
	})

	t.Run("GroupExists", func(t *testing.T) {
		store := newStore(t)

		ok, err := store.GroupExists(ctx, "EXI-000")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, store.CreateGroup(ctx, &models.Group{ID: "EXI-000", Name: "x"}))
		ok, err = store.GroupExists(ctx, "EXI-000")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("AddMember appends in join order", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.CreateGroup(ctx, &models.Group{
			ID:      "MEM-001",
			Name:    "members",
			Members: []models.Member{{ID: "m1", Name: "Alice"}},
		}))
		require.NoError(t, store.AddMember(ctx, "MEM-001", models.Member{ID: "m2", Name: "Bob"}))
		require.NoError(t, store.AddMember(ctx, "MEM-001", models.Member{ID: "m3", Name: "Alice"}))

		got, err := store.GetGroup(ctx, "MEM-001")
		require.NoError(t, err)
		assert.Equal(t, []models.Member{
			{ID: "m1", Name: "Alice"},
			{ID: "m2", Name: "Bob"},
			{ID: "m3", Name: "Alice"},
		}, got.Members)
	})

	t.Run("AddMember to a missing room", func(t *testing.T) {
		store := newStore(t)

		err := store.AddMember(ctx, "NOP-000", models.Member{ID: "m1", Name: "Alice"})
		assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)
	})

	t.Run("CreateExpense assigns id and timestamp", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.CreateGroup(ctx, &models.Group{ID: "EXP-001", Name: "expenses"}))

		e := &models.Expense{
			ID:          "client-chosen",
			GroupID:     "EXP-001",
			Description: "Dinner",
			Amount:      150000,
			PaidBy:      "m1",
			SplitAmong:  []string{"m2", "m1", "m3"},
			CreatedAt:   42,
		}
		require.NoError(t, store.CreateExpense(ctx, e))
		assert.NotEqual(t, "client-chosen", e.ID)
		assert.NotEmpty(t, e.ID)
		assert.NotEqual(t, int64(42), e.CreatedAt)

		list, err := store.ListExpensesByGroup(ctx, "EXP-001")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, *e, list[0])
	})

	t.Run("CreateExpense for a missing room", func(t *testing.T) {
		store := newStore(t)

		err := store.CreateExpense(ctx, &models.Expense{
			GroupID:    "NOP-000",
			Amount:     10,
			PaidBy:     "m1",
			SplitAmong: []string{"m1"},
		})
		assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)
	})

	t.Run("ListExpensesByGroup is newest first and scoped", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.CreateGroup(ctx, &models.Group{ID: "LST-001", Name: "a"}))
		require.NoError(t, store.CreateGroup(ctx, &models.Group{ID: "LST-002", Name: "b"}))

		var ids []string
		for _, desc := range []string{"first", "second", "third"} {
			e := &models.Expense{GroupID: "LST-001", Description: desc, Amount: 100, PaidBy: "m1", SplitAmong: []string{"m1"}}
			require.NoError(t, store.CreateExpense(ctx, e))
			ids = append(ids, e.ID)
		}
		require.NoError(t, store.CreateExpense(ctx, &models.Expense{
			GroupID: "LST-002", Description: "other room", Amount: 5, PaidBy: "x", SplitAmong: []string{"x"},
		}))

		list, err := store.ListExpensesByGroup(ctx, "LST-001")
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID})
		assert.Equal(t, "third", list[0].Description)

		empty, err := store.ListExpensesByGroup(ctx, "NOP-000")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.CreateGroup(ctx, &models.Group{
			ID: "CPY-001", Name: "copies", Members: []models.Member{{ID: "m1", Name: "Alice"}},
		}))
		require.NoError(t, store.CreateExpense(ctx, &models.Expense{
			GroupID: "CPY-001", Amount: 100, PaidBy: "m1", SplitAmong: []string{"m1"},
		}))

		g, err := store.GetGroup(ctx, "CPY-001")
		require.NoError(t, err)
		g.Members[0].Name = "changed"

		list, err := store.ListExpensesByGroup(ctx, "CPY-001")
		require.NoError(t, err)
		list[0].SplitAmong[0] = "changed"

		g2, err := store.GetGroup(ctx, "CPY-001")
		require.NoError(t, err)
		assert.Equal(t, "Alice", g2.Members[0].Name)

		list2, err := store.ListExpensesByGroup(ctx, "CPY-001")
		require.NoError(t, err)
		assert.Equal(t, []string{"m1"}, list2[0].SplitAmong)
	})
}
