// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitroom/internal/models"
)

var (
	// ErrNotFound is returned when a room does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a room code is already taken.
	ErrConflict = errors.New("already exists")
)

// Store defines the room and expense storage operations.
// This abstraction allows swapping storage backends (SQLite, in-memory)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new room with its initial members.
	// group.ID must already hold the room code; CreatedAt is set by the store.
	// Returns ErrConflict if the code is taken.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a room and its members in join order.
	// Returns ErrNotFound if the room does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// GroupExists reports whether a room with this code exists.
	GroupExists(ctx context.Context, groupID string) (bool, error)

	// AddMember appends a member to an existing room.
	// Returns ErrNotFound if the room does not exist.
	AddMember(ctx context.Context, groupID string, member models.Member) error

	// CreateExpense appends an expense to a room's ledger.
	// The store assigns expense.ID and expense.CreatedAt, overwriting any
	// caller-supplied values. Returns ErrNotFound if the room does not exist.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpensesByGroup returns a room's expenses, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
