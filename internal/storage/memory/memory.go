// Package memory provides an in-process storage.Store for tests and
// single-instance deployments that do not need durability.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps rooms and ledgers in maps guarded by a single RWMutex.
type Store struct {
	mu       sync.RWMutex
	groups   map[string]*models.Group
	expenses map[string][]models.Expense // per room, insertion order
	now      func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		groups:   make(map[string]*models.Group),
		expenses: make(map[string][]models.Expense),
		now:      time.Now,
	}
}

func (s *Store) CreateGroup(_ context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[group.ID]; exists {
		return fmt.Errorf("%w: room %s", storage.ErrConflict, group.ID)
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = s.now().Unix()
	}
	s.groups[group.ID] = cloneGroup(group)
	return nil
}

func (s *Store) GetGroup(_ context.Context, groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("%w: room %s", storage.ErrNotFound, groupID)
	}
	return cloneGroup(group), nil
}

func (s *Store) GroupExists(_ context.Context, groupID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.groups[groupID]
	return ok, nil
}

func (s *Store) AddMember(_ context.Context, groupID string, member models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupID]
	if !ok {
		return fmt.Errorf("%w: room %s", storage.ErrNotFound, groupID)
	}
	group.Members = append(group.Members, member)
	return nil
}

func (s *Store) CreateExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[expense.GroupID]; !ok {
		return fmt.Errorf("%w: room %s", storage.ErrNotFound, expense.GroupID)
	}
	expense.ID = uuid.New().String()
	expense.CreatedAt = s.now().Unix()

	stored := *expense
	stored.SplitAmong = append([]string(nil), expense.SplitAmong...)
	s.expenses[expense.GroupID] = append(s.expenses[expense.GroupID], stored)
	return nil
}

// ListExpensesByGroup returns expenses in reverse insertion order.
func (s *Store) ListExpensesByGroup(_ context.Context, groupID string) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.expenses[groupID]
	out := make([]models.Expense, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		e := stored[i]
		e.SplitAmong = append([]string(nil), e.SplitAmong...)
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) Close() error {
	return nil
}

func cloneGroup(g *models.Group) *models.Group {
	c := *g
	c.Members = append([]models.Member(nil), g.Members...)
	return &c
}
