// Package memory provides an in-memory inventory store for tests and
// the standalone demo mode.
package memory

import (
	"context"
	"sync"

	"storeboard/internal/core/apperror"
	"storeboard/internal/core/id"
	"storeboard/internal/domain/inventory"
)

// Store keeps items and movements in memory. It satisfies the same
// atomicity contract as the database store: ApplyStockChange commits
// both writes under one lock.
type Store struct {
	mu        sync.Mutex
	items     []inventory.Item
	movements []inventory.Movement
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// LoadItems returns all items in insertion order.
func (s *Store) LoadItems(ctx context.Context) ([]*inventory.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*inventory.Item, len(s.items))
	for i := range s.items {
		item := s.items[i]
		out[i] = &item
	}
	return out, nil
}

// LoadMovements returns all movements in insertion order.
func (s *Store) LoadMovements(ctx context.Context) ([]inventory.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]inventory.Movement, len(s.movements))
	copy(out, s.movements)
	return out, nil
}

// CreateItem inserts a new item.
func (s *Store) CreateItem(ctx context.Context, item *inventory.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, *item)
	return nil
}

// UpdateItem stores the full item state.
func (s *Store) UpdateItem(ctx context.Context, item *inventory.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateLocked(item)
}

func (s *Store) updateLocked(item *inventory.Item) error {
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = *item
			return nil
		}
	}
	return apperror.NewNotFound("item", item.ID.String())
}

// DeleteItem removes an item, leaving its movements in place.
func (s *Store) DeleteItem(ctx context.Context, itemID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("item", itemID.String())
}

// AppendMovement records one movement.
func (s *Store) AppendMovement(ctx context.Context, m inventory.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.movements = append(s.movements, m)
	return nil
}

// ApplyStockChange applies the item update and the movement append as
// one unit.
func (s *Store) ApplyStockChange(ctx context.Context, item *inventory.Item, m inventory.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.updateLocked(item); err != nil {
		return err
	}
	s.movements = append(s.movements, m)
	return nil
}

var _ inventory.Store = (*Store)(nil)
