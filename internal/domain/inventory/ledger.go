package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"storeboard/internal/core/apperror"
	"storeboard/internal/core/id"
	"storeboard/pkg/logger"
)

// Ledger is the single owner of inventory state: the item collection,
// the movement log, and the derived alert list. All mutations are
// serialized through one mutex, write through the store first, and
// finish by replacing the alert list, so readers never observe stock
// and movements out of step.
type Ledger struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time

	items     []*Item
	index     map[id.ID]*Item
	movements []Movement
	alerts    []Alert
}

// NewLedger creates a ledger backed by the given store. Call Load
// before serving requests.
func NewLedger(store Store) *Ledger {
	return &Ledger{
		store: store,
		now:   time.Now,
		index: make(map[id.ID]*Item),
	}
}

// Load populates the ledger from the store and derives the initial
// alert list.
func (l *Ledger) Load(ctx context.Context) error {
	items, err := l.store.LoadItems(ctx)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	movements, err := l.store.LoadMovements(ctx)
	if err != nil {
		return fmt.Errorf("load movements: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = items
	l.index = make(map[id.ID]*Item, len(items))
	for _, it := range items {
		l.index[it.ID] = it
	}
	l.movements = movements
	l.alerts = computeAlerts(l.items)

	logger.Info(ctx, "inventory ledger loaded",
		"items", len(items),
		"movements", len(movements),
		"alerts", len(l.alerts),
	)
	return nil
}

// AddStock increases an item's stock and records an "in" movement.
// Fails with NotFound before anything is written when the item does
// not exist, so no orphaned movement can appear.
func (l *Ledger) AddStock(ctx context.Context, itemID id.ID, quantity int, notes string) (*Item, error) {
	if quantity <= 0 {
		return nil, apperror.NewValidation("quantity must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.index[itemID]
	if !ok {
		return nil, apperror.NewNotFound("item", itemID.String())
	}

	now := l.now()
	updated := *item
	updated.CurrentStock += quantity
	updated.LastRestocked = now

	movement := Movement{
		ID:       id.New(),
		ItemID:   itemID,
		Type:     MovementIn,
		Quantity: quantity,
		Date:     now,
		Notes:    notes,
	}

	if err := l.store.ApplyStockChange(ctx, &updated, movement); err != nil {
		return nil, fmt.Errorf("apply stock change: %w", err)
	}

	*item = updated
	l.movements = append(l.movements, movement)
	l.alerts = computeAlerts(l.items)

	logger.Info(ctx, "stock added",
		"item_id", itemID,
		"quantity", quantity,
		"current_stock", item.CurrentStock,
	)
	snapshot := *item
	return &snapshot, nil
}

// RemoveStock decreases an item's stock and records an "out" movement
// with the removal reason as its notes. Removing more than is on hand
// is rejected; stock never goes negative.
func (l *Ledger) RemoveStock(ctx context.Context, itemID id.ID, quantity int, reason string) (*Item, error) {
	if quantity <= 0 {
		return nil, apperror.NewValidation("quantity must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.index[itemID]
	if !ok {
		return nil, apperror.NewNotFound("item", itemID.String())
	}
	if quantity > item.CurrentStock {
		return nil, apperror.NewInsufficientStock(itemID.String(), quantity, item.CurrentStock)
	}

	updated := *item
	updated.CurrentStock -= quantity

	movement := Movement{
		ID:       id.New(),
		ItemID:   itemID,
		Type:     MovementOut,
		Quantity: quantity,
		Date:     l.now(),
		Notes:    reason,
	}

	if err := l.store.ApplyStockChange(ctx, &updated, movement); err != nil {
		return nil, fmt.Errorf("apply stock change: %w", err)
	}

	*item = updated
	l.movements = append(l.movements, movement)
	l.alerts = computeAlerts(l.items)

	logger.Info(ctx, "stock removed",
		"item_id", itemID,
		"quantity", quantity,
		"reason", reason,
		"current_stock", item.CurrentStock,
	)
	snapshot := *item
	return &snapshot, nil
}

// AddProduct inserts a new item. No movement is recorded; alerts are
// recomputed because a fresh item may already be below its minimum.
func (l *Ledger) AddProduct(ctx context.Context, input ItemInput) (*Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	item := &Item{
		ID:            id.New(),
		Name:          input.Name,
		Category:      input.Category,
		CurrentStock:  input.CurrentStock,
		MinStock:      input.MinStock,
		Unit:          input.Unit,
		UnitPrice:     input.UnitPrice,
		LastRestocked: l.now(),
	}

	if err := l.store.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	l.items = append(l.items, item)
	l.index[item.ID] = item
	l.alerts = computeAlerts(l.items)

	logger.Info(ctx, "product added",
		"item_id", item.ID,
		"name", item.Name,
		"current_stock", item.CurrentStock,
	)
	snapshot := *item
	return &snapshot, nil
}

// UpdateProduct changes an item's descriptive fields. Stock is owned
// by the stock operations and is left untouched.
func (l *Ledger) UpdateProduct(ctx context.Context, itemID id.ID, input ItemInput) (*Item, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.index[itemID]
	if !ok {
		return nil, apperror.NewNotFound("item", itemID.String())
	}

	updated := *item
	updated.Name = input.Name
	updated.Category = input.Category
	updated.MinStock = input.MinStock
	updated.Unit = input.Unit
	updated.UnitPrice = input.UnitPrice

	if err := l.store.UpdateItem(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	*item = updated
	l.alerts = computeAlerts(l.items)

	logger.Info(ctx, "product updated", "item_id", itemID, "name", item.Name)
	snapshot := *item
	return &snapshot, nil
}

// RemoveProduct deletes an item. Its movements stay in the log and
// resolve to the unknown-item label in history views.
func (l *Ledger) RemoveProduct(ctx context.Context, itemID id.ID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.index[itemID]; !ok {
		return apperror.NewNotFound("item", itemID.String())
	}

	if err := l.store.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	delete(l.index, itemID)
	for i, it := range l.items {
		if it.ID == itemID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			break
		}
	}
	l.alerts = computeAlerts(l.items)

	logger.Info(ctx, "product removed", "item_id", itemID)
	return nil
}

// Items returns a snapshot of all items in insertion order.
func (l *Ledger) Items() []*Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*Item, len(l.items))
	for i, it := range l.items {
		snapshot := *it
		out[i] = &snapshot
	}
	return out
}

// Item returns one item by id.
func (l *Ledger) Item(itemID id.ID) (*Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.index[itemID]
	if !ok {
		return nil, apperror.NewNotFound("item", itemID.String())
	}
	snapshot := *item
	return &snapshot, nil
}

// Alerts returns the current derived alert list.
func (l *Ledger) Alerts() []Alert {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Alert, len(l.alerts))
	copy(out, l.alerts)
	return out
}

// History returns all movements sorted by date descending, with item
// names resolved against the current item collection.
func (l *Ledger) History(ctx context.Context) []HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.historyLocked(nil)
}

// HistoryForItem returns one item's movements, newest first. Dangling
// references still resolve, so history survives item deletion.
func (l *Ledger) HistoryForItem(ctx context.Context, itemID id.ID) []HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.historyLocked(&itemID)
}

func (l *Ledger) historyLocked(itemID *id.ID) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(l.movements))
	for _, m := range l.movements {
		if itemID != nil && m.ItemID != *itemID {
			continue
		}
		name := UnknownItemName
		if it, ok := l.index[m.ItemID]; ok {
			name = it.Name
		}
		entries = append(entries, HistoryEntry{Movement: m, ItemName: name})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries
}
