package inventory

import (
	"context"

	"storeboard/internal/core/id"
)

// Store persists items and movements. The ledger writes through the
// store before touching its in-memory state, so a store failure
// leaves the ledger unchanged.
//
// Implementations must make ApplyStockChange atomic: the item update
// and the movement append commit together or not at all.
type Store interface {
	LoadItems(ctx context.Context) ([]*Item, error)
	LoadMovements(ctx context.Context) ([]Movement, error)

	CreateItem(ctx context.Context, item *Item) error
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, itemID id.ID) error

	AppendMovement(ctx context.Context, m Movement) error
	ApplyStockChange(ctx context.Context, item *Item, m Movement) error
}
