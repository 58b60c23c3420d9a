package inventory

import (
	"time"

	"storeboard/internal/core/id"
)

// MovementType distinguishes stock received from stock removed.
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// Movement is one entry of the append-only stock log. Movements are
// never updated or deleted, even when their item is removed.
type Movement struct {
	ID       id.ID
	ItemID   id.ID
	Type     MovementType
	Quantity int
	Date     time.Time
	Notes    string
}

// UnknownItemName labels movements whose item no longer exists.
const UnknownItemName = "unknown item"

// HistoryEntry is a movement with its item name resolved for display.
type HistoryEntry struct {
	Movement
	ItemName string
}
