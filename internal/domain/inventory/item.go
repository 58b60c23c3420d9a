// Package inventory implements the stock ledger: items, an append-only
// movement log, and the derived low-stock alert list.
package inventory

import (
	"strings"
	"time"

	"storeboard/internal/core/apperror"
	"storeboard/internal/core/id"
	"storeboard/internal/core/types"
)

// Item is a stocked product. CurrentStock changes only through the
// ledger's stock operations, never through item updates.
type Item struct {
	ID            id.ID
	Name          string
	Category      string
	CurrentStock  int
	MinStock      int
	Unit          string
	UnitPrice     types.Money
	LastRestocked time.Time
}

// ItemInput carries the caller-supplied fields for creating or
// updating an item. The ledger assigns ID and LastRestocked.
type ItemInput struct {
	Name         string
	Category     string
	CurrentStock int
	MinStock     int
	Unit         string
	UnitPrice    types.Money
}

// Validate checks the input against the boundary rules: non-empty
// name, category and unit; non-negative stocks and price.
func (in ItemInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperror.NewValidation("name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return apperror.NewValidation("category is required")
	}
	if strings.TrimSpace(in.Unit) == "" {
		return apperror.NewValidation("unit is required")
	}
	if in.CurrentStock < 0 {
		return apperror.NewValidation("current stock must be non-negative")
	}
	if in.MinStock < 0 {
		return apperror.NewValidation("min stock must be non-negative")
	}
	if in.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price must be non-negative")
	}
	return nil
}
