package dto

import (
	"time"

	"storeboard/internal/core/types"
	"storeboard/internal/domain/inventory"
)

// ItemResponse is the external item schema.
type ItemResponse struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Category      string      `json:"category"`
	CurrentStock  int         `json:"currentStock"`
	MinStock      int         `json:"minStock"`
	Unit          string      `json:"unit"`
	UnitPrice     types.Money `json:"unitPrice"`
	LastRestocked time.Time   `json:"lastRestocked"`
}

// FromItem converts a domain item.
func FromItem(item *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:            item.ID.String(),
		Name:          item.Name,
		Category:      item.Category,
		CurrentStock:  item.CurrentStock,
		MinStock:      item.MinStock,
		Unit:          item.Unit,
		UnitPrice:     item.UnitPrice,
		LastRestocked: item.LastRestocked,
	}
}

// FromItems converts a list of domain items.
func FromItems(items []*inventory.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = FromItem(item)
	}
	return out
}

// CreateItemRequest for creating items.
type CreateItemRequest struct {
	Name         string      `json:"name" binding:"required"`
	Category     string      `json:"category" binding:"required"`
	CurrentStock int         `json:"currentStock"`
	MinStock     int         `json:"minStock"`
	Unit         string      `json:"unit" binding:"required"`
	UnitPrice    types.Money `json:"unitPrice"`
}

// ToInput converts to domain input.
func (r CreateItemRequest) ToInput() inventory.ItemInput {
	return inventory.ItemInput{
		Name:         r.Name,
		Category:     r.Category,
		CurrentStock: r.CurrentStock,
		MinStock:     r.MinStock,
		Unit:         r.Unit,
		UnitPrice:    r.UnitPrice,
	}
}

// UpdateItemRequest for updating item descriptive fields.
type UpdateItemRequest = CreateItemRequest

// AddStockRequest for stock receipts.
type AddStockRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	Notes    string `json:"notes"`
}

// RemoveStockRequest for stock removals.
type RemoveStockRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	Reason   string `json:"reason"`
}

// MovementResponse is the external movement schema with the item name
// resolved for display.
type MovementResponse struct {
	ID       string    `json:"id"`
	ItemID   string    `json:"itemId"`
	ItemName string    `json:"itemName"`
	Type     string    `json:"type"`
	Quantity int       `json:"quantity"`
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes,omitempty"`
}

// FromHistory converts resolved movement history.
func FromHistory(entries []inventory.HistoryEntry) []MovementResponse {
	out := make([]MovementResponse, len(entries))
	for i, e := range entries {
		out[i] = MovementResponse{
			ID:       e.ID.String(),
			ItemID:   e.ItemID.String(),
			ItemName: e.ItemName,
			Type:     string(e.Type),
			Quantity: e.Quantity,
			Date:     e.Date,
			Notes:    e.Notes,
		}
	}
	return out
}

// AlertResponse is one derived inventory alert.
type AlertResponse struct {
	Type     string `json:"type"`
	ItemID   string `json:"itemId"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// FromAlerts converts the derived alert list.
func FromAlerts(alerts []inventory.Alert) []AlertResponse {
	out := make([]AlertResponse, len(alerts))
	for i, a := range alerts {
		out[i] = AlertResponse{
			Type:     string(a.Type),
			ItemID:   a.ItemID.String(),
			Message:  a.Message,
			Severity: string(a.Severity),
		}
	}
	return out
}
