package inventory

import (
	"fmt"

	"storeboard/internal/core/id"
)

// AlertType classifies an inventory alert. Only low_stock is produced
// by the stock rule; the other kinds are reserved for future rules.
type AlertType string

const (
	AlertLowStock AlertType = "low_stock"
	AlertExpired  AlertType = "expired"
	AlertReorder  AlertType = "reorder"
)

// Severity of an alert. Error means the item is fully out of stock.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Alert is derived state: the list is recomputed from the item
// collection after every mutation and replaced wholesale, never
// patched or persisted.
type Alert struct {
	Type     AlertType
	ItemID   id.ID
	Message  string
	Severity Severity
}

// computeAlerts evaluates the low-stock rule over all items in
// iteration order. An item alerts iff CurrentStock <= MinStock.
func computeAlerts(items []*Item) []Alert {
	alerts := make([]Alert, 0)
	for _, it := range items {
		if it.CurrentStock > it.MinStock {
			continue
		}
		severity := SeverityWarning
		if it.CurrentStock == 0 {
			severity = SeverityError
		}
		alerts = append(alerts, Alert{
			Type:   AlertLowStock,
			ItemID: it.ID,
			Message: fmt.Sprintf("%s is low on stock: %d %s remaining, minimum is %d",
				it.Name, it.CurrentStock, it.Unit, it.MinStock),
			Severity: severity,
		})
	}
	return alerts
}
