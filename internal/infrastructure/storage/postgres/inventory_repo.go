package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"storeboard/internal/core/id"
	"storeboard/internal/core/types"
	"storeboard/internal/domain/inventory"
	"storeboard/pkg/logger"
)

const (
	itemsTable     = "inv_items"
	movementsTable = "inv_movements"
)

// InventoryRepo implements inventory.Store on PostgreSQL.
type InventoryRepo struct {
	txManager *TxManager
	audit     *AuditService
	builder   squirrel.StatementBuilderType
}

// NewInventoryRepo creates a new inventory repository. The audit
// service may be nil to disable audit recording.
func NewInventoryRepo(txManager *TxManager, audit *AuditService) *InventoryRepo {
	return &InventoryRepo{
		txManager: txManager,
		audit:     audit,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

type itemRow struct {
	ID            id.ID       `db:"id"`
	Name          string      `db:"name"`
	Category      string      `db:"category"`
	CurrentStock  int         `db:"current_stock"`
	MinStock      int         `db:"min_stock"`
	Unit          string      `db:"unit"`
	UnitPrice     types.Money `db:"unit_price"`
	LastRestocked time.Time   `db:"last_restocked"`
}

func (r itemRow) toItem() *inventory.Item {
	return &inventory.Item{
		ID:            r.ID,
		Name:          r.Name,
		Category:      r.Category,
		CurrentStock:  r.CurrentStock,
		MinStock:      r.MinStock,
		Unit:          r.Unit,
		UnitPrice:     r.UnitPrice,
		LastRestocked: r.LastRestocked,
	}
}

type movementRow struct {
	ID       id.ID     `db:"id"`
	ItemID   id.ID     `db:"item_id"`
	Type     string    `db:"type"`
	Quantity int       `db:"quantity"`
	Date     time.Time `db:"date"`
	Notes    string    `db:"notes"`
}

func (r movementRow) toMovement() inventory.Movement {
	return inventory.Movement{
		ID:       r.ID,
		ItemID:   r.ItemID,
		Type:     inventory.MovementType(r.Type),
		Quantity: r.Quantity,
		Date:     r.Date,
		Notes:    r.Notes,
	}
}

// LoadItems returns all items in creation order.
func (r *InventoryRepo) LoadItems(ctx context.Context) ([]*inventory.Item, error) {
	q := r.builder.Select(
		"id", "name", "category", "current_stock", "min_stock",
		"unit", "unit_price", "last_restocked",
	).From(itemsTable).OrderBy("id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, wrapStoreErr("select items", err)
	}

	items := make([]*inventory.Item, len(rows))
	for i, row := range rows {
		items[i] = row.toItem()
	}
	return items, nil
}

// LoadMovements returns all movements in creation order.
func (r *InventoryRepo) LoadMovements(ctx context.Context) ([]inventory.Movement, error) {
	q := r.builder.Select(
		"id", "item_id", "type", "quantity", "date", "notes",
	).From(movementsTable).OrderBy("id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []movementRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, wrapStoreErr("select movements", err)
	}

	movements := make([]inventory.Movement, len(rows))
	for i, row := range rows {
		movements[i] = row.toMovement()
	}
	return movements, nil
}

// CreateItem inserts a new item.
func (r *InventoryRepo) CreateItem(ctx context.Context, item *inventory.Item) error {
	q := r.builder.Insert(itemsTable).
		Columns("id", "name", "category", "current_stock", "min_stock",
			"unit", "unit_price", "last_restocked").
		Values(item.ID, item.Name, item.Category, item.CurrentStock, item.MinStock,
			item.Unit, item.UnitPrice, item.LastRestocked)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return wrapStoreErr("insert item", err)
	}

	r.recordAudit(ctx, "item", item.ID, AuditActionCreate, map[string]any{
		"name":          item.Name,
		"category":      item.Category,
		"current_stock": item.CurrentStock,
		"min_stock":     item.MinStock,
	})
	return nil
}

// UpdateItem stores the full item state.
func (r *InventoryRepo) UpdateItem(ctx context.Context, item *inventory.Item) error {
	q := r.builder.Update(itemsTable).
		Set("name", item.Name).
		Set("category", item.Category).
		Set("current_stock", item.CurrentStock).
		Set("min_stock", item.MinStock).
		Set("unit", item.Unit).
		Set("unit_price", item.UnitPrice).
		Set("last_restocked", item.LastRestocked).
		Where(squirrel.Eq{"id": item.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return wrapStoreErr("update item", err)
	}

	r.recordAudit(ctx, "item", item.ID, AuditActionUpdate, map[string]any{
		"name":      item.Name,
		"min_stock": item.MinStock,
	})
	return nil
}

// DeleteItem removes an item. Its movements stay.
func (r *InventoryRepo) DeleteItem(ctx context.Context, itemID id.ID) error {
	q := r.builder.Delete(itemsTable).Where(squirrel.Eq{"id": itemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return wrapStoreErr("delete item", err)
	}

	r.recordAudit(ctx, "item", itemID, AuditActionDelete, nil)
	return nil
}

// AppendMovement inserts one movement record.
func (r *InventoryRepo) AppendMovement(ctx context.Context, m inventory.Movement) error {
	q := r.builder.Insert(movementsTable).
		Columns("id", "item_id", "type", "quantity", "date", "notes").
		Values(m.ID, m.ItemID, string(m.Type), m.Quantity, m.Date, m.Notes)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return wrapStoreErr("insert movement", err)
	}
	return nil
}

// ApplyStockChange commits the item update and the movement append in
// one transaction.
func (r *InventoryRepo) ApplyStockChange(ctx context.Context, item *inventory.Item, m inventory.Movement) error {
	return r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := r.UpdateItem(ctx, item); err != nil {
			return err
		}
		if err := r.AppendMovement(ctx, m); err != nil {
			return err
		}
		r.recordAudit(ctx, "movement", m.ID, AuditActionCreate, map[string]any{
			"item_id":  m.ItemID,
			"type":     string(m.Type),
			"quantity": m.Quantity,
			"notes":    m.Notes,
		})
		return nil
	})
}

func (r *InventoryRepo) recordAudit(ctx context.Context, entityType string, entityID id.ID, action AuditAction, changes map[string]any) {
	if r.audit == nil {
		return
	}
	// Audit failure must not fail the mutation.
	if err := r.audit.LogChange(ctx, entityType, entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit record failed", "entity_type", entityType, "error", err)
	}
}

var _ inventory.Store = (*InventoryRepo)(nil)
