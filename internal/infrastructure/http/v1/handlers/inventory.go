package handlers

import (
	"github.com/gin-gonic/gin"

	"storeboard/internal/domain/inventory"
	"storeboard/internal/infrastructure/http/v1/dto"
)

// InventoryHandler serves the inventory ledger endpoints.
type InventoryHandler struct {
	*BaseHandler
	ledger *inventory.Ledger
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, ledger *inventory.Ledger) *InventoryHandler {
	return &InventoryHandler{BaseHandler: base, ledger: ledger}
}

// List returns all items.
func (h *InventoryHandler) List(c *gin.Context) {
	h.OK(c, dto.FromItems(h.ledger.Items()))
}

// Get returns one item.
func (h *InventoryHandler) Get(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	item, err := h.ledger.Item(itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromItem(item))
}

// Create adds a new product.
func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.ledger.AddProduct(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromItem(item))
}

// Update changes an item's descriptive fields.
func (h *InventoryHandler) Update(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.ledger.UpdateProduct(c.Request.Context(), itemID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromItem(item))
}

// Delete removes an item. Movement history is kept.
func (h *InventoryHandler) Delete(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.ledger.RemoveProduct(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// AddStock records a stock receipt.
func (h *InventoryHandler) AddStock(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.AddStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.ledger.AddStock(c.Request.Context(), itemID, req.Quantity, req.Notes)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromItem(item))
}

// RemoveStock records a stock removal.
func (h *InventoryHandler) RemoveStock(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.RemoveStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.ledger.RemoveStock(c.Request.Context(), itemID, req.Quantity, req.Reason)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromItem(item))
}

// Movements returns the full movement history, newest first.
func (h *InventoryHandler) Movements(c *gin.Context) {
	h.OK(c, dto.FromHistory(h.ledger.History(c.Request.Context())))
}

// ItemMovements returns one item's movement history, newest first.
func (h *InventoryHandler) ItemMovements(c *gin.Context) {
	itemID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	h.OK(c, dto.FromHistory(h.ledger.HistoryForItem(c.Request.Context(), itemID)))
}

// Alerts returns the current derived alert list.
func (h *InventoryHandler) Alerts(c *gin.Context) {
	h.OK(c, dto.FromAlerts(h.ledger.Alerts()))
}
