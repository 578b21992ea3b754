package handler

import (
	"github.com/gin-gonic/gin"
	appinventory "github.com/samarth/backend/internal/application/inventory"
)

// InventoryHandler handles kit registration, removal and reporting
type InventoryHandler struct {
	BaseHandler
	ledger *appinventory.Ledger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(ledger *appinventory.Ledger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// List handles GET /inventory/
func (h *InventoryHandler) List(c *gin.Context) {
	page, ok := h.bindPage(c)
	if !ok {
		return
	}

	items, err := h.ledger.ListItems(c.Request.Context(), page.Offset, page.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, page, len(items))
}

// Create handles POST /inventory/
func (h *InventoryHandler) Create(c *gin.Context) {
	var req appinventory.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	item, err := h.ledger.CreateItem(c.Request.Context(), req, currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Delete handles DELETE /inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Item not found")
	if !ok {
		return
	}

	deleted, err := h.ledger.DeleteItem(c.Request.Context(), id, currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !deleted {
		h.NotFound(c, "Item not found")
		return
	}
	h.NoContent(c)
}

// Utilization handles GET /inventory/utilization
func (h *InventoryHandler) Utilization(c *gin.Context) {
	util, err := h.ledger.Utilization(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, util)
}

// Transactions handles GET /inventory/transactions/:kit_id
func (h *InventoryHandler) Transactions(c *gin.Context) {
	txs, err := h.ledger.ListTransactions(c.Request.Context(), c.Param("kit_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txs)
}

// AuditExport handles POST /inventory/audit-export
func (h *InventoryHandler) AuditExport(c *gin.Context) {
	resp, err := h.ledger.LogExport(c.Request.Context(), currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
