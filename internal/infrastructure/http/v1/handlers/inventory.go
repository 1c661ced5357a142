package handlers

import (
	"github.com/gin-gonic/gin"

	"kardex/internal/domain/inventory"
	"kardex/internal/infrastructure/http/v1/dto"
	"kardex/internal/infrastructure/storage/postgres"
)

// InventoryHandler serves the inventory ledger endpoints.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
	auditor Auditor
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(service *inventory.Service, auditor Auditor) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		auditor:     auditor,
	}
}

// Bind handles POST /api/v1/inventory
func (h *InventoryHandler) Bind(c *gin.Context) {
	var req dto.BindPurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	lot, err := h.service.BindPurchase(c.Request.Context(), req.PurchaseRef, req.SalePrice)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, h.auditor, "lot", lot.ID, postgres.AuditActionBind, map[string]any{
		"purchase_ref": lot.PurchaseRef,
		"sku":          lot.SKU,
		"on_hand":      lot.OnHandQuantity,
	})
	h.Created(c, lot)
}

// List handles GET /api/v1/inventory
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.service.ListLots(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// UpdatePrice handles PUT /api/v1/inventory/products/:name/price
func (h *InventoryHandler) UpdatePrice(c *gin.Context) {
	var req dto.UpdateSalePriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productName := c.Param("name")
	if err := h.service.UpdateSalePrice(c.Request.Context(), productName, req.SalePrice); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "sale price updated")
}

// DeleteProduct handles DELETE /api/v1/inventory/products/:name
func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	productName := c.Param("name")
	if err := h.service.DeleteByProduct(c.Request.Context(), productName); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
