package handlers

import (
	"github.com/gin-gonic/gin"

	"kardex/internal/domain/sales"
	"kardex/internal/infrastructure/http/v1/dto"
	"kardex/internal/infrastructure/storage/postgres"
)

// SaleHandler serves the sales ledger endpoints.
type SaleHandler struct {
	*BaseHandler
	service *sales.Service
	auditor Auditor
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(service *sales.Service, auditor Auditor) *SaleHandler {
	return &SaleHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		auditor:     auditor,
	}
}

// Create handles POST /api/v1/sales
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sale, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, h.auditor, "sale", sale.ID, postgres.AuditActionCreate, map[string]any{
		"sku":      sale.SKU,
		"quantity": sale.QuantitySold,
		"total":    sale.TotalAmount,
	})
	h.Created(c, sale)
}

// List handles GET /api/v1/sales
func (h *SaleHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// Update handles PUT /api/v1/sales/:id
func (h *SaleHandler) Update(c *gin.Context) {
	saleID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sale, err := h.service.Update(c.Request.Context(), saleID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, h.auditor, "sale", sale.ID, postgres.AuditActionUpdate, map[string]any{
		"quantity": sale.QuantitySold,
		"total":    sale.TotalAmount,
	})
	h.OK(c, sale)
}

// Delete handles DELETE /api/v1/sales/:id
func (h *SaleHandler) Delete(c *gin.Context) {
	saleID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), saleID); err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, h.auditor, "sale", saleID, postgres.AuditActionDelete, nil)
	h.NoContent(c)
}
