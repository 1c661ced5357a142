package handlers

import (
	"github.com/gin-gonic/gin"

	"kardex/internal/domain/purchases"
	"kardex/internal/infrastructure/http/v1/dto"
	"kardex/internal/infrastructure/storage/postgres"
)

// PurchaseHandler serves the purchase ledger endpoints.
type PurchaseHandler struct {
	*BaseHandler
	service *purchases.Service
	auditor Auditor
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(service *purchases.Service, auditor Auditor) *PurchaseHandler {
	return &PurchaseHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		auditor:     auditor,
	}
}

// Create handles POST /api/v1/purchases
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, h.auditor, "purchase", p.ID, postgres.AuditActionCreate, map[string]any{
		"purchase_ref": p.PurchaseRef,
		"product":      p.ProductName,
		"quantity":     p.OrderedQuantity,
	})
	h.Created(c, p)
}

// List handles GET /api/v1/purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// GetByRef handles GET /api/v1/purchases/ref/:ref
func (h *PurchaseHandler) GetByRef(c *gin.Context) {
	ref, ok := h.ParseRefParam(c, "ref")
	if !ok {
		return
	}

	p, err := h.service.GetByRef(c.Request.Context(), ref)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// ListUnbound handles GET /api/v1/purchases/unbound
func (h *PurchaseHandler) ListUnbound(c *gin.Context) {
	items, err := h.service.ListUnboundRefs(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// Update handles PUT /api/v1/purchases/:id
func (h *PurchaseHandler) Update(c *gin.Context) {
	purchaseID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), purchaseID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, h.auditor, "purchase", p.ID, postgres.AuditActionUpdate, map[string]any{
		"purchase_ref": p.PurchaseRef,
		"quantity":     p.OrderedQuantity,
	})
	h.OK(c, p)
}

// Delete handles DELETE /api/v1/purchases/:id
func (h *PurchaseHandler) Delete(c *gin.Context) {
	purchaseID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), purchaseID); err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, h.auditor, "purchase", purchaseID, postgres.AuditActionDelete, nil)
	h.NoContent(c)
}
