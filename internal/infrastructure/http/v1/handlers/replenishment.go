package handlers

import (
	"github.com/gin-gonic/gin"

	"kardex/internal/domain/replenishments"
	"kardex/internal/infrastructure/http/v1/dto"
	"kardex/internal/infrastructure/storage/postgres"
)

// ReplenishmentHandler serves the replenishment ledger endpoints.
type ReplenishmentHandler struct {
	*BaseHandler
	service *replenishments.Service
	auditor Auditor
}

// NewReplenishmentHandler creates a new replenishment handler.
func NewReplenishmentHandler(service *replenishments.Service, auditor Auditor) *ReplenishmentHandler {
	return &ReplenishmentHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
		auditor:     auditor,
	}
}

// Create handles POST /api/v1/replenishments
func (h *ReplenishmentHandler) Create(c *gin.Context) {
	var req dto.CreateReplenishmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, h.auditor, "replenishment", rec.ID, postgres.AuditActionCreate, map[string]any{
		"replenishment_ref": rec.ReplenishmentRef,
		"product":           rec.ProductName,
		"quantity":          rec.Quantity,
		"destination":       rec.DestinationStore,
	})
	h.Created(c, rec)
}

// List handles GET /api/v1/replenishments
func (h *ReplenishmentHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// Update handles PUT /api/v1/replenishments/:id
func (h *ReplenishmentHandler) Update(c *gin.Context) {
	replenishmentID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReplenishmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec, err := h.service.Update(c.Request.Context(), replenishmentID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, h.auditor, "replenishment", rec.ID, postgres.AuditActionUpdate, map[string]any{
		"quantity": rec.Quantity,
	})
	h.OK(c, rec)
}

// Delete handles DELETE /api/v1/replenishments/:id
func (h *ReplenishmentHandler) Delete(c *gin.Context) {
	replenishmentID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), replenishmentID); err != nil {
		h.Error(c, err)
		return
	}

	h.Audit(c, h.auditor, "replenishment", replenishmentID, postgres.AuditActionDelete, nil)
	h.NoContent(c)
}
