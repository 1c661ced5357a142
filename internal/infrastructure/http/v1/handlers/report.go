package handlers

import (
	"github.com/gin-gonic/gin"

	"kardex/internal/domain/reports"
	"kardex/internal/infrastructure/http/v1/dto"
)

// ReportHandler serves the reconciliation read endpoints.
type ReportHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service *reports.Service) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Summary handles GET /api/v1/inventory/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	rows, err := h.service.StockSummary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: rows, TotalCount: len(rows)})
}

// Available handles GET /api/v1/inventory/available
func (h *ReportHandler) Available(c *gin.Context) {
	rows, err := h.service.AvailableProducts(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: rows, TotalCount: len(rows)})
}

// ProductAvailability handles GET /api/v1/inventory/products/:name
func (h *ReportHandler) ProductAvailability(c *gin.Context) {
	row, err := h.service.ProductAvailability(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, row)
}
