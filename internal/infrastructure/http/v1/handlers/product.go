package handlers

import (
	"github.com/gin-gonic/gin"

	"kardex/internal/domain/products"
	"kardex/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product registry endpoints.
type ProductHandler struct {
	*BaseHandler
	service *products.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service *products.Service) *ProductHandler {
	return &ProductHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}
