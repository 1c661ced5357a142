// Package handlers provides HTTP request handlers.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/infrastructure/http/v1/dto"
	"kardex/internal/infrastructure/storage/postgres"
	"kardex/pkg/logger"
)

// Auditor records mutations on ledger entities. A nil Auditor disables
// auditing (memory-backed runs and tests).
type Auditor interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action postgres.AuditAction, changes map[string]any) error
}

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseIDParam parses a uuid path parameter.
func (h *BaseHandler) ParseIDParam(c *gin.Context, name string) (id.ID, bool) {
	parsed, err := id.Parse(c.Param(name))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail("param", name))
		return id.Nil(), false
	}
	return parsed, true
}

// ParseRefParam parses a 6-digit reference path parameter.
func (h *BaseHandler) ParseRefParam(c *gin.Context, name string) (int64, bool) {
	ref, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid reference").WithDetail("param", name))
		return 0, false
	}
	return ref, true
}

// Audit records a mutation, logging but never failing the request on error.
func (h *BaseHandler) Audit(c *gin.Context, auditor Auditor, entityType string, entityID id.ID, action postgres.AuditAction, changes map[string]any) {
	if auditor == nil {
		return
	}
	ctx := c.Request.Context()
	if err := auditor.LogChange(ctx, entityType, entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit log failed",
			"entity_type", entityType,
			"entity_id", entityID,
			"action", action,
			"error", err,
		)
	}
}

// Created sends 201 response with ID.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Success sends success response.
func (h *BaseHandler) Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: message})
}
