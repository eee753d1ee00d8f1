package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mddstore/backend/internal/domain/shared"
	"github.com/mddstore/backend/internal/interfaces/http/dto"
)

// statusByCode maps domain error codes onto HTTP statuses
var statusByCode = map[string]int{
	"NOT_FOUND":          http.StatusNotFound,
	"ALREADY_EXISTS":     http.StatusConflict,
	"VALIDATION_ERROR":   http.StatusBadRequest,
	"UNAUTHORIZED":       http.StatusUnauthorized,
	"FORBIDDEN":          http.StatusForbidden,
	"INVALID_STATE":      http.StatusConflict,
	"INSUFFICIENT_STOCK": http.StatusConflict,
	"EMPTY_CART":         http.StatusBadRequest,
	"SEQUENCE_EXHAUSTED": http.StatusServiceUnavailable,
	"INVALID_SIGNATURE":  http.StatusBadRequest,
	"UPSTREAM_ERROR":     http.StatusBadGateway,
}

// BaseHandler carries what every handler needs
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates the shared handler base
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// HandleError writes a domain error as the right HTTP status. Unknown
// errors become a generic 500 without leaking internals.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusByCode[domainErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		c.JSON(status, dto.Err(domainErr.Code, domainErr.Message))
		return
	}

	h.logger.Error("unhandled error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.Err("INTERNAL_ERROR", "Something went wrong"))
}

// BadRequest writes a validation failure for malformed request payloads
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.Err("VALIDATION_ERROR", err.Error()))
}
