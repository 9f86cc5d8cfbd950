package handlers

import (
	"net/http"
	"time"

	"transfers/internal/domain"
	"transfers/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads for new handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsProvider(err):
		RespondProviderError(c, err)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}

// RespondProviderError renders the checkout error contract: a user-facing
// message plus a details bag with the classified category and code.
func RespondProviderError(c *gin.Context, err error) {
	pe, ok := domain.AsProvider(err)
	if !ok {
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
		return
	}

	status := http.StatusBadGateway
	switch pe.Category {
	case domain.ProviderInvalidRequest, domain.ProviderCard:
		status = http.StatusBadRequest
	case domain.ProviderAuthentication:
		status = http.StatusInternalServerError
	case domain.ProviderRateLimit:
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"error": pe.UserMessage(),
		"details": gin.H{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"errorType": string(pe.Category),
			"errorCode": pe.Code,
			"requestId": middleware.GetRequestID(c),
		},
	})
}
