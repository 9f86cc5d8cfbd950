package handlers

import (
	"net/http"

	intconfig "transfers/internal/config"
	"transfers/internal/events"
	"transfers/internal/providers/mailrelay"
	"transfers/internal/providers/mxlookup"
	"transfers/internal/providers/payment"

	"transfers/internal/bookingflow"
	"transfers/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Package-level wiring set once at router construction. Mirrors the
// shared-DB pattern: handlers stay plain functions.
var (
	env       intconfig.Env
	publisher *events.Publisher
	flowStore *bookingflow.Store

	provider payment.Client
	relay    mailrelay.Client
	mx       mxlookup.Client

	validate = validator.New()
)

// Configure injects environment-derived clients. Tests may override the
// individual package vars instead.
func Configure(e intconfig.Env, pub *events.Publisher) {
	env = e
	publisher = pub
	flowStore = bookingflow.NewStore()

	provider = payment.NewHTTP(e.StripeSecretKey)
	relay = mailrelay.NewHTTP(e.MailRelayURL, e.MailRelaySecret)
	if e.MXLookupAPIKey != "" {
		mx = mxlookup.NewHTTP(e.MXLookupAPIKey)
	}
}

// RespondError sends standard error payload with request_id included.
// Keeps a "message" key for older frontend builds.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty request body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
