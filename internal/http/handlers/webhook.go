package handlers

import (
	"io"
	"net/http"

	"transfers/internal/http/middleware"
	"transfers/internal/repositories"
	"transfers/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/webhooks/payment
//
// Always answers 200 so the provider's retry queue never builds up; the
// true outcome lives in the response body, logs and webhook_failures.
func PaymentWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"received": true, "error": "could not read payload"})
		return
	}

	svc := services.WebhookService{
		TripRepo:      repositories.TripRepository{},
		PaymentRepo:   repositories.PaymentRepository{},
		FailureRepo:   repositories.WebhookFailureRepository{},
		Relay:         relay,
		Publisher:     publisher,
		WebhookSecret: env.StripeWebhookSecret,
		RequestID:     middleware.GetRequestID(c),
	}

	if err := svc.HandleEvent(payload, c.GetHeader("Stripe-Signature")); err != nil {
		c.JSON(http.StatusOK, gin.H{"received": true, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
