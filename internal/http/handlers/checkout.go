package handlers

import (
	"net/http"

	"transfers/internal/http/middleware"
	"transfers/internal/repositories"
	"transfers/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/checkout
func CreateCheckoutSession(c *gin.Context) {
	var req services.CheckoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.CheckoutService{
		TripRepo:    repositories.TripRepository{},
		UserRepo:    repositories.UserRepository{},
		Provider:    provider,
		Publisher:   publisher,
		SiteBaseURL: env.SiteBaseURL,
		RequestID:   middleware.GetRequestID(c),
	}

	result, err := svc.Checkout(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
