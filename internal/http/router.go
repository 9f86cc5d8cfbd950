package api

import (
	"log"
	stdhttp "net/http"

	intconfig "transfers/internal/config"
	"transfers/internal/events"
	h "transfers/internal/http/handlers"
	"transfers/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, publisher *events.Publisher) *gin.Engine {
	h.Configure(env, publisher)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.AllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Booking wizard
		api.GET("/catalog", h.GetCatalog)
		flow := api.Group("/booking-flow")
		flow.POST("", h.CreateBookingSession)
		flow.GET("/:id", h.GetBookingSession)
		flow.POST("/:id/advance", h.AdvanceBookingSession)
		flow.POST("/:id/quote", h.QuoteBookingSession)

		// Checkout & payment
		api.POST("/checkout", h.CreateCheckoutSession)
		api.POST("/webhooks/payment", h.PaymentWebhook)

		// Trips
		trips := api.Group("/trips")
		trips.GET("/:reference", h.GetTripByReference)
		trips.GET("/:reference/receipt", h.GetTripReceiptPDF)

		// Email verification
		verification := api.Group("/verification")
		verification.POST("", h.VerificationAction)
		verification.GET("/verify", h.VerifyMagicLink)

		// Partner invites & signup
		invites := api.Group("/invites")
		invites.GET("", h.ValidateInvite)
		invites.POST("/consume", h.ConsumeInvite)

		partners := api.Group("/partners")
		partners.POST("/signup", h.PartnerSignup)
		partners.GET("/me", middleware.AuthRequired(env.JWTSecret), h.PartnerMe)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
	}

	return r
}
