package middleware

import (
	"time"

	cors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS restricts browser access to the configured origin allow-list.
// LoadEnv guarantees the list is never empty (it falls back to the
// primary production origin).
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
