package handlers

import (
	"net/http"
	"strings"

	"transfers/internal/http/middleware"
	"transfers/internal/repositories"
	"transfers/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/:reference
//
// Public my-booking view: status and trip summary by booking reference.
func GetTripByReference(c *gin.Context) {
	reference := strings.TrimSpace(c.Param("reference"))

	repo := repositories.TripRepository{}
	trip, err := repo.GetByReference(reference)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookingReference": trip.BookingReference,
		"status":           trip.Status,
		"vehicleType":      trip.VehicleType,
		"pickupAddress":    trip.PickupAddress,
		"dropoffAddress":   trip.DropoffAddress,
		"scheduledAt":      trip.ScheduledAt,
		"returnAt":         trip.ReturnAt,
		"passengers":       trip.Passengers,
		"amount":           trip.Amount,
	})
}

// GET /api/trips/:reference/receipt
func GetTripReceiptPDF(c *gin.Context) {
	reference := strings.TrimSpace(c.Param("reference"))

	svc := services.ReceiptService{
		TripRepo:  repositories.TripRepository{},
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.BuildReceipt(reference)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
