package handlers

import (
	"net/http"

	"transfers/internal/bookingflow"
	"transfers/internal/catalog"

	"github.com/gin-gonic/gin"
)

// POST /api/booking-flow
func CreateBookingSession(c *gin.Context) {
	id, state := flowStore.Create()
	c.JSON(http.StatusOK, gin.H{"sessionId": id, "state": state})
}

// GET /api/booking-flow/:id
func GetBookingSession(c *gin.Context) {
	state, err := flowStore.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

type advanceRequest struct {
	Step  int               `json:"step" validate:"required,min=1,max=3"`
	Patch bookingflow.Patch `json:"patch"`
}

// POST /api/booking-flow/:id/advance
func AdvanceBookingSession(c *gin.Context) {
	var req advanceRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		RespondError(c, http.StatusBadRequest, "step must be 1, 2 or 3", nil)
		return
	}

	state, err := flowStore.Update(c.Param("id"), func(s *bookingflow.BookingState) error {
		return s.Advance(req.Step, req.Patch)
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

type quoteRequest struct {
	Pricing *bookingflow.PricingResponse `json:"pricing,omitempty"`
}

// POST /api/booking-flow/:id/quote
//
// Attaches a pricing response (when given) and returns the explicit
// total: the amount plus whether it came from the API or the static
// catalog fallback.
func QuoteBookingSession(c *gin.Context) {
	var req quoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var result bookingflow.PriceResult
	_, err := flowStore.Update(c.Param("id"), func(s *bookingflow.BookingState) error {
		if req.Pricing != nil {
			s.Pricing = req.Pricing
		}
		var totalErr error
		result, totalErr = s.ComputeTotal()
		return totalErr
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": result})
}

// GET /api/catalog
func GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"vehicles": catalog.Vehicles(),
		"extras":   catalog.Extras(),
	})
}
