package services

import (
	"fmt"
	"strings"

	intdb "transfers/internal/db"
	"transfers/internal/domain"
	"transfers/internal/domain/models"
	"transfers/internal/events"
	"transfers/internal/providers/payment"
	"transfers/internal/repositories"
	"transfers/internal/utils"
)

// CheckoutRequest is the booking payload posted when the wizard finishes.
type CheckoutRequest struct {
	BookingReference string           `json:"booking_reference"`
	Trip             *CheckoutTrip    `json:"trip"`
	Vehicle          *CheckoutVehicle `json:"vehicle"`
	Customer         CheckoutCustomer `json:"customer"`
	Extras           []string         `json:"extras,omitempty"`
	Amount           float64          `json:"amount"`
	DiscountCode     string           `json:"discountCode,omitempty"`
	PaymentMethod    string           `json:"payment_method"`
}

type CheckoutTrip struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Type       string `json:"type"`
	Date       string `json:"date"`
	ReturnDate string `json:"returnDate,omitempty"`
	Passengers int    `json:"passengers"`
}

type CheckoutVehicle struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type CheckoutCustomer struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	UserID    int64  `json:"user_id,omitempty"`
}

// CheckoutResult mirrors the two success shapes: cash bookings confirm
// immediately, card bookings redirect to the hosted session.
type CheckoutResult struct {
	Success          bool   `json:"success,omitempty"`
	BookingReference string `json:"bookingReference"`
	SessionURL       string `json:"sessionUrl,omitempty"`
	SessionID        string `json:"sessionId,omitempty"`
}

type CheckoutService struct {
	TripRepo  repositories.TripRepository
	UserRepo  repositories.UserRepository
	Provider  payment.Client
	Publisher *events.Publisher

	SiteBaseURL string
	RequestID   string
}

// Checkout validates the booking payload, persists the trip (idempotent
// by booking reference) and, for card payments, opens a hosted checkout
// session.
func (s CheckoutService) Checkout(req CheckoutRequest) (CheckoutResult, error) {
	if err := validateCheckout(req); err != nil {
		return CheckoutResult{}, err
	}

	// Best-effort user resolution; failure must not block checkout.
	userID := req.Customer.UserID
	if userID == 0 {
		if id, err := s.UserRepo.IDByEmail(req.Customer.Email); err == nil {
			userID = id
		} else if !domain.IsNotFound(err) {
			utils.LogEvent(s.RequestID, "checkout", "user-lookup", "ignored: "+err.Error())
		}
	}

	trip, err := s.findOrCreateTrip(req, userID)
	if err != nil {
		return CheckoutResult{}, err
	}

	if req.PaymentMethod == "cash" {
		s.Publisher.Publish(s.RequestID, events.BookingEvent{
			Type:             events.TypeCheckoutCreated,
			BookingReference: req.BookingReference,
			TripID:           trip.ID,
			Amount:           req.Amount,
			PaymentMethod:    "cash",
		})
		return CheckoutResult{Success: true, BookingReference: req.BookingReference}, nil
	}

	cents := utils.ToMinorUnits(req.Amount)
	if cents <= 0 {
		return CheckoutResult{}, domain.ValidationError{Field: "amount", Msg: "must be a positive amount"}
	}

	if err := s.Provider.Ping(); err != nil {
		return CheckoutResult{}, err
	}

	session, err := s.Provider.CreateCheckoutSession(payment.CreateSessionReq{
		Reference:   req.BookingReference,
		AmountCents: cents,
		Currency:    "eur",
		Description: buildLineItemDescription(req),
		PayerEmail:  req.Customer.Email,
		SuccessURL:  s.SiteBaseURL + "/booking/success?ref=" + req.BookingReference,
		CancelURL:   s.SiteBaseURL + "/booking/cancelled?ref=" + req.BookingReference,
		Metadata:    buildMetadata(req, trip.ID),
	})
	if err != nil {
		return CheckoutResult{}, err
	}

	s.Publisher.Publish(s.RequestID, events.BookingEvent{
		Type:             events.TypeCheckoutCreated,
		BookingReference: req.BookingReference,
		TripID:           trip.ID,
		Amount:           req.Amount,
		PaymentMethod:    "card",
	})

	return CheckoutResult{
		BookingReference: req.BookingReference,
		SessionURL:       session.SessionURL,
		SessionID:        session.SessionID,
	}, nil
}

func validateCheckout(req CheckoutRequest) error {
	if req.BookingReference == "" {
		return domain.ValidationError{Field: "booking_reference", Msg: "is required"}
	}
	if req.Trip == nil {
		return domain.ValidationError{Field: "trip", Msg: "is required"}
	}
	if req.Vehicle == nil {
		return domain.ValidationError{Field: "vehicle", Msg: "is required"}
	}
	if req.Customer.Email == "" {
		return domain.ValidationError{Field: "customer.email", Msg: "is required"}
	}
	if !utils.IsValidEmail(req.Customer.Email) {
		return domain.ValidationError{Field: "customer.email", Msg: "is not a valid email address"}
	}
	switch req.PaymentMethod {
	case "card", "cash":
	default:
		return domain.ValidationError{Field: "payment_method", Msg: "must be card or cash"}
	}
	return nil
}

// findOrCreateTrip is the idempotency guard: one trip row per booking
// reference, re-submissions reuse the first row's id.
func (s CheckoutService) findOrCreateTrip(req CheckoutRequest, userID int64) (models.Trip, error) {
	var trip models.Trip
	err := intdb.WithRetry(s.RequestID, "trip-lookup", func() error {
		var lookupErr error
		trip, lookupErr = s.TripRepo.GetByReference(req.BookingReference)
		if domain.IsNotFound(lookupErr) {
			return nil
		}
		return lookupErr
	})
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "could not check existing booking", Err: err}
	}
	if trip.ID > 0 {
		utils.LogEvent(s.RequestID, "checkout", "trip-reuse",
			"reference="+req.BookingReference+" existing trip reused")
		return trip, nil
	}

	trip = models.Trip{
		BookingReference: req.BookingReference,
		PickupAddress:    req.Trip.From,
		DropoffAddress:   req.Trip.To,
		ScheduledAt:      req.Trip.Date,
		ReturnAt:         req.Trip.ReturnDate,
		VehicleType:      req.Vehicle.Name,
		Passengers:       req.Trip.Passengers,
		CustomerName:     strings.TrimSpace(req.Customer.FirstName + " " + req.Customer.LastName),
		CustomerEmail:    req.Customer.Email,
		CustomerPhone:    req.Customer.Phone,
		UserID:           userID,
		PaymentMethod:    req.PaymentMethod,
		Amount:           req.Amount,
		Status:           models.TripStatusPending,
	}

	err = intdb.WithRetry(s.RequestID, "trip-insert", func() error {
		id, insertErr := s.TripRepo.Insert(trip)
		if insertErr != nil {
			return insertErr
		}
		trip.ID = id
		return nil
	})
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "could not save booking", Err: err}
	}
	return trip, nil
}

func buildLineItemDescription(req CheckoutRequest) string {
	tripType := "One-way transfer"
	if strings.EqualFold(req.Trip.Type, "return") || req.Trip.ReturnDate != "" {
		tripType = "Return transfer"
	}
	desc := fmt.Sprintf("%s - %s, %s", req.Vehicle.Name, tripType, utils.FormatDisplayDate(req.Trip.Date))
	if req.Trip.ReturnDate != "" {
		desc += " / " + utils.FormatDisplayDate(req.Trip.ReturnDate)
	}
	return desc
}

func buildMetadata(req CheckoutRequest, tripID int64) map[string]string {
	md := map[string]string{
		"booking_reference": req.BookingReference,
		"trip_id":           fmt.Sprintf("%d", tripID),
		"trip_from":         req.Trip.From,
		"trip_to":           req.Trip.To,
		"trip_date":         req.Trip.Date,
		"vehicle":           req.Vehicle.Name,
		"customer_email":    req.Customer.Email,
		"passengers":        fmt.Sprintf("%d", req.Trip.Passengers),
	}
	if len(req.Extras) > 0 {
		md["extras"] = strings.Join(req.Extras, ",")
	}
	if req.DiscountCode != "" {
		md["discount_code"] = req.DiscountCode
	}
	return md
}
