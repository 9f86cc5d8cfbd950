package services

import (
	"fmt"

	intdb "transfers/internal/db"
	"transfers/internal/domain/models"
	"transfers/internal/events"
	"transfers/internal/providers/mailrelay"
	"transfers/internal/providers/payment"
	"transfers/internal/repositories"
	"transfers/internal/utils"
)

type WebhookService struct {
	TripRepo    repositories.TripRepository
	PaymentRepo repositories.PaymentRepository
	FailureRepo repositories.WebhookFailureRepository
	Relay       mailrelay.Client
	Publisher   *events.Publisher

	WebhookSecret string
	RequestID     string
}

// HandleEvent processes one provider webhook delivery. The returned error
// is for the (still-200) response body and the dead-letter table; the
// HTTP handler never propagates it as a failure status.
func (s WebhookService) HandleEvent(payload []byte, sigHeader string) error {
	ev, verified, err := payment.ParseEvent(payload, sigHeader, s.WebhookSecret)
	if err != nil {
		s.deadLetter("unknown", "", err, payload)
		return err
	}
	if !verified {
		utils.LogEvent(s.RequestID, "webhook", "signature",
			"processing unverified payload (missing secret or signature header)")
	}

	if ev.Type != payment.EventCheckoutCompleted {
		utils.LogEvent(s.RequestID, "webhook", "skip", "ignoring event type "+ev.Type)
		return nil
	}
	if ev.Data.Object.PaymentStatus != payment.PaymentStatusPaid {
		utils.LogEvent(s.RequestID, "webhook", "skip",
			"session "+ev.Data.Object.ID+" payment_status="+ev.Data.Object.PaymentStatus)
		return nil
	}

	if err := s.confirmPayment(ev); err != nil {
		s.deadLetter(ev.Type, ev.Data.Object.Metadata["booking_reference"], err, payload)
		return err
	}
	return nil
}

func (s WebhookService) confirmPayment(ev payment.Event) error {
	reference := ev.Data.Object.Metadata["booking_reference"]
	if reference == "" {
		return fmt.Errorf("event %s has no booking_reference in metadata", ev.ID)
	}

	var trip models.Trip
	err := intdb.WithRetry(s.RequestID, "webhook-trip-lookup", func() error {
		var lookupErr error
		trip, lookupErr = s.TripRepo.GetByReference(reference)
		return lookupErr
	})
	if err != nil {
		return fmt.Errorf("trip lookup for %s: %w", reference, err)
	}

	err = intdb.WithRetry(s.RequestID, "webhook-trip-accept", func() error {
		return s.TripRepo.UpdateStatus(trip.ID, models.TripStatusAccepted)
	})
	if err != nil {
		return fmt.Errorf("accepting trip %d: %w", trip.ID, err)
	}

	amount := utils.FromMinorUnits(ev.Data.Object.AmountTotal)
	if ev.Data.Object.AmountTotal <= 0 {
		amount = trip.Amount // provider total unavailable, keep our estimate
	}

	// The trip is already accepted at this point; a failed payment insert
	// is logged but does not roll that back.
	err = intdb.WithRetry(s.RequestID, "webhook-payment-insert", func() error {
		_, insertErr := s.PaymentRepo.Insert(models.Payment{
			TripID: trip.ID,
			Amount: amount,
			Method: "card",
			Status: "paid",
		})
		return insertErr
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "webhook", "payment-insert", "failed: "+err.Error())
	}

	s.sendConfirmationEmail(trip, amount)

	s.Publisher.Publish(s.RequestID, events.BookingEvent{
		Type:             events.TypePaymentAccepted,
		BookingReference: reference,
		TripID:           trip.ID,
		Amount:           amount,
		PaymentMethod:    "card",
	})
	return nil
}

// sendConfirmationEmail is best-effort: a relay failure never fails the
// money/trip-state transition.
func (s WebhookService) sendConfirmationEmail(trip models.Trip, amount float64) {
	if s.Relay == nil {
		return
	}
	err := s.Relay.SendBookingConfirmation(mailrelay.ConfirmationEmail{
		To:               trip.CustomerEmail,
		Name:             trip.CustomerName,
		BookingReference: trip.BookingReference,
		VehicleType:      trip.VehicleType,
		PickupAddress:    trip.PickupAddress,
		DropoffAddress:   trip.DropoffAddress,
		ScheduledAt:      utils.FormatDisplayDate(trip.ScheduledAt),
		ReturnAt:         utils.FormatDisplayDate(trip.ReturnAt),
		Amount:           utils.FormatEuro(amount),
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "webhook", "confirmation-email", "failed: "+err.Error())
	}
}

// deadLetter records the swallowed failure; itself best-effort.
func (s WebhookService) deadLetter(eventType, reference string, cause error, payload []byte) {
	utils.LogEvent(s.RequestID, "webhook", "dead-letter", cause.Error())
	err := s.FailureRepo.Insert(models.WebhookFailure{
		EventType:        eventType,
		BookingReference: reference,
		Error:            cause.Error(),
		Payload:          string(payload),
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "webhook", "dead-letter", "insert failed: "+err.Error())
	}
}
