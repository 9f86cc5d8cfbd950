package models

// WebhookFailure is the dead-letter record written when the payment
// webhook swallows an internal error behind its always-200 response.
type WebhookFailure struct {
	ID               int64  `json:"id"`
	EventType        string `json:"event_type"`
	BookingReference string `json:"booking_reference,omitempty"`
	Error            string `json:"error"`
	Payload          string `json:"payload,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
}
