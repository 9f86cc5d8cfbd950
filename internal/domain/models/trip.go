package models

// Trip status lifecycle: pending at checkout-session time, accepted once
// the provider confirms payment.
const (
	TripStatusPending  = "pending"
	TripStatusAccepted = "accepted"
)

// Trip is the persisted transfer booking. booking_reference is the unique
// business key; checkout reuses an existing row instead of duplicating.
type Trip struct {
	ID               int64   `json:"id"`
	BookingReference string  `json:"booking_reference"`
	PickupAddress    string  `json:"pickup_address"`
	DropoffAddress   string  `json:"dropoff_address"`
	ScheduledAt      string  `json:"scheduled_at"`
	ReturnAt         string  `json:"return_at,omitempty"`
	VehicleType      string  `json:"vehicle_type"`
	Passengers       int     `json:"passengers"`
	CustomerName     string  `json:"customer_name"`
	CustomerEmail    string  `json:"customer_email"`
	CustomerPhone    string  `json:"customer_phone"`
	UserID           int64   `json:"user_id,omitempty"`
	PaymentMethod    string  `json:"payment_method"`
	Amount           float64 `json:"amount"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at,omitempty"`
}
