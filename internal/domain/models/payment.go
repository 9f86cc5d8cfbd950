package models

// Payment is recorded only after a paid checkout.session.completed event.
// Amount is stored in Euro major units, converted down from the
// provider's integer minor-unit total.
type Payment struct {
	ID     int64   `json:"id"`
	TripID int64   `json:"trip_id"`
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Status string  `json:"status"`
	PaidAt string  `json:"paid_at"`
}
