package bookingflow

import (
	"transfers/internal/catalog"
	"transfers/internal/domain"
)

// TripDetails are the step-one fields of the wizard.
type TripDetails struct {
	From          string `json:"from"`
	To            string `json:"to"`
	FromName      string `json:"from_name"`
	ToName        string `json:"to_name"`
	IsReturn      bool   `json:"is_return"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	Passengers    int    `json:"passengers"`
}

// PersonalDetails are the step-two fields. Extras holds selected add-on
// service ids from the static catalog.
type PersonalDetails struct {
	Title          string   `json:"title"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Email          string   `json:"email"`
	Country        string   `json:"country"`
	Phone          string   `json:"phone"`
	Extras         []string `json:"extras,omitempty"`
	PickupAddress  string   `json:"pickup_address,omitempty"`
	DropoffAddress string   `json:"dropoff_address,omitempty"`
}

// PaymentDetails are the step-three fields. Card numbers are never held
// here; they are entered on the provider's hosted page.
type PaymentDetails struct {
	Method       string `json:"method"`
	DiscountCode string `json:"discount_code,omitempty"`
}

// PricingResponse is the server-computed price breakdown attached by the
// quote endpoint, keyed by vehicle price category.
type PricingResponse struct {
	Prices     map[string]float64 `json:"prices"`
	PickupLat  float64            `json:"pickup_lat,omitempty"`
	PickupLng  float64            `json:"pickup_lng,omitempty"`
	DropoffLat float64            `json:"dropoff_lat,omitempty"`
	DropoffLng float64            `json:"dropoff_lng,omitempty"`
	PickupTime string             `json:"pickup_time,omitempty"`
}

// BookingState is the in-progress booking held across the three wizard
// steps. Nothing is persisted server-side until checkout.
type BookingState struct {
	Step         int              `json:"step"`
	PreviousStep int              `json:"previous_step"`
	VehicleID    string           `json:"vehicle_id,omitempty"`
	Trip         TripDetails      `json:"trip"`
	Personal     PersonalDetails  `json:"personal"`
	Payment      PaymentDetails   `json:"payment"`
	Pricing      *PricingResponse `json:"pricing,omitempty"`
}

// Patch carries the fields a step wants to merge into the state. Nil
// fields are left untouched, so going back never clears later-step data.
type Patch struct {
	VehicleID *string          `json:"vehicle_id,omitempty"`
	Trip      *TripDetails     `json:"trip,omitempty"`
	Personal  *PersonalDetails `json:"personal,omitempty"`
	Payment   *PaymentDetails  `json:"payment,omitempty"`
	Pricing   *PricingResponse `json:"pricing,omitempty"`
}

// NewState returns the defaults the wizard starts from.
func NewState() *BookingState {
	return &BookingState{
		Step: 1,
		Trip: TripDetails{Passengers: 1},
		Payment: PaymentDetails{
			Method: "card",
		},
	}
}

// Advance merges patch into the state and moves to step. Validation of
// the step's own fields is the caller's responsibility; the holder only
// guards the step range.
func (s *BookingState) Advance(step int, patch Patch) error {
	if step < 1 || step > 3 {
		return domain.ValidationError{Field: "step", Msg: "must be 1, 2 or 3"}
	}
	if patch.VehicleID != nil {
		s.VehicleID = *patch.VehicleID
	}
	if patch.Trip != nil {
		s.Trip = *patch.Trip
	}
	if patch.Personal != nil {
		s.Personal = *patch.Personal
	}
	if patch.Payment != nil {
		s.Payment = *patch.Payment
	}
	if patch.Pricing != nil {
		s.Pricing = patch.Pricing
	}
	s.PreviousStep = s.Step
	s.Step = step
	return nil
}

// PriceSource tells the caller where the vehicle price came from.
type PriceSource string

const (
	PriceSourceAPI            PriceSource = "api"
	PriceSourceStaticFallback PriceSource = "static_fallback"
)

// PriceResult is an explicit total: callers (and tests) can tell a real
// API quote apart from the static catalog fallback.
type PriceResult struct {
	Amount float64     `json:"amount"`
	Source PriceSource `json:"source"`
}

// ComputeTotal resolves the selected vehicle's price, preferring the
// pricing response's matching category and falling back to the static
// base price, then adds the selected extras.
func (s *BookingState) ComputeTotal() (PriceResult, error) {
	if s.VehicleID == "" {
		return PriceResult{}, domain.ValidationError{Field: "vehicle_id", Msg: "no vehicle selected"}
	}
	vehicle, ok := catalog.VehicleByID(s.VehicleID)
	if !ok {
		return PriceResult{}, domain.NotFoundError{Resource: "vehicle " + s.VehicleID}
	}

	result := PriceResult{Amount: vehicle.BasePrice, Source: PriceSourceStaticFallback}
	if s.Pricing != nil {
		if category, ok := catalog.PriceCategory(vehicle.ID); ok {
			if price, ok := s.Pricing.Prices[category]; ok && price > 0 {
				result = PriceResult{Amount: price, Source: PriceSourceAPI}
			}
		}
	}

	for _, id := range s.Personal.Extras {
		if extra, ok := catalog.ExtraByID(id); ok {
			result.Amount += extra.Price
		}
	}
	return result, nil
}
