package catalog

// Vehicle is an entry in the static vehicle catalog shown by step one of
// the booking flow. BasePrice is the fallback when the pricing API has no
// matching category.
type Vehicle struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
	Capacity  int     `json:"capacity"`
}

// Extra is a bookable add-on service selected in step two.
type Extra struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

var vehicles = []Vehicle{
	{ID: "economy-sedan", Name: "Economy Sedan", BasePrice: 35.00, Capacity: 3},
	{ID: "comfort-sedan", Name: "Comfort Sedan", BasePrice: 45.00, Capacity: 3},
	{ID: "business-sedan", Name: "Business Sedan", BasePrice: 65.00, Capacity: 3},
	{ID: "minivan", Name: "Minivan", BasePrice: 55.00, Capacity: 6},
	{ID: "business-van", Name: "Business Van", BasePrice: 85.00, Capacity: 7},
	{ID: "minibus", Name: "Minibus", BasePrice: 120.00, Capacity: 16},
}

var extras = []Extra{
	{ID: "child-seat", Name: "Child seat", Price: 5.00},
	{ID: "booster-seat", Name: "Booster seat", Price: 5.00},
	{ID: "extra-luggage", Name: "Extra luggage", Price: 7.50},
	{ID: "meet-and-greet", Name: "Meet & greet", Price: 10.00},
	{ID: "bottled-water", Name: "Bottled water", Price: 2.00},
	{ID: "wheelchair", Name: "Wheelchair space", Price: 0},
}

// priceCategories maps vehicle ids to the category keys the pricing API
// responds with. Kept fixed; new vehicles must be added here too.
var priceCategories = map[string]string{
	"economy-sedan":  "economy",
	"comfort-sedan":  "comfort",
	"business-sedan": "business",
	"minivan":        "van",
	"business-van":   "business_van",
	"minibus":        "minibus",
}

// Vehicles returns the catalog in display order.
func Vehicles() []Vehicle {
	out := make([]Vehicle, len(vehicles))
	copy(out, vehicles)
	return out
}

// Extras returns the add-on catalog in display order.
func Extras() []Extra {
	out := make([]Extra, len(extras))
	copy(out, extras)
	return out
}

// VehicleByID looks up a catalog vehicle.
func VehicleByID(id string) (Vehicle, bool) {
	for _, v := range vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}

// ExtraByID looks up an add-on service.
func ExtraByID(id string) (Extra, bool) {
	for _, e := range extras {
		if e.ID == id {
			return e, true
		}
	}
	return Extra{}, false
}

// PriceCategory resolves the pricing-API category for a vehicle id.
func PriceCategory(vehicleID string) (string, bool) {
	c, ok := priceCategories[vehicleID]
	return c, ok
}
