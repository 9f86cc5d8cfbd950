package services

import (
	"errors"
	"testing"

	intconfig "transfers/internal/config"
	"transfers/internal/domain"
	"transfers/internal/providers/payment"

	"github.com/DATA-DOG/go-sqlmock"
)

type stubProvider struct {
	pingErr    error
	sessionErr error
	lastReq    payment.CreateSessionReq
	pings      int
	sessions   int
}

func (p *stubProvider) Ping() error {
	p.pings++
	return p.pingErr
}

func (p *stubProvider) CreateCheckoutSession(req payment.CreateSessionReq) (*payment.CreateSessionResp, error) {
	p.sessions++
	p.lastReq = req
	if p.sessionErr != nil {
		return nil, p.sessionErr
	}
	return &payment.CreateSessionResp{
		SessionID:  "cs_test_123",
		SessionURL: "https://checkout.example.com/cs_test_123",
	}, nil
}

func newCheckoutDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	mock.MatchExpectationsInOrder(false)
	prev := intconfig.DB
	intconfig.DB = db
	return mock, func() {
		intconfig.DB = prev
		db.Close()
	}
}

func cardRequest() CheckoutRequest {
	return CheckoutRequest{
		BookingReference: "RT-0001",
		Trip: &CheckoutTrip{
			From:       "Schiphol Airport",
			To:         "Hotel Plaza",
			Type:       "one-way",
			Date:       "2026-06-14 09:30:00",
			Passengers: 2,
		},
		Vehicle:       &CheckoutVehicle{ID: "comfort-sedan", Name: "Comfort Sedan"},
		Customer:      CheckoutCustomer{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"},
		Amount:        45.50,
		PaymentMethod: "card",
	}
}

func TestCheckoutCardCreatesTripAndSession(t *testing.T) {
	mock, done := newCheckoutDB(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT (.+) FROM trips").
		WithArgs("RT-0001").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(7, 1))

	provider := &stubProvider{}
	svc := CheckoutService{
		Provider:    provider,
		SiteBaseURL: "https://www.transferride.com",
		RequestID:   "test-req",
	}

	res, err := svc.Checkout(cardRequest())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if res.SessionURL != "https://checkout.example.com/cs_test_123" {
		t.Fatalf("session url = %q", res.SessionURL)
	}
	if res.BookingReference != "RT-0001" {
		t.Fatalf("reference = %q", res.BookingReference)
	}
	if provider.pings != 1 || provider.sessions != 1 {
		t.Fatalf("pings=%d sessions=%d", provider.pings, provider.sessions)
	}
	if provider.lastReq.AmountCents != 4550 {
		t.Fatalf("amount cents = %d", provider.lastReq.AmountCents)
	}
	if provider.lastReq.Currency != "eur" {
		t.Fatalf("currency = %q", provider.lastReq.Currency)
	}
	if provider.lastReq.Metadata["booking_reference"] != "RT-0001" {
		t.Fatalf("metadata = %v", provider.lastReq.Metadata)
	}
	if provider.lastReq.SuccessURL != "https://www.transferride.com/booking/success?ref=RT-0001" {
		t.Fatalf("success url = %q", provider.lastReq.SuccessURL)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckoutCashConfirmsWithoutProvider(t *testing.T) {
	mock, done := newCheckoutDB(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT (.+) FROM trips").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(8, 1))

	provider := &stubProvider{pingErr: errors.New("should not be called")}
	svc := CheckoutService{Provider: provider, RequestID: "test-req"}

	req := cardRequest()
	req.PaymentMethod = "cash"
	res, err := svc.Checkout(req)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if !res.Success {
		t.Fatal("cash checkout should confirm immediately")
	}
	if res.SessionURL != "" {
		t.Fatalf("cash checkout must not return a session url, got %q", res.SessionURL)
	}
	if provider.pings != 0 || provider.sessions != 0 {
		t.Fatalf("provider must not be touched for cash: pings=%d sessions=%d", provider.pings, provider.sessions)
	}
}

func TestCheckoutReusesExistingTrip(t *testing.T) {
	mock, done := newCheckoutDB(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT (.+) FROM trips").
		WithArgs("RT-0001").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_reference", "pickup_address", "dropoff_address",
			"scheduled_at", "return_at", "vehicle_type", "passengers",
			"customer_name", "customer_email", "customer_phone", "user_id",
			"payment_method", "amount", "status",
		}).AddRow(
			7, "RT-0001", "Schiphol Airport", "Hotel Plaza",
			"2026-06-14 09:30:00", "", "Comfort Sedan", 2,
			"Ada Lovelace", "ada@example.com", "", 0,
			"card", 45.50, "pending",
		))

	svc := CheckoutService{Provider: &stubProvider{}, RequestID: "test-req"}

	if _, err := svc.Checkout(cardRequest()); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	// No INSERT was expected; a second submission must reuse the row.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckoutRejectsZeroAmountBeforeProvider(t *testing.T) {
	mock, done := newCheckoutDB(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT (.+) FROM trips").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(9, 1))

	provider := &stubProvider{}
	svc := CheckoutService{Provider: provider, RequestID: "test-req"}

	req := cardRequest()
	req.Amount = 0
	_, err := svc.Checkout(req)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if provider.pings != 0 {
		t.Fatal("provider probe must not run for a zero amount")
	}
}

func TestCheckoutValidation(t *testing.T) {
	svc := CheckoutService{Provider: &stubProvider{}}

	cases := []struct {
		name   string
		mutate func(*CheckoutRequest)
	}{
		{"missing reference", func(r *CheckoutRequest) { r.BookingReference = "" }},
		{"missing trip", func(r *CheckoutRequest) { r.Trip = nil }},
		{"missing vehicle", func(r *CheckoutRequest) { r.Vehicle = nil }},
		{"missing email", func(r *CheckoutRequest) { r.Customer.Email = "" }},
		{"bad email", func(r *CheckoutRequest) { r.Customer.Email = "not-an-email" }},
		{"bad method", func(r *CheckoutRequest) { r.PaymentMethod = "bitcoin" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := cardRequest()
			tc.mutate(&req)
			if _, err := svc.Checkout(req); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCheckoutProviderDownSurfacesError(t *testing.T) {
	mock, done := newCheckoutDB(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT (.+) FROM trips").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(10, 1))

	provider := &stubProvider{pingErr: domain.ProviderError{
		Category: domain.ProviderConnection,
		Msg:      "connection refused",
	}}
	svc := CheckoutService{Provider: provider, RequestID: "test-req"}

	_, err := svc.Checkout(cardRequest())
	if perr, ok := domain.AsProvider(err); !ok || perr.Category != domain.ProviderConnection {
		t.Fatalf("expected connection provider error, got %v", err)
	}
	if provider.sessions != 0 {
		t.Fatal("session must not be created when the probe fails")
	}
}
