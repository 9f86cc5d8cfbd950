package repositories

import (
	"testing"

	"transfers/internal/domain"
	"transfers/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func tripRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_reference", "pickup_address", "dropoff_address",
		"scheduled_at", "return_at", "vehicle_type", "passengers",
		"customer_name", "customer_email", "customer_phone", "user_id",
		"payment_method", "amount", "status",
	})
}

func TestTripGetByReferenceNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM trips").
		WithArgs("RT-404").
		WillReturnRows(tripRows())

	repo := TripRepository{DB: db}
	_, err = repo.GetByReference("RT-404")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripGetByReferenceFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM trips").
		WithArgs("RT-0001").
		WillReturnRows(tripRows().AddRow(
			7, "RT-0001", "Airport", "Hotel Plaza",
			"2026-06-14 09:30:00", "", "Comfort Sedan", 2,
			"Ada Lovelace", "ada@example.com", "+31600000000", 0,
			"card", 45.50, "pending",
		))

	repo := TripRepository{DB: db}
	trip, err := repo.GetByReference("RT-0001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if trip.ID != 7 || trip.Status != models.TripStatusPending {
		t.Fatalf("unexpected trip: %+v", trip)
	}
}

func TestTripInsertReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(42, 1))

	repo := TripRepository{DB: db}
	id, err := repo.Insert(models.Trip{
		BookingReference: "RT-0002",
		PickupAddress:    "A",
		DropoffAddress:   "B",
		ScheduledAt:      "2026-06-14 09:30:00",
		VehicleType:      "Minivan",
		Passengers:       4,
		PaymentMethod:    "card",
		Amount:           55,
		Status:           models.TripStatusPending,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d", id)
	}
}

func TestTripUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE trips SET status").
		WithArgs(models.TripStatusAccepted, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := TripRepository{DB: db}
	if err := repo.UpdateStatus(99, models.TripStatusAccepted); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
