package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "transfers/internal/config"
	intdb "transfers/internal/db"
	"transfers/internal/domain"
	"transfers/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByReference fetches a trip by its booking reference. This is the
// idempotency lookup checkout runs before inserting.
func (r TripRepository) GetByReference(reference string) (models.Trip, error) {
	if reference == "" {
		return models.Trip{}, domain.ValidationError{Field: "booking_reference", Msg: "must not be empty"}
	}
	db := r.db()
	if db == nil {
		return models.Trip{}, fmt.Errorf("database not available")
	}

	query := `
		SELECT id,
		       booking_reference,
		       COALESCE(pickup_address,''),
		       COALESCE(dropoff_address,''),
		       COALESCE(scheduled_at,''),
		       COALESCE(return_at,''),
		       COALESCE(vehicle_type,''),
		       COALESCE(passengers,0),
		       COALESCE(customer_name,''),
		       COALESCE(customer_email,''),
		       COALESCE(customer_phone,''),
		       COALESCE(user_id,0),
		       COALESCE(payment_method,''),
		       COALESCE(amount,0),
		       COALESCE(status,'')
		FROM trips
		WHERE booking_reference=? LIMIT 1`

	var t models.Trip
	err := db.QueryRow(query, reference).Scan(
		&t.ID,
		&t.BookingReference,
		&t.PickupAddress,
		&t.DropoffAddress,
		&t.ScheduledAt,
		&t.ReturnAt,
		&t.VehicleType,
		&t.Passengers,
		&t.CustomerName,
		&t.CustomerEmail,
		&t.CustomerPhone,
		&t.UserID,
		&t.PaymentMethod,
		&t.Amount,
		&t.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: "trip", Err: err}
	}
	if err != nil {
		return models.Trip{}, err
	}
	return t, nil
}

// Insert creates a new trip row and returns its id.
func (r TripRepository) Insert(t models.Trip) (int64, error) {
	if t.BookingReference == "" {
		return 0, domain.ValidationError{Field: "booking_reference", Msg: "must not be empty"}
	}
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not available")
	}

	res, err := db.Exec(`
		INSERT INTO trips
			(booking_reference, pickup_address, dropoff_address, scheduled_at, return_at,
			 vehicle_type, passengers, customer_name, customer_email, customer_phone,
			 user_id, payment_method, amount, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		t.BookingReference,
		t.PickupAddress,
		t.DropoffAddress,
		t.ScheduledAt,
		intdb.NullIfEmpty(t.ReturnAt),
		t.VehicleType,
		t.Passengers,
		t.CustomerName,
		t.CustomerEmail,
		t.CustomerPhone,
		nullIfZero(t.UserID),
		t.PaymentMethod,
		t.Amount,
		t.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateStatus moves a trip through its lifecycle.
func (r TripRepository) UpdateStatus(id int64, status string) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not available")
	}

	res, err := db.Exec(`UPDATE trips SET status=?, updated_at=NOW() WHERE id=?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

func nullIfZero(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}
