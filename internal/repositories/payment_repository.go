package repositories

import (
	"database/sql"
	"fmt"

	intconfig "transfers/internal/config"
	"transfers/internal/domain"
	"transfers/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert records a confirmed payment against a trip.
func (r PaymentRepository) Insert(p models.Payment) (int64, error) {
	if p.TripID <= 0 {
		return 0, domain.ValidationError{Field: "trip_id", Msg: "must be positive"}
	}
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not available")
	}

	res, err := db.Exec(`
		INSERT INTO payments (trip_id, amount, method, status, paid_at, created_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())`,
		p.TripID,
		p.Amount,
		p.Method,
		p.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// CountByTripID reports how many payments reference a trip.
func (r PaymentRepository) CountByTripID(tripID int64) (int, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not available")
	}

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM payments WHERE trip_id=?`, tripID).Scan(&count)
	return count, err
}
