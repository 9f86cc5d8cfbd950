package repositories

import (
	"database/sql"
	"fmt"

	intconfig "transfers/internal/config"
	"transfers/internal/domain/models"
)

type WebhookFailureRepository struct {
	DB *sql.DB
}

func (r WebhookFailureRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert writes a dead-letter row. The webhook handler calls this when it
// swallows an internal error behind its always-200 response, so operators
// have more than log scraping to go on.
func (r WebhookFailureRepository) Insert(f models.WebhookFailure) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not available")
	}

	_, err := db.Exec(`
		INSERT INTO webhook_failures (event_type, booking_reference, error, payload, created_at)
		VALUES (?, ?, ?, ?, NOW())`,
		f.EventType,
		f.BookingReference,
		f.Error,
		f.Payload,
	)
	return err
}
