package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "transfers/internal/config"
	"transfers/internal/domain"
	"transfers/internal/domain/models"
)

type VerificationRepository struct {
	DB *sql.DB
}

func (r VerificationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const verificationColumns = `id,
	       COALESCE(user_id,0),
	       COALESCE(token,''),
	       COALESCE(magic_token,''),
	       COALESCE(email,''),
	       expires_at,
	       COALESCE(verified,0)`

// DeleteUnverified removes any outstanding unverified row for the target,
// keeping at most one live OTP per user/email.
func (r VerificationRepository) DeleteUnverified(userID int64, email string) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not available")
	}

	if userID > 0 {
		_, err := db.Exec(`DELETE FROM email_verifications WHERE user_id=? AND verified=0`, userID)
		return err
	}
	if email != "" {
		_, err := db.Exec(`DELETE FROM email_verifications WHERE email=? AND verified=0`, email)
		return err
	}
	return domain.ValidationError{Msg: "user_id or email required"}
}

// Insert creates a verification row and returns its id.
func (r VerificationRepository) Insert(v models.EmailVerification) (int64, error) {
	if v.Token == "" || v.MagicToken == "" || v.Email == "" {
		return 0, domain.ValidationError{Msg: "token, magic_token and email are required"}
	}
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not available")
	}

	res, err := db.Exec(`
		INSERT INTO email_verifications (user_id, token, magic_token, email, expires_at, verified, created_at)
		VALUES (?, ?, ?, ?, ?, 0, NOW())`,
		nullIfZero(v.UserID),
		v.Token,
		v.MagicToken,
		v.Email,
		v.ExpiresAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByIDAndToken looks a row up for OTP verification.
func (r VerificationRepository) GetByIDAndToken(id int64, token string) (models.EmailVerification, error) {
	if id <= 0 || token == "" {
		return models.EmailVerification{}, domain.ValidationError{Msg: "verification id and otp are required"}
	}
	return r.getOne(`SELECT `+verificationColumns+` FROM email_verifications WHERE id=? AND token=? LIMIT 1`, id, token)
}

// GetByMagicToken looks a row up for the magic-link path.
func (r VerificationRepository) GetByMagicToken(token string) (models.EmailVerification, error) {
	if token == "" {
		return models.EmailVerification{}, domain.ValidationError{Field: "token", Msg: "must not be empty"}
	}
	return r.getOne(`SELECT `+verificationColumns+` FROM email_verifications WHERE magic_token=? LIMIT 1`, token)
}

// GetPendingByEmail returns the latest unverified row for an email.
func (r VerificationRepository) GetPendingByEmail(email string) (models.EmailVerification, error) {
	if email == "" {
		return models.EmailVerification{}, domain.ValidationError{Field: "email", Msg: "must not be empty"}
	}
	return r.getOne(`SELECT `+verificationColumns+` FROM email_verifications WHERE email=? AND verified=0 ORDER BY id DESC LIMIT 1`, email)
}

// HasVerifiedEmail reports whether any retained verification row shows
// the address as verified.
func (r VerificationRepository) HasVerifiedEmail(email string) (bool, error) {
	if email == "" {
		return false, domain.ValidationError{Field: "email", Msg: "must not be empty"}
	}
	db := r.db()
	if db == nil {
		return false, fmt.Errorf("database not available")
	}

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM email_verifications WHERE email=? AND verified=1`, email).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkVerified flips the row; verification is retained, never deleted.
func (r VerificationRepository) MarkVerified(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not available")
	}

	_, err := db.Exec(`UPDATE email_verifications SET verified=1, updated_at=NOW() WHERE id=?`, id)
	return err
}

func (r VerificationRepository) getOne(query string, args ...any) (models.EmailVerification, error) {
	db := r.db()
	if db == nil {
		return models.EmailVerification{}, fmt.Errorf("database not available")
	}

	var v models.EmailVerification
	err := db.QueryRow(query, args...).Scan(
		&v.ID,
		&v.UserID,
		&v.Token,
		&v.MagicToken,
		&v.Email,
		&v.ExpiresAt,
		&v.Verified,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.EmailVerification{}, domain.NotFoundError{Resource: "verification", Err: err}
	}
	if err != nil {
		return models.EmailVerification{}, err
	}
	return v, nil
}
