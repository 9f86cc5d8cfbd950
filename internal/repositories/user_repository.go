package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "transfers/internal/config"
	"transfers/internal/domain"
	"transfers/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByEmail fetches an account including its password hash.
func (r UserRepository) GetByEmail(email string) (models.User, error) {
	if email == "" {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "must not be empty"}
	}
	db := r.db()
	if db == nil {
		return models.User{}, fmt.Errorf("database not available")
	}

	var u models.User
	err := db.QueryRow(`
		SELECT id,
		       COALESCE(name,''),
		       email,
		       COALESCE(phone,''),
		       COALESCE(role,''),
		       COALESCE(status,''),
		       COALESCE(verified,0),
		       COALESCE(password_hash,'')
		FROM users
		WHERE email=? LIMIT 1`, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.Role,
		&u.Status,
		&u.Verified,
		&u.PasswordHash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByID fetches an account without its password hash.
func (r UserRepository) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()
	if db == nil {
		return models.User{}, fmt.Errorf("database not available")
	}

	var u models.User
	err := db.QueryRow(`
		SELECT id,
		       COALESCE(name,''),
		       email,
		       COALESCE(phone,''),
		       COALESCE(role,''),
		       COALESCE(status,''),
		       COALESCE(verified,0)
		FROM users
		WHERE id=? LIMIT 1`, id).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.Role,
		&u.Status,
		&u.Verified,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// IDByEmail is the best-effort lookup checkout uses to attach a user id.
func (r UserRepository) IDByEmail(email string) (int64, error) {
	u, err := r.GetByEmail(email)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// Insert creates a new account row and returns its id.
func (r UserRepository) Insert(u models.User) (int64, error) {
	if u.Email == "" {
		return 0, domain.ValidationError{Field: "email", Msg: "must not be empty"}
	}
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not available")
	}

	res, err := db.Exec(`
		INSERT INTO users (name, email, phone, password_hash, role, status, verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 'active', ?, NOW(), NOW())`,
		u.Name,
		u.Email,
		u.Phone,
		u.PasswordHash,
		u.Role,
		u.Verified,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// MarkVerified propagates a completed email verification to the account.
func (r UserRepository) MarkVerified(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not available")
	}

	_, err := db.Exec(`UPDATE users SET verified=1, updated_at=NOW() WHERE id=?`, id)
	return err
}
