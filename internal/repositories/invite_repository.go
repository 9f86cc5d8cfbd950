package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "transfers/internal/config"
	"transfers/internal/domain"
	"transfers/internal/domain/models"
)

type InviteRepository struct {
	DB *sql.DB
}

func (r InviteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByCode fetches an invite regardless of status.
func (r InviteRepository) GetByCode(code string) (models.InviteLink, error) {
	if code == "" {
		return models.InviteLink{}, domain.ValidationError{Field: "code", Msg: "must not be empty"}
	}
	db := r.db()
	if db == nil {
		return models.InviteLink{}, fmt.Errorf("database not available")
	}

	var inv models.InviteLink
	var usedAt sql.NullTime
	var usedBy sql.NullInt64
	err := db.QueryRow(`
		SELECT id, code, COALESCE(status,''), COALESCE(role,''), expires_at, used_at, used_by
		FROM invite_links
		WHERE code=? LIMIT 1`, code).Scan(
		&inv.ID,
		&inv.Code,
		&inv.Status,
		&inv.Role,
		&inv.ExpiresAt,
		&usedAt,
		&usedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.InviteLink{}, domain.NotFoundError{Resource: "invite", Err: err}
	}
	if err != nil {
		return models.InviteLink{}, err
	}
	if usedAt.Valid {
		inv.UsedAt = usedAt.Time
	}
	if usedBy.Valid {
		inv.UsedBy = usedBy.Int64
	}
	return inv, nil
}

// MarkExpired flips an invite whose expires_at has passed.
func (r InviteRepository) MarkExpired(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not available")
	}

	_, err := db.Exec(`UPDATE invite_links SET status=? WHERE id=?`, models.InviteStatusExpired, id)
	return err
}

// Consume marks an invite used with a single conditional update. The
// affected-row count is the sole source of truth for success; a prior
// SELECT's view of the status must not drive control flow.
func (r InviteRepository) Consume(code string, userID int64) (bool, error) {
	if code == "" {
		return false, domain.ValidationError{Field: "code", Msg: "must not be empty"}
	}
	db := r.db()
	if db == nil {
		return false, fmt.Errorf("database not available")
	}

	res, err := db.Exec(`
		UPDATE invite_links
		SET status=?, used_at=NOW(), used_by=?
		WHERE code=? AND status=?`,
		models.InviteStatusUsed, userID, code, models.InviteStatusActive,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// GetApplicationByInviteID returns the prefill data linked to an invite.
func (r InviteRepository) GetApplicationByInviteID(inviteID int64) (models.PartnerApplication, error) {
	if inviteID <= 0 {
		return models.PartnerApplication{}, domain.ValidationError{Field: "invite_id", Msg: "must be positive"}
	}
	db := r.db()
	if db == nil {
		return models.PartnerApplication{}, fmt.Errorf("database not available")
	}

	var app models.PartnerApplication
	err := db.QueryRow(`
		SELECT id, invite_link_id, COALESCE(user_id,0),
		       COALESCE(company_name,''), COALESCE(contact_name,''),
		       COALESCE(email,''), COALESCE(phone,''), COALESCE(country,'')
		FROM partner_applications
		WHERE invite_link_id=? LIMIT 1`, inviteID).Scan(
		&app.ID,
		&app.InviteLinkID,
		&app.UserID,
		&app.CompanyName,
		&app.ContactName,
		&app.Email,
		&app.Phone,
		&app.Country,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PartnerApplication{}, domain.NotFoundError{Resource: "partner application", Err: err}
	}
	if err != nil {
		return models.PartnerApplication{}, err
	}
	return app, nil
}

// StampApplicationUser links a partner application to the created account.
func (r InviteRepository) StampApplicationUser(appID, userID int64) error {
	if appID <= 0 || userID <= 0 {
		return domain.ValidationError{Msg: "application id and user id must be positive"}
	}
	db := r.db()
	if db == nil {
		return fmt.Errorf("database not available")
	}

	_, err := db.Exec(`UPDATE partner_applications SET user_id=? WHERE id=?`, userID, appID)
	return err
}
