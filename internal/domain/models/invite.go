package models

import "time"

const (
	InviteStatusActive  = "active"
	InviteStatusUsed    = "used"
	InviteStatusExpired = "expired"
)

// InviteLink is a single-use partner invite. Consumption is a conditional
// UPDATE guarded on status='active'; the affected-row count decides success.
type InviteLink struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	UsedAt    time.Time `json:"used_at,omitempty"`
	UsedBy    int64     `json:"used_by,omitempty"`
}

// PartnerApplication carries the prefill data a partner submitted before
// accepting the invite. Stamped with user_id once the account exists.
type PartnerApplication struct {
	ID           int64  `json:"id"`
	InviteLinkID int64  `json:"invite_link_id"`
	UserID       int64  `json:"user_id,omitempty"`
	CompanyName  string `json:"company_name"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Country      string `json:"country"`
}
