package models

import "time"

// EmailVerification holds one OTP + magic-link pair. Only one unverified
// row may exist per user; send-otp deletes the previous one first.
type EmailVerification struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id,omitempty"`
	Token      string    `json:"-"`
	MagicToken string    `json:"-"`
	Email      string    `json:"email"`
	ExpiresAt  time.Time `json:"expires_at"`
	Verified   bool      `json:"verified"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// Expired reports whether the verification window has passed.
func (v EmailVerification) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
