package models

// User backs both customer email lookups at checkout and partner accounts.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	Verified     bool   `json:"verified"`
	PasswordHash string `json:"-"`
}
