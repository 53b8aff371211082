package domain

import "time"

// User models an authenticated account that owns contacts.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Confirmed    bool      `json:"confirmed"`
	Avatar       string    `json:"avatar,omitempty"`
	RefreshToken *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
