package domain

import (
	"errors"
	"time"
)

// Field length limits enforced at the API boundary.
const (
	MaxFirstnameLen  = 50
	MaxSecondnameLen = 50
	MaxEmailLen      = 50
)

var ErrContactNotFound = errors.New("contact not found")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailNotConfirmed = errors.New("email not confirmed")
var ErrInvalidToken = errors.New("invalid token")

// Contact is the core aggregate: a single address-book entry owned by
// exactly one user. Birthday and Notes are optional and stay nil until set.
type Contact struct {
	ID         int64      `json:"id"`
	Firstname  string     `json:"firstname"`
	Secondname string     `json:"secondname"`
	Email      string     `json:"email"`
	Telephone  int64      `json:"telephone"`
	Birthday   *time.Time `json:"birthday,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	UserID     int64      `json:"user_id"`
}
