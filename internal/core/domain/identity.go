package domain

import (
	"errors"
	"time"
)

var ErrEmailTaken = errors.New("email already registered")
var ErrIdentityNotFound = errors.New("identity not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity is the authentication account a profile is layered on top of.
// The password is only ever held as a bcrypt hash.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
