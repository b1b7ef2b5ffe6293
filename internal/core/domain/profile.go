package domain

import (
	"errors"
	"time"
)

var ErrLoginIDTaken = errors.New("login id already registered")
var ErrProfileNotFound = errors.New("profile not found")
var ErrRoleMismatch = errors.New("login id tag does not match profile role")
var ErrProfileIncomplete = errors.New("profile is missing required fields")

// Profile is the application-level account layered on top of an Identity.
// Role, login id, and the identity reference are immutable after creation.
type Profile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Role        Role      `json:"role"`
	LoginID     string    `json:"login_id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Faculty-only fields.
	Department  string `json:"department,omitempty"`
	Designation string `json:"designation,omitempty"`

	// Student-only fields.
	RegisterNumber string `json:"register_number,omitempty"`
	Year           int    `json:"year,omitempty"`
	Branch         string `json:"branch,omitempty"`
}

// Validate checks the cross-field invariants that must hold before a
// profile is persisted: a known role, a 10-digit phone, a non-empty name,
// and a login id whose tag agrees with the role.
func (p *Profile) Validate() error {
	if !p.Role.Valid() {
		return ErrUnknownRole
	}
	if p.UserID == "" || p.Name == "" {
		return ErrProfileIncomplete
	}
	if !ValidPhone(p.PhoneNumber) {
		return ErrInvalidPhone
	}
	role, ok := ResolveRole(p.LoginID)
	if !ok || role != p.Role {
		return ErrRoleMismatch
	}
	switch p.Role {
	case RoleFaculty:
		if p.Department == "" || p.Designation == "" {
			return ErrProfileIncomplete
		}
	case RoleStudent:
		if p.RegisterNumber == "" || p.Branch == "" || p.Year < 1 {
			return ErrProfileIncomplete
		}
	}
	return nil
}
