package ports

import (
	"context"
	"time"

	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
)

// RegisterStudentInput carries a student registration form.
type RegisterStudentInput struct {
	Name           string
	RegisterNumber string
	Year           int
	Branch         string
	PhoneNumber    string
	Email          string
	Password       string
}

// RegisterFacultyInput carries a faculty registration form.
type RegisterFacultyInput struct {
	Name        string
	Department  string
	Designation string
	PhoneNumber string
	Email       string
	Password    string
}

// RegistrationResult is returned after a successful registration. The
// login id is surfaced to the user, who needs it to log in.
type RegistrationResult struct {
	LoginID string
	Profile *domain.Profile
}

// LoginResult carries the signed token and the resolved profile.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Profile   *domain.Profile
}

// AuthService implements registration, login by login id, and sign-out.
type AuthService interface {
	RegisterStudent(ctx context.Context, input RegisterStudentInput) (*RegistrationResult, error)
	RegisterFaculty(ctx context.Context, input RegisterFacultyInput) (*RegistrationResult, error)
	Login(ctx context.Context, loginID, password string) (*LoginResult, error)
	// Logout revokes the token until its expiry.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}
