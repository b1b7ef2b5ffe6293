package handler

import (
	"time"

	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerStudentRequest struct {
	Name           string `json:"name"            validate:"required"`
	RegisterNumber string `json:"register_number" validate:"required"`
	Year           int    `json:"year"            validate:"required,min=1,max=5"`
	Branch         string `json:"branch"          validate:"required,oneof=CSE ECE EEE ME CE IT AI"`
	PhoneNumber    string `json:"phone_number"    validate:"required,len=10,numeric"`
	Email          string `json:"email"           validate:"required,email"`
	Password       string `json:"password"        validate:"required,min=8"`
}

type registerFacultyRequest struct {
	Name        string `json:"name"         validate:"required"`
	Department  string `json:"department"   validate:"required,oneof=CSE ECE EEE ME CE IT AI"`
	Designation string `json:"designation"  validate:"required,oneof='Assistant Professor' 'Associate Professor' Professor HOD 'Lab Instructor'"`
	PhoneNumber string `json:"phone_number" validate:"required,len=10,numeric"`
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8"`
}

type loginRequest struct {
	LoginID  string `json:"login_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---

type registrationResponse struct {
	// LoginID is surfaced prominently: the user needs it to log in.
	LoginID string          `json:"login_id"`
	Profile *domain.Profile `json:"profile"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   *domain.Profile `json:"profile"`
}

type identityView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type sessionResponse struct {
	Identity *identityView   `json:"identity,omitempty"`
	Profile  *domain.Profile `json:"profile,omitempty"`
	Role     string          `json:"role,omitempty"`
	Loading  bool            `json:"loading"`
}
