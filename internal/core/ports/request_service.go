package ports

import (
	"context"

	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
)

// RequestTypePersonal and RequestTypeStudents are the two submission
// modes. Only a faculty submitter choosing "students" produces a
// for-students request; every other combination is personal.
const (
	RequestTypePersonal = "personal"
	RequestTypeStudents = "students"
)

// SubmitRequestInput is the DTO for a new access request submission.
type SubmitRequestInput struct {
	UserID      string
	Role        domain.Role
	RequestType string
	Purpose     string
	RequestDate string
	InTime      string
	OutTime     string
	NumSystems  *int
	NumStudents *int
}

// DecideRequestInput carries an admin's verdict on a pending request.
type DecideRequestInput struct {
	RequestID        string
	Approve          bool
	SystemsAllocated []int
	AdminNotes       string
}

// RequestService defines the request workflow use cases.
type RequestService interface {
	Submit(ctx context.Context, input SubmitRequestInput) (*domain.AccessRequest, error)
	// ListOwn returns the caller's requests, newest first.
	ListOwn(ctx context.Context, userID string) ([]*domain.AccessRequest, error)
	// ListAll returns every request, newest first. Admin only.
	ListAll(ctx context.Context) ([]*domain.AccessRequest, error)
	Decide(ctx context.Context, input DecideRequestInput) (*domain.AccessRequest, error)
}
