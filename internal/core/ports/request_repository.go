package ports

import (
	"context"
	"time"

	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
)

// Decision is the admin verdict applied to a pending access request.
type Decision struct {
	Status           domain.RequestStatus
	SystemsAllocated []int
	AdminNotes       string
	DecidedAt        time.Time
}

// AccessRequestRepository persists access requests.
type AccessRequestRepository interface {
	Create(ctx context.Context, request *domain.AccessRequest) error
	FindByID(ctx context.Context, id string) (*domain.AccessRequest, error)
	// ListByOwner returns the owner's requests ordered by creation time,
	// newest first.
	ListByOwner(ctx context.Context, userID string) ([]*domain.AccessRequest, error)
	// ListAll returns every request, newest first. Admin workflow only.
	ListAll(ctx context.Context) ([]*domain.AccessRequest, error)
	// ApplyDecision atomically moves a pending request to its decided
	// status and records the allocation. Fails with
	// domain.ErrInvalidTransition when the request is no longer pending,
	// so concurrent admins cannot double-decide.
	ApplyDecision(ctx context.Context, id string, decision Decision) error
}
