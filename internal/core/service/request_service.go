package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/ports"
)

// RequestService implements submission, listing, and the admin decision
// workflow for access requests.
type RequestService struct {
	repo ports.AccessRequestRepository
	log  zerolog.Logger
}

func NewRequestService(repo ports.AccessRequestRepository, log zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, log: log}
}

// Submit validates the form and creates the request in status pending.
// Nothing is written when validation fails, and num_systems/num_students
// are only persisted on a faculty for-students request. Callers are
// expected to re-list after a confirmed submit rather than append
// optimistically, so the view reflects server-assigned fields.
func (s *RequestService) Submit(ctx context.Context, input ports.SubmitRequestInput) (*domain.AccessRequest, error) {
	isForStudents := input.Role == domain.RoleFaculty && input.RequestType == ports.RequestTypeStudents

	now := time.Now().UTC()
	request := &domain.AccessRequest{
		UserID:        input.UserID,
		Purpose:       input.Purpose,
		RequestDate:   input.RequestDate,
		InTime:        input.InTime,
		OutTime:       input.OutTime,
		Status:        domain.StatusPending,
		IsForStudents: isForStudents,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if isForStudents {
		request.NumSystems = input.NumSystems
		request.NumStudents = input.NumStudents
	}

	if err := request.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, request); err != nil {
		s.log.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create access request")
		return nil, err
	}

	s.log.Info().
		Str("user_id", input.UserID).
		Str("request_date", request.RequestDate).
		Bool("is_for_students", isForStudents).
		Msg("access request submitted")

	return request, nil
}

// ListOwn returns the caller's requests, newest first.
func (s *RequestService) ListOwn(ctx context.Context, userID string) ([]*domain.AccessRequest, error) {
	if userID == "" {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListByOwner(ctx, userID)
}

// ListAll returns every request, newest first.
func (s *RequestService) ListAll(ctx context.Context) ([]*domain.AccessRequest, error) {
	return s.repo.ListAll(ctx)
}

// Decide applies an admin verdict to a pending request. Approval of a
// for-students request must allocate exactly the requested number of
// systems, each a distinct id within the lab. The repository update is
// conditional on status still being pending, so a request cannot be
// decided twice.
func (s *RequestService) Decide(ctx context.Context, input ports.DecideRequestInput) (*domain.AccessRequest, error) {
	request, err := s.repo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	target := domain.StatusRejected
	if input.Approve {
		target = domain.StatusApproved
	}
	if !request.Status.CanTransitionTo(target) {
		return nil, domain.ErrInvalidTransition
	}

	decision := ports.Decision{
		Status:     target,
		AdminNotes: input.AdminNotes,
		DecidedAt:  time.Now().UTC(),
	}
	if input.Approve {
		if err := request.ValidateAllocation(input.SystemsAllocated); err != nil {
			return nil, err
		}
		decision.SystemsAllocated = input.SystemsAllocated
	}

	if err := s.repo.ApplyDecision(ctx, request.ID, decision); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("request_id", request.ID).
		Str("status", string(target)).
		Ints("systems", decision.SystemsAllocated).
		Msg("access request decided")

	request.Status = target
	request.SystemsAllocated = decision.SystemsAllocated
	request.AdminNotes = decision.AdminNotes
	request.UpdatedAt = decision.DecidedAt
	return request, nil
}
