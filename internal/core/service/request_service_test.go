package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/ports"
)

type stubRequestRepo struct {
	requests    []*domain.AccessRequest
	createCalls int
	nextID      int
}

func (r *stubRequestRepo) Create(_ context.Context, request *domain.AccessRequest) error {
	r.createCalls++
	r.nextID++
	request.ID = fmt.Sprintf("req-%d", r.nextID)
	clone := *request
	// Newest first, like the mongo repository's sort order.
	r.requests = append([]*domain.AccessRequest{&clone}, r.requests...)
	return nil
}

func (r *stubRequestRepo) FindByID(_ context.Context, id string) (*domain.AccessRequest, error) {
	for _, request := range r.requests {
		if request.ID == id {
			clone := *request
			return &clone, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (r *stubRequestRepo) ListByOwner(_ context.Context, userID string) ([]*domain.AccessRequest, error) {
	var out []*domain.AccessRequest
	for _, request := range r.requests {
		if request.UserID == userID {
			clone := *request
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubRequestRepo) ListAll(_ context.Context) ([]*domain.AccessRequest, error) {
	out := make([]*domain.AccessRequest, 0, len(r.requests))
	for _, request := range r.requests {
		clone := *request
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubRequestRepo) ApplyDecision(_ context.Context, id string, decision ports.Decision) error {
	for _, request := range r.requests {
		if request.ID == id {
			if request.Status != domain.StatusPending {
				return domain.ErrInvalidTransition
			}
			request.Status = decision.Status
			request.SystemsAllocated = decision.SystemsAllocated
			request.AdminNotes = decision.AdminNotes
			request.UpdatedAt = decision.DecidedAt
			return nil
		}
	}
	return domain.ErrRequestNotFound
}

func intp(n int) *int { return &n }

func submitInput(role domain.Role, requestType string) ports.SubmitRequestInput {
	return ports.SubmitRequestInput{
		UserID:      "u1",
		Role:        role,
		RequestType: requestType,
		Purpose:     "Robot demo",
		RequestDate: "2025-03-01",
		InTime:      "10:00",
		OutTime:     "12:00",
	}
}

func TestSubmit_PersonalFaculty(t *testing.T) {
	repo := &stubRequestRepo{}
	svc := NewRequestService(repo, zerolog.Nop())

	request, err := svc.Submit(context.Background(), submitInput(domain.RoleFaculty, ports.RequestTypePersonal))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if request.IsForStudents {
		t.Fatalf("personal request must not be for students")
	}
	if request.NumSystems != nil || request.NumStudents != nil {
		t.Fatalf("personal request must not carry counts")
	}
	if request.Status != domain.StatusPending {
		t.Fatalf("expected pending status, got %s", request.Status)
	}
}

func TestSubmit_IsForStudentsTruthTable(t *testing.T) {
	cases := []struct {
		role        domain.Role
		requestType string
		want        bool
	}{
		{domain.RoleFaculty, ports.RequestTypeStudents, true},
		{domain.RoleFaculty, ports.RequestTypePersonal, false},
		{domain.RoleStudent, ports.RequestTypeStudents, false},
		{domain.RoleStudent, ports.RequestTypePersonal, false},
	}
	for _, tc := range cases {
		repo := &stubRequestRepo{}
		svc := NewRequestService(repo, zerolog.Nop())

		input := submitInput(tc.role, tc.requestType)
		if tc.want {
			input.NumSystems = intp(5)
			input.NumStudents = intp(10)
		}
		request, err := svc.Submit(context.Background(), input)
		if err != nil {
			t.Fatalf("role=%s type=%s: %v", tc.role, tc.requestType, err)
		}
		if request.IsForStudents != tc.want {
			t.Fatalf("role=%s type=%s: is_for_students=%v, want %v", tc.role, tc.requestType, request.IsForStudents, tc.want)
		}
	}
}

func TestSubmit_StudentTypeByStudentDropsCounts(t *testing.T) {
	repo := &stubRequestRepo{}
	svc := NewRequestService(repo, zerolog.Nop())

	// A student choosing "students" is still a personal request and the
	// counts are discarded, not required.
	input := submitInput(domain.RoleStudent, ports.RequestTypeStudents)
	input.NumSystems = intp(5)
	input.NumStudents = intp(10)

	request, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if request.IsForStudents || request.NumSystems != nil || request.NumStudents != nil {
		t.Fatalf("counts must be dropped for non-faculty submissions: %+v", request)
	}
}

func TestSubmit_RequiredFieldsShortCircuit(t *testing.T) {
	mutations := []func(*ports.SubmitRequestInput){
		func(in *ports.SubmitRequestInput) { in.Purpose = "" },
		func(in *ports.SubmitRequestInput) { in.RequestDate = "" },
		func(in *ports.SubmitRequestInput) { in.InTime = "" },
		func(in *ports.SubmitRequestInput) { in.OutTime = "" },
	}
	for i, mutate := range mutations {
		repo := &stubRequestRepo{}
		svc := NewRequestService(repo, zerolog.Nop())

		input := submitInput(domain.RoleStudent, ports.RequestTypePersonal)
		mutate(&input)
		if _, err := svc.Submit(context.Background(), input); err != domain.ErrFieldsRequired {
			t.Fatalf("case %d: expected ErrFieldsRequired, got %v", i, err)
		}
		if repo.createCalls != 0 {
			t.Fatalf("case %d: repository must not be called on validation failure", i)
		}
	}
}

func TestSubmit_StudentCountsRequiredShortCircuit(t *testing.T) {
	repo := &stubRequestRepo{}
	svc := NewRequestService(repo, zerolog.Nop())

	input := submitInput(domain.RoleFaculty, ports.RequestTypeStudents)
	input.NumSystems = intp(5)
	if _, err := svc.Submit(context.Background(), input); err != domain.ErrStudentCountsRequired {
		t.Fatalf("expected ErrStudentCountsRequired, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("repository must not be called")
	}
}

func TestSubmit_SystemsBoundEnforced(t *testing.T) {
	repo := &stubRequestRepo{}
	svc := NewRequestService(repo, zerolog.Nop())

	input := submitInput(domain.RoleFaculty, ports.RequestTypeStudents)
	input.NumSystems = intp(30)
	input.NumStudents = intp(30)
	if _, err := svc.Submit(context.Background(), input); err != domain.ErrSystemsOutOfRange {
		t.Fatalf("expected ErrSystemsOutOfRange, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("repository must not be called")
	}
}

func TestSubmit_InvertedWindowShortCircuit(t *testing.T) {
	repo := &stubRequestRepo{}
	svc := NewRequestService(repo, zerolog.Nop())

	input := submitInput(domain.RoleStudent, ports.RequestTypePersonal)
	input.InTime = "14:00"
	input.OutTime = "09:00"
	if _, err := svc.Submit(context.Background(), input); err != domain.ErrTimeWindowInverted {
		t.Fatalf("expected ErrTimeWindowInverted, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("repository must not be called")
	}
}

func TestListOwn_ScopedToOwner(t *testing.T) {
	repo := &stubRequestRepo{}
	svc := NewRequestService(repo, zerolog.Nop())

	first := submitInput(domain.RoleStudent, ports.RequestTypePersonal)
	if _, err := svc.Submit(context.Background(), first); err != nil {
		t.Fatalf("submit: %v", err)
	}
	other := submitInput(domain.RoleStudent, ports.RequestTypePersonal)
	other.UserID = "u2"
	if _, err := svc.Submit(context.Background(), other); err != nil {
		t.Fatalf("submit: %v", err)
	}

	own, err := svc.ListOwn(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListOwn: %v", err)
	}
	if len(own) != 1 || own[0].UserID != "u1" {
		t.Fatalf("expected only u1's requests, got %+v", own)
	}

	if _, err := svc.ListOwn(context.Background(), ""); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for missing owner, got %v", err)
	}
}

func TestDecide_ApproveWithAllocation(t *testing.T) {
	repo := &stubRequestRepo{}
	svc := NewRequestService(repo, zerolog.Nop())

	input := submitInput(domain.RoleFaculty, ports.RequestTypeStudents)
	input.NumSystems = intp(3)
	input.NumStudents = intp(6)
	created, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	decided, err := svc.Decide(context.Background(), ports.DecideRequestInput{
		RequestID:        created.ID,
		Approve:          true,
		SystemsAllocated: []int{4, 9, 17},
		AdminNotes:       "approved for lab slot A",
	})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decided.Status != domain.StatusApproved {
		t.Fatalf("expected approved, got %s", decided.Status)
	}
	if len(decided.SystemsAllocated) != 3 {
		t.Fatalf("expected allocation recorded, got %v", decided.SystemsAllocated)
	}
}

func TestDecide_AllocationMismatchRejected(t *testing.T) {
	repo := &stubRequestRepo{}
	svc := NewRequestService(repo, zerolog.Nop())

	input := submitInput(domain.RoleFaculty, ports.RequestTypeStudents)
	input.NumSystems = intp(3)
	input.NumStudents = intp(6)
	created, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.Decide(context.Background(), ports.DecideRequestInput{
		RequestID:        created.ID,
		Approve:          true,
		SystemsAllocated: []int{4, 9},
	}); err != domain.ErrAllocationMismatch {
		t.Fatalf("expected ErrAllocationMismatch, got %v", err)
	}
}

func TestDecide_TerminalStatusImmutable(t *testing.T) {
	repo := &stubRequestRepo{}
	svc := NewRequestService(repo, zerolog.Nop())

	created, err := svc.Submit(context.Background(), submitInput(domain.RoleStudent, ports.RequestTypePersonal))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.Decide(context.Background(), ports.DecideRequestInput{RequestID: created.ID, Approve: false, AdminNotes: "lab closed"}); err != nil {
		t.Fatalf("first decision failed: %v", err)
	}
	if _, err := svc.Decide(context.Background(), ports.DecideRequestInput{RequestID: created.ID, Approve: true}); err != domain.ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition on second decision, got %v", err)
	}
}

func TestDecide_UnknownRequest(t *testing.T) {
	svc := NewRequestService(&stubRequestRepo{}, zerolog.Nop())
	if _, err := svc.Decide(context.Background(), ports.DecideRequestInput{RequestID: "missing", Approve: true}); err != domain.ErrRequestNotFound {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}
