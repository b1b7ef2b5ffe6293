package domain

import "testing"

func intp(n int) *int { return &n }

func validRequest() *AccessRequest {
	return &AccessRequest{
		UserID:      "u1",
		Purpose:     "Robot demo",
		RequestDate: "2025-03-01",
		InTime:      "10:00",
		OutTime:     "12:00",
		Status:      StatusPending,
	}
}

func TestRequestStatus_Transitions(t *testing.T) {
	if !StatusPending.CanTransitionTo(StatusApproved) {
		t.Fatalf("pending -> approved should be allowed")
	}
	if !StatusPending.CanTransitionTo(StatusRejected) {
		t.Fatalf("pending -> rejected should be allowed")
	}
	for _, from := range []RequestStatus{StatusApproved, StatusRejected} {
		for _, to := range []RequestStatus{StatusPending, StatusApproved, StatusRejected} {
			if from.CanTransitionTo(to) {
				t.Fatalf("%s -> %s should be rejected", from, to)
			}
		}
	}
}

func TestRequestValidate_RequiredFields(t *testing.T) {
	mutations := []func(*AccessRequest){
		func(r *AccessRequest) { r.Purpose = "" },
		func(r *AccessRequest) { r.RequestDate = "" },
		func(r *AccessRequest) { r.InTime = "" },
		func(r *AccessRequest) { r.OutTime = "" },
		func(r *AccessRequest) { r.UserID = "" },
	}
	for i, mutate := range mutations {
		r := validRequest()
		mutate(r)
		if err := r.Validate(); err != ErrFieldsRequired {
			t.Fatalf("case %d: expected ErrFieldsRequired, got %v", i, err)
		}
	}
}

func TestRequestValidate_TimeWindow(t *testing.T) {
	r := validRequest()
	r.InTime = "12:00"
	r.OutTime = "10:00"
	if err := r.Validate(); err != ErrTimeWindowInverted {
		t.Fatalf("expected ErrTimeWindowInverted, got %v", err)
	}

	r.OutTime = "12:00"
	if err := r.Validate(); err != ErrTimeWindowInverted {
		t.Fatalf("expected ErrTimeWindowInverted for equal times, got %v", err)
	}

	r.OutTime = "25:00"
	if err := r.Validate(); err != ErrBadTimeFormat {
		t.Fatalf("expected ErrBadTimeFormat, got %v", err)
	}
}

func TestRequestValidate_StudentCounts(t *testing.T) {
	r := validRequest()
	r.IsForStudents = true
	if err := r.Validate(); err != ErrStudentCountsRequired {
		t.Fatalf("expected ErrStudentCountsRequired, got %v", err)
	}

	r.NumSystems = intp(30)
	r.NumStudents = intp(30)
	if err := r.Validate(); err != ErrSystemsOutOfRange {
		t.Fatalf("expected ErrSystemsOutOfRange for 30 systems, got %v", err)
	}

	r.NumSystems = intp(0)
	if err := r.Validate(); err != ErrSystemsOutOfRange {
		t.Fatalf("expected ErrSystemsOutOfRange for 0 systems, got %v", err)
	}

	r.NumSystems = intp(28)
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestValidateAllocation(t *testing.T) {
	r := validRequest()
	r.IsForStudents = true
	r.NumSystems = intp(3)
	r.NumStudents = intp(6)

	if err := r.ValidateAllocation([]int{1, 2, 3}); err != nil {
		t.Fatalf("expected valid allocation, got %v", err)
	}
	if err := r.ValidateAllocation([]int{1, 2}); err != ErrAllocationMismatch {
		t.Fatalf("expected ErrAllocationMismatch for short allocation, got %v", err)
	}
	if err := r.ValidateAllocation([]int{1, 2, 2}); err != ErrAllocationMismatch {
		t.Fatalf("expected ErrAllocationMismatch for duplicate ids, got %v", err)
	}
	if err := r.ValidateAllocation([]int{1, 2, 29}); err != ErrSystemsOutOfRange {
		t.Fatalf("expected ErrSystemsOutOfRange, got %v", err)
	}

	personal := validRequest()
	if err := personal.ValidateAllocation([]int{7}); err != nil {
		t.Fatalf("personal request allocation should be free-form, got %v", err)
	}
}
