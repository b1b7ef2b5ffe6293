package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of an access request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// MaxLabSystems is the number of numbered systems in the lab.
const MaxLabSystems = 28

// validTransitions defines the allowed state machine transitions.
// Approved and rejected are terminal.
var validTransitions = map[RequestStatus][]RequestStatus{
	StatusPending: {StatusApproved, StatusRejected},
}

var ErrRequestNotFound = errors.New("access request not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrFieldsRequired = errors.New("purpose, date, in time and out time are required")
var ErrStudentCountsRequired = errors.New("number of systems and students are required")
var ErrSystemsOutOfRange = errors.New("number of systems must be between 1 and 28")
var ErrTimeWindowInverted = errors.New("in time must be before out time")
var ErrBadTimeFormat = errors.New("times must be in HH:MM format")
var ErrAllocationMismatch = errors.New("allocated systems do not match the requested count")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from s to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AccessRequest is one time-windowed reservation against the lab,
// owned by a single identity and decided by the admin workflow.
type AccessRequest struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	UserID        string        `json:"user_id" bson:"user_id"`
	Purpose       string        `json:"purpose" bson:"purpose"`
	RequestDate   string        `json:"request_date" bson:"request_date"`
	InTime        string        `json:"in_time" bson:"in_time"`
	OutTime       string        `json:"out_time" bson:"out_time"`
	Status        RequestStatus `json:"status" bson:"status"`
	IsForStudents bool          `json:"is_for_students" bson:"is_for_students"`

	// Present only when IsForStudents is true.
	NumSystems  *int `json:"num_systems,omitempty" bson:"num_systems,omitempty"`
	NumStudents *int `json:"num_students,omitempty" bson:"num_students,omitempty"`

	// Written only by the admin workflow.
	SystemsAllocated []int  `json:"systems_allocated,omitempty" bson:"systems_allocated,omitempty"`
	AdminNotes       string `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ParseClock parses an HH:MM wall-clock string.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, ErrBadTimeFormat
	}
	return t, nil
}

// Validate checks the submission invariants: required fields, the
// student-count rule, the 1..28 systems bound, and the time window.
func (r *AccessRequest) Validate() error {
	if r.UserID == "" || r.Purpose == "" || r.RequestDate == "" || r.InTime == "" || r.OutTime == "" {
		return ErrFieldsRequired
	}
	in, err := ParseClock(r.InTime)
	if err != nil {
		return err
	}
	out, err := ParseClock(r.OutTime)
	if err != nil {
		return err
	}
	if !in.Before(out) {
		return ErrTimeWindowInverted
	}
	if r.IsForStudents {
		if r.NumSystems == nil || r.NumStudents == nil {
			return ErrStudentCountsRequired
		}
		if *r.NumSystems < 1 || *r.NumSystems > MaxLabSystems {
			return ErrSystemsOutOfRange
		}
	}
	return nil
}

// ValidateAllocation checks an admin's system allocation against the
// request: every id in 1..MaxLabSystems, no duplicates, and for a
// for-students request exactly NumSystems entries.
func (r *AccessRequest) ValidateAllocation(systems []int) error {
	seen := make(map[int]struct{}, len(systems))
	for _, id := range systems {
		if id < 1 || id > MaxLabSystems {
			return ErrSystemsOutOfRange
		}
		if _, dup := seen[id]; dup {
			return ErrAllocationMismatch
		}
		seen[id] = struct{}{}
	}
	if r.IsForStudents && r.NumSystems != nil && len(systems) != *r.NumSystems {
		return ErrAllocationMismatch
	}
	return nil
}
