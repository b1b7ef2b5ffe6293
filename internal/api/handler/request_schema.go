package handler

import "time"

type submitRequestRequest struct {
	// RequestType is "personal" or "students". Only a faculty caller
	// choosing "students" produces a for-students request.
	RequestType string `json:"request_type" validate:"omitempty,oneof=personal students"`
	Purpose     string `json:"purpose"      validate:"required"`
	RequestDate string `json:"request_date" validate:"required,datetime=2006-01-02"`
	InTime      string `json:"in_time"      validate:"required,datetime=15:04"`
	OutTime     string `json:"out_time"     validate:"required,datetime=15:04"`
	NumSystems  *int   `json:"num_systems"  validate:"omitempty,min=1,max=28"`
	NumStudents *int   `json:"num_students" validate:"omitempty,min=1"`
}

type decideRequestRequest struct {
	Action           string `json:"action"            validate:"required,oneof=approve reject"`
	SystemsAllocated []int  `json:"systems_allocated" validate:"omitempty,dive,min=1,max=28"`
	AdminNotes       string `json:"admin_notes"`
}

type accessRequestResponse struct {
	ID               string    `json:"id"`
	Purpose          string    `json:"purpose"`
	RequestDate      string    `json:"request_date"`
	InTime           string    `json:"in_time"`
	OutTime          string    `json:"out_time"`
	Status           string    `json:"status"`
	IsForStudents    bool      `json:"is_for_students"`
	NumSystems       *int      `json:"num_systems,omitempty"`
	NumStudents      *int      `json:"num_students,omitempty"`
	SystemsAllocated []int     `json:"systems_allocated,omitempty"`
	AdminNotes       string    `json:"admin_notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// adminRequestResponse additionally exposes the owner, which the
// owner-scoped views deliberately omit.
type adminRequestResponse struct {
	accessRequestResponse
	UserID string `json:"user_id"`
}

type listRequestsResponse struct {
	Data []accessRequestResponse `json:"data"`
}

type listAdminRequestsResponse struct {
	Data []adminRequestResponse `json:"data"`
}
