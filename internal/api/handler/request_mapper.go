package handler

import "github.com/Karthikeya277/robot-lab-pass/internal/core/domain"

func toRequestResponse(r *domain.AccessRequest) accessRequestResponse {
	return accessRequestResponse{
		ID:               r.ID,
		Purpose:          r.Purpose,
		RequestDate:      r.RequestDate,
		InTime:           r.InTime,
		OutTime:          r.OutTime,
		Status:           string(r.Status),
		IsForStudents:    r.IsForStudents,
		NumSystems:       r.NumSystems,
		NumStudents:      r.NumStudents,
		SystemsAllocated: r.SystemsAllocated,
		AdminNotes:       r.AdminNotes,
		CreatedAt:        r.CreatedAt.UTC(),
		UpdatedAt:        r.UpdatedAt.UTC(),
	}
}

func toListResponse(requests []*domain.AccessRequest) listRequestsResponse {
	items := make([]accessRequestResponse, len(requests))
	for i, r := range requests {
		items[i] = toRequestResponse(r)
	}
	return listRequestsResponse{Data: items}
}

func toAdminListResponse(requests []*domain.AccessRequest) listAdminRequestsResponse {
	items := make([]adminRequestResponse, len(requests))
	for i, r := range requests {
		items[i] = adminRequestResponse{
			accessRequestResponse: toRequestResponse(r),
			UserID:                r.UserID,
		}
	}
	return listAdminRequestsResponse{Data: items}
}
