package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Karthikeya277/robot-lab-pass/internal/api/metrics"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/ports"
)

// AdminHandler handles the admin-side request workflow. Routes using it
// sit behind the admin role gate.
type AdminHandler struct {
	service ports.RequestService
}

func NewAdminHandler(service ports.RequestService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListAll returns every request in the system, newest first.
//
// @Summary      List all lab access requests
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listAdminRequestsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/requests [get]
func (h *AdminHandler) ListAll(c echo.Context) error {
	requests, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdminListResponse(requests))
}

// Decide approves or rejects a pending request. Approving a for-students
// request requires a system allocation matching the requested count.
//
// @Summary      Decide a pending request
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Request id"
// @Param        body  body      decideRequestRequest  true  "Decision details"
// @Success      200   {object}  adminRequestResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/requests/{id}/decision [post]
func (h *AdminHandler) Decide(c echo.Context) error {
	var req decideRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	decided, err := h.service.Decide(c.Request().Context(), ports.DecideRequestInput{
		RequestID:        c.Param("id"),
		Approve:          req.Action == "approve",
		SystemsAllocated: req.SystemsAllocated,
		AdminNotes:       req.AdminNotes,
	})
	if err != nil {
		return err
	}

	metrics.DecisionsTotal.WithLabelValues(string(decided.Status)).Inc()
	return c.JSON(http.StatusOK, adminRequestResponse{
		accessRequestResponse: toRequestResponse(decided),
		UserID:                decided.UserID,
	})
}
