package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Karthikeya277/robot-lab-pass/internal/api/metrics"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/ports"
)

// RequestHandler handles the submitter-facing request operations.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Submit creates a new lab access request for the caller.
//
// @Summary      Submit a lab access request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitRequestRequest  true  "Request details"
// @Success      201   {object}  accessRequestResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/requests [post]
func (h *RequestHandler) Submit(c echo.Context) error {
	var req submitRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := ctxProfile(c)
	if err != nil {
		return err
	}

	requestType := req.RequestType
	if requestType == "" {
		requestType = ports.RequestTypePersonal
	}

	created, err := h.service.Submit(c.Request().Context(), ports.SubmitRequestInput{
		UserID:      profile.UserID,
		Role:        profile.Role,
		RequestType: requestType,
		Purpose:     req.Purpose,
		RequestDate: req.RequestDate,
		InTime:      req.InTime,
		OutTime:     req.OutTime,
		NumSystems:  req.NumSystems,
		NumStudents: req.NumStudents,
	})
	if err != nil {
		return err
	}

	kind := ports.RequestTypePersonal
	if created.IsForStudents {
		kind = ports.RequestTypeStudents
	}
	metrics.RequestsSubmittedTotal.WithLabelValues(kind).Inc()

	return c.JSON(http.StatusCreated, toRequestResponse(created))
}

// List returns the caller's own requests, newest first.
//
// @Summary      List own lab access requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listRequestsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	profile, err := ctxProfile(c)
	if err != nil {
		return err
	}

	requests, err := h.service.ListOwn(c.Request().Context(), profile.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(requests))
}
