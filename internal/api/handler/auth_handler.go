package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Karthikeya277/robot-lab-pass/internal/api/metrics"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/ports"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/session"
)

// AuthHandler handles registration, login, logout and session lookup.
type AuthHandler struct {
	authService ports.AuthService
	sessions    *session.Manager
}

func NewAuthHandler(authService ports.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// RegisterStudent creates a student account and derives its login id.
//
// @Summary      Register a student
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerStudentRequest  true  "Student registration details"
// @Success      201   {object}  registrationResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register/student [post]
func (h *AuthHandler) RegisterStudent(c echo.Context) error {
	var req registerStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.RegisterStudent(c.Request().Context(), ports.RegisterStudentInput{
		Name:           req.Name,
		RegisterNumber: req.RegisterNumber,
		Year:           req.Year,
		Branch:         req.Branch,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		Password:       req.Password,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(domain.RoleStudent)).Inc()
	return c.JSON(http.StatusCreated, registrationResponse{
		LoginID: result.LoginID,
		Profile: result.Profile,
	})
}

// RegisterFaculty creates a faculty account and derives its login id.
//
// @Summary      Register a faculty member
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerFacultyRequest  true  "Faculty registration details"
// @Success      201   {object}  registrationResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register/faculty [post]
func (h *AuthHandler) RegisterFaculty(c echo.Context) error {
	var req registerFacultyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.RegisterFaculty(c.Request().Context(), ports.RegisterFacultyInput{
		Name:        req.Name,
		Department:  req.Department,
		Designation: req.Designation,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(domain.RoleFaculty)).Inc()
	return c.JSON(http.StatusCreated, registrationResponse{
		LoginID: result.LoginID,
		Profile: result.Profile,
	})
}

// Login authenticates by login id and returns a signed token.
//
// @Summary      Login with a login id
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.LoginID, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Profile:   result.Profile,
	})
}

// Logout revokes the caller's token until its natural expiry.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204  "token revoked"
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	tokenID, _ := c.Get("token_id").(string)
	if tokenID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	expiresAt, _ := c.Get("token_expires_at").(time.Time)

	if err := h.authService.Logout(c.Request().Context(), tokenID, expiresAt); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session returns the caller's resolved identity and profile. A valid
// token with no profile yet is not an error: the response simply has no
// profile, which tells the client to complete it.
//
// @Summary      Current session state
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	snap, err := h.sessions.Resolve(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "session lookup unavailable")
	}

	resp := sessionResponse{Loading: snap.Loading}
	if snap.Identity != nil {
		resp.Identity = &identityView{ID: snap.Identity.ID, Email: snap.Identity.Email}
	}
	if snap.Profile != nil {
		resp.Profile = snap.Profile
		resp.Role = string(snap.Profile.Role)
	}
	return c.JSON(http.StatusOK, resp)
}
