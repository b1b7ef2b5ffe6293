package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
)

// ctxUserID extracts the authenticated user id injected by the Auth
// middleware. Its absence means the middleware did not run, which on a
// protected route is a wiring bug, so fail closed with 401.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// ctxProfile extracts the profile resolved by the Protect middleware.
func ctxProfile(c echo.Context) (*domain.Profile, error) {
	profile, _ := c.Get("profile").(*domain.Profile)
	if profile == nil {
		return nil, echo.NewHTTPError(http.StatusForbidden, "profile not resolved")
	}
	return profile, nil
}
