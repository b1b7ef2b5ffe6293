package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Karthikeya277/robot-lab-pass/internal/core/domain"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/guard"
	"github.com/Karthikeya277/robot-lab-pass/internal/core/session"
)

// guardResponse is the envelope returned when a navigation is refused.
// The redirect field tells clients where the original app would send
// the user.
type guardResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// Protect evaluates the route guard for the authenticated caller. The
// priority order is fixed: unresolved session, then missing identity,
// then missing profile, then role gate. An unauthenticated caller always
// gets the auth redirect, never the unauthorized one.
func Protect(sessions *session.Manager, allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)

			var snap session.Snapshot
			if userID != "" {
				resolved, err := sessions.Resolve(c.Request().Context(), userID)
				if err != nil {
					// Transport failure: the snapshot stays in the
					// loading state and the caller gets the interstitial.
					c.Logger().Error(err)
				}
				snap = resolved
			}

			switch outcome := guard.Evaluate(snap.GuardState(allowed)); outcome {
			case guard.Interstitial:
				return c.JSON(http.StatusServiceUnavailable, guardResponse{Error: "session not ready, retry"})
			case guard.RedirectAuth:
				return c.JSON(http.StatusUnauthorized, guardResponse{Error: "authentication required", Redirect: "/auth"})
			case guard.RedirectCompleteProfile:
				return c.JSON(http.StatusForbidden, guardResponse{Error: "profile incomplete", Redirect: "/complete-profile"})
			case guard.RedirectUnauthorized:
				return c.JSON(http.StatusForbidden, guardResponse{Error: "forbidden", Redirect: "/unauthorized"})
			}

			c.Set("profile", snap.Profile)
			return next(c)
		}
	}
}
