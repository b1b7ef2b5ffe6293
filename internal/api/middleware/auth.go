package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Karthikeya277/robot-lab-pass/internal/core/ports"
)

// Auth validates the bearer JWT, rejects revoked tokens, and injects the
// claims into the request context. A nil revoker skips the revocation
// check.
func Auth(jwtSecret string, revoker ports.TokenRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			tokenID, _ := claims["jti"].(string)
			if revoker != nil && tokenID != "" {
				revoked, err := revoker.IsRevoked(c.Request().Context(), tokenID)
				if err != nil {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "session check unavailable")
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			c.Set("user_id", claims["sub"])
			c.Set("login_id", claims["login_id"])
			c.Set("role", claims["role"])
			c.Set("token_id", tokenID)
			if exp, ok := claims["exp"].(float64); ok {
				c.Set("token_expires_at", time.Unix(int64(exp), 0))
			}

			return next(c)
		}
	}
}
