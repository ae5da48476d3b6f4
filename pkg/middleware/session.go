package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agricopilot/pkg/auth"
)

// Session resolves the session cookie, if any, and stores the user id in the
// echo context under "user_id". Missing or invalid cookies pass through
// anonymously; RequireLogin enforces authentication where needed.
func Session(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ck, err := c.Cookie(auth.SessionCookie); err == nil && ck.Value != "" {
				if uid, err := auth.ParseToken(secret, ck.Value); err == nil {
					c.Set("user_id", uid)
				}
			}
			return next(c)
		}
	}
}

// RequireLogin rejects anonymous requests with 401.
func RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get("user_id").(uint); !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authentication required."})
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated user id, 0 when anonymous.
func UserID(c echo.Context) uint {
	if uid, ok := c.Get("user_id").(uint); ok {
		return uid
	}
	return 0
}
