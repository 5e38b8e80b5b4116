package middleware

// identity.go defines helper functions shared across middleware files.
// currentUserID pulls the user id set by JWTAuth out of the Echo context
// for use in rate-limit keys; unauthenticated requests key as "anon".

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID returns a string form of the authenticated user's id, or
// "anon" when the request carries no identity.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	case uint64:
		return fmt.Sprintf("%d", v)
	}
	return "anon"
}
