package api

import (
	"errors"
	"log"
	"strings"

	domain "github.com/example/todo-app/domain/user"
	"github.com/example/todo-app/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "access-token"
	// UserContextKey is the key used to store the resolved user in the
	// Fiber context.
	UserContextKey = "user"
)

// AuthMiddleware is the gate in front of every protected route. It extracts
// the session token from the access-token cookie (or an Authorization Bearer
// header for non-browser clients), verifies it and resolves the acting user.
// Handlers behind it always find a concrete user in the request locals.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c)
		if token == "" {
			return unauthorized(c)
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			return unauthorized(c)
		}

		user, err := authPort.GetUser(c.UserContext(), claims.UserID)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				// Token verified but the account is gone; treat as no
				// session.
				return unauthorized(c)
			}
			log.Printf("[api] Failed to resolve session user: %v", err)
			return internalError(c)
		}

		c.Locals(UserContextKey, user)
		return c.Next()
	}
}

// sessionToken pulls the session credential off the request, cookie first.
func sessionToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookieName); cookie != "" {
		return cookie
	}

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// currentUser returns the user the gate stored for this request, or nil when
// the handler somehow runs without the middleware.
func currentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(UserContextKey).(*domain.User)
	return user
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error: "Unauthorized",
	})
}
