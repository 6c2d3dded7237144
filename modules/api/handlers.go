package api

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/example/todo-app/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// sessionDuration matches the token expiry so the cookie and the credential
// inside it die together.
const sessionDuration = 7 * 24 * time.Hour

// ServiceCall dispatches one request-reply call to a module service. In
// production it goes through the mono service container; tests dispatch
// in-process.
type ServiceCall func(ctx context.Context, service string, req, resp any) error

// containerCall adapts a service container to a ServiceCall.
func containerCall(container mono.ServiceContainer) ServiceCall {
	return func(ctx context.Context, service string, req, resp any) error {
		// resp has static type any, so pass &resp to make the helper's *T2
		// parameter inferable; json.Unmarshal unwraps the interface to fill
		// the pointer the caller supplied.
		return helper.CallRequestReplyService(
			ctx, container, service, json.Marshal, json.Unmarshal, req, &resp,
		)
	}
}

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	callAuth     ServiceCall
	callTodos    ServiceCall
	cookieSecure bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, todosContainer mono.ServiceContainer, cookieSecure bool) *Handlers {
	return &Handlers{
		callAuth:     containerCall(authContainer),
		callTodos:    containerCall(todosContainer),
		cookieSecure: cookieSecure,
	}
}

// Register handles user registration. On success the new user is logged in
// immediately: a session cookie is set and the user view (without password
// hash) is returned.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if errs := validateRegisterInput(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	authReq := auth.RegisterRequest{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	}
	var resp auth.RegisterResponse

	if err := h.callAuth(c.UserContext(), "register", &authReq, &resp); err != nil {
		return h.handleServiceError(c, err)
	}

	h.setSessionCookie(c, resp.Token)
	return c.Status(fiber.StatusOK).JSON(resp.User)
}

// Login handles user login. Every failure path returns the same generic
// credential error so callers cannot tell which emails are registered.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return credentialError(c)
	}

	authReq := auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := h.callAuth(c.UserContext(), "login", &authReq, &resp); err != nil {
		return h.handleServiceError(c, err)
	}

	h.setSessionCookie(c, resp.Token)
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Current returns the authenticated user, already resolved by the gate.
func (h *Handlers) Current(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// Logout clears the session cookie. The token itself stays valid until its
// expiry; there is no server-side revocation.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)
	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "You have been logged out",
	})
}

// setSessionCookie attaches the session token as an HTTP-only cookie.
func (h *Handlers) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionDuration),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
	})
}

// clearSessionCookie expires the session cookie on the client.
func (h *Handlers) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
	})
}

func credentialError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "There was a problem with your login credentials",
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: "An internal error occurred",
	})
}

// handleServiceError translates service errors into HTTP responses. Errors
// cross the service container as strings, so known business failures are
// recognized by message; everything else is reduced to a generic 500 with
// the detail kept in the server log.
func (h *Handlers) handleServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "there is already a user with this email"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "There is already a user with this email",
		})
	case strings.Contains(errStr, "problem with your login credentials"):
		return credentialError(c)
	case strings.Contains(errStr, "could not find todo"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Could not find ToDo",
		})
	case strings.Contains(errStr, "todo is already complete"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "ToDo is already complete",
		})
	case strings.Contains(errStr, "todo is already incomplete"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "ToDo has already been marked as incomplete",
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return internalError(c)
	}
}
