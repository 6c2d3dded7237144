package api

import (
	"github.com/example/todo-app/modules/todos"
	"github.com/gofiber/fiber/v2"
)

// To-do handlers. All of these sit behind the auth middleware, so the acting
// user is always present in the request locals and every service call is
// scoped to that user's id.

// CreateToDo handles creating a new to-do for the authenticated user.
func (h *Handlers) CreateToDo(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req ToDoContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if errs := validateToDoInput(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	svcReq := todos.CreateRequest{
		UserID:  user.ID,
		Content: req.Content,
	}
	var resp todos.ToDoPayload

	if err := h.callTodos(c.UserContext(), "create", &svcReq, &resp); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// CurrentToDos lists the authenticated user's to-dos, split by completion
// state.
func (h *Handlers) CurrentToDos(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	svcReq := todos.ListRequest{UserID: user.ID}
	var resp todos.ListResponse

	if err := h.callTodos(c.UserContext(), "list", &svcReq, &resp); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// CompleteToDo marks a to-do complete.
func (h *Handlers) CompleteToDo(c *fiber.Ctx) error {
	return h.toggleToDo(c, "complete")
}

// IncompleteToDo marks a to-do incomplete again.
func (h *Handlers) IncompleteToDo(c *fiber.Ctx) error {
	return h.toggleToDo(c, "incomplete")
}

// toggleToDo dispatches a completion-state transition for the to-do in the
// path.
func (h *Handlers) toggleToDo(c *fiber.Ctx, service string) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	svcReq := todos.ToDoRequest{
		UserID: user.ID,
		ToDoID: c.Params("toDoId"),
	}
	var resp todos.ToDoPayload

	if err := h.callTodos(c.UserContext(), service, &svcReq, &resp); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateToDo rewrites a to-do's content.
func (h *Handlers) UpdateToDo(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	var req ToDoContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if errs := validateToDoInput(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	svcReq := todos.UpdateRequest{
		UserID:  user.ID,
		ToDoID:  c.Params("toDoId"),
		Content: req.Content,
	}
	var resp todos.ToDoPayload

	if err := h.callTodos(c.UserContext(), "update", &svcReq, &resp); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteToDo removes a to-do owned by the authenticated user.
func (h *Handlers) DeleteToDo(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return unauthorized(c)
	}

	svcReq := todos.ToDoRequest{
		UserID: user.ID,
		ToDoID: c.Params("toDoId"),
	}
	var resp todos.DeleteResponse

	if err := h.callTodos(c.UserContext(), "delete", &svcReq, &resp); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "ToDo has been deleted",
	})
}
