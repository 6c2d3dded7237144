package todos

import (
	"time"

	domain "github.com/example/todo-app/domain/todo"
)

// ToDoPayload is the outward view of a to-do. Field names mirror the JSON
// the browser client consumes.
type ToDoPayload struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user"`
	Content     string     `json:"content"`
	Complete    bool       `json:"complete"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateRequest is the request for creating a to-do.
type CreateRequest struct {
	UserID  string `json:"user_id"`
	Content string `json:"content"`
}

// ListRequest is the request for listing a user's to-dos.
type ListRequest struct {
	UserID string `json:"user_id"`
}

// ListResponse splits a user's to-dos by completion state.
type ListResponse struct {
	Incomplete []ToDoPayload `json:"incomplete"`
	Complete   []ToDoPayload `json:"complete"`
}

// ToDoRequest targets a single to-do owned by a user.
type ToDoRequest struct {
	UserID string `json:"user_id"`
	ToDoID string `json:"todo_id"`
}

// UpdateRequest is the request for rewriting a to-do's content.
type UpdateRequest struct {
	UserID  string `json:"user_id"`
	ToDoID  string `json:"todo_id"`
	Content string `json:"content"`
}

// DeleteResponse is the response after deleting a to-do.
type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// toToDoPayload converts a ToDo entity to its outward view.
func toToDoPayload(toDo *domain.ToDo) ToDoPayload {
	return ToDoPayload{
		ID:          toDo.ID,
		UserID:      toDo.UserID,
		Content:     toDo.Content,
		Complete:    toDo.Complete,
		CompletedAt: toDo.CompletedAt,
		CreatedAt:   toDo.CreatedAt,
		UpdatedAt:   toDo.UpdatedAt,
	}
}
