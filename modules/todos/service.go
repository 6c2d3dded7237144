package todos

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/todo-app/domain/todo"
	"github.com/google/uuid"
)

var (
	// ErrAlreadyComplete is returned when completing an already complete to-do.
	ErrAlreadyComplete = errors.New("todo is already complete")
	// ErrAlreadyIncomplete is returned when reopening an already open to-do.
	ErrAlreadyIncomplete = errors.New("todo is already incomplete")
)

// ToDoService handles to-do business logic. Every operation is scoped to the
// acting user; a to-do owned by someone else behaves exactly like a missing
// one.
type ToDoService struct {
	repo *ToDoRepository
}

// NewToDoService creates a new ToDoService.
func NewToDoService(repo *ToDoRepository) *ToDoService {
	return &ToDoService{repo: repo}
}

// Create persists a new open to-do for the given user.
func (s *ToDoService) Create(_ context.Context, userID, content string) (*domain.ToDo, error) {
	toDo := &domain.ToDo{
		ID:       uuid.New().String(),
		UserID:   userID,
		Content:  content,
		Complete: false,
	}

	if err := s.repo.Create(toDo); err != nil {
		return nil, err
	}
	return toDo, nil
}

// ListForUser returns the user's open to-dos (newest first) and completed
// to-dos (most recently completed first).
func (s *ToDoService) ListForUser(_ context.Context, userID string) (incomplete, complete []*domain.ToDo, err error) {
	complete, err = s.repo.FindComplete(userID)
	if err != nil {
		return nil, nil, err
	}

	incomplete, err = s.repo.FindIncomplete(userID)
	if err != nil {
		return nil, nil, err
	}

	return incomplete, complete, nil
}

// MarkComplete transitions an open to-do to complete and stamps CompletedAt.
func (s *ToDoService) MarkComplete(_ context.Context, id, userID string) (*domain.ToDo, error) {
	toDo, err := s.repo.FindOwned(id, userID)
	if err != nil {
		return nil, err
	}
	if toDo.Complete {
		return nil, ErrAlreadyComplete
	}

	affected, err := s.repo.SetComplete(id, userID, time.Now())
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// A concurrent request completed it between the read and the update.
		return nil, ErrAlreadyComplete
	}

	return s.repo.FindOwned(id, userID)
}

// MarkIncomplete transitions a completed to-do back to open and clears
// CompletedAt.
func (s *ToDoService) MarkIncomplete(_ context.Context, id, userID string) (*domain.ToDo, error) {
	toDo, err := s.repo.FindOwned(id, userID)
	if err != nil {
		return nil, err
	}
	if !toDo.Complete {
		return nil, ErrAlreadyIncomplete
	}

	affected, err := s.repo.SetIncomplete(id, userID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAlreadyIncomplete
	}

	return s.repo.FindOwned(id, userID)
}

// UpdateContent rewrites a to-do's content, leaving its completion state
// alone.
func (s *ToDoService) UpdateContent(_ context.Context, id, userID, content string) (*domain.ToDo, error) {
	if err := s.repo.UpdateContent(id, userID, content); err != nil {
		return nil, err
	}

	toDo, err := s.repo.FindOwned(id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload todo: %w", err)
	}
	return toDo, nil
}

// Delete removes a to-do owned by the user.
func (s *ToDoService) Delete(_ context.Context, id, userID string) error {
	return s.repo.Delete(id, userID)
}
