package todos

import (
	"errors"
	"fmt"
	"time"

	domain "github.com/example/todo-app/domain/todo"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no to-do matches both id and owner. An item
// owned by someone else is indistinguishable from one that does not exist.
var ErrNotFound = errors.New("could not find todo")

// ToDoRepository provides access to to-do storage. Every query that targets
// a single item filters on id AND user_id in one statement; nothing here
// fetches globally and checks ownership afterwards.
type ToDoRepository struct {
	db *gorm.DB
}

// NewToDoRepository creates a new ToDoRepository.
func NewToDoRepository(db *gorm.DB) *ToDoRepository {
	return &ToDoRepository{db: db}
}

// Create saves a new to-do.
func (r *ToDoRepository) Create(toDo *domain.ToDo) error {
	if err := r.db.Create(toDo).Error; err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	return nil
}

// FindOwned retrieves a to-do by id, scoped to its owner.
func (r *ToDoRepository) FindOwned(id, userID string) (*domain.ToDo, error) {
	var toDo domain.ToDo
	if err := r.db.First(&toDo, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return &toDo, nil
}

// FindComplete retrieves a user's completed to-dos, most recently completed
// first.
func (r *ToDoRepository) FindComplete(userID string) ([]*domain.ToDo, error) {
	var toDos []*domain.ToDo
	err := r.db.
		Where("user_id = ? AND complete = ?", userID, true).
		Order("completed_at DESC").
		Find(&toDos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find completed todos: %w", err)
	}
	return toDos, nil
}

// FindIncomplete retrieves a user's open to-dos, newest first.
func (r *ToDoRepository) FindIncomplete(userID string) ([]*domain.ToDo, error) {
	var toDos []*domain.ToDo
	err := r.db.
		Where("user_id = ? AND complete = ?", userID, false).
		Order("created_at DESC").
		Find(&toDos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find incomplete todos: %w", err)
	}
	return toDos, nil
}

// SetComplete marks an open to-do complete in a single conditional update.
// The complete = false guard makes the state transition atomic: a concurrent
// toggle loses the race and sees zero rows affected.
func (r *ToDoRepository) SetComplete(id, userID string, completedAt time.Time) (int64, error) {
	result := r.db.Model(&domain.ToDo{}).
		Where("id = ? AND user_id = ? AND complete = ?", id, userID, false).
		Updates(map[string]any{
			"complete":     true,
			"completed_at": completedAt,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to complete todo: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// SetIncomplete is the mirror transition: it reopens a completed to-do and
// clears its completion timestamp.
func (r *ToDoRepository) SetIncomplete(id, userID string) (int64, error) {
	result := r.db.Model(&domain.ToDo{}).
		Where("id = ? AND user_id = ? AND complete = ?", id, userID, true).
		Updates(map[string]any{
			"complete":     false,
			"completed_at": nil,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reopen todo: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// UpdateContent rewrites the content of an owned to-do without touching its
// completion state.
func (r *ToDoRepository) UpdateContent(id, userID, content string) error {
	result := r.db.Model(&domain.ToDo{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("content", content)
	if result.Error != nil {
		return fmt.Errorf("failed to update todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an owned to-do.
func (r *ToDoRepository) Delete(id, userID string) error {
	result := r.db.Delete(&domain.ToDo{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
