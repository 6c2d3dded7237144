package todos

import (
	"errors"
	"testing"
	"time"

	domain "github.com/example/todo-app/domain/todo"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.ToDo{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestToDo(userID, content string) *domain.ToDo {
	return &domain.ToDo{
		ID:      uuid.New().String(),
		UserID:  userID,
		Content: content,
	}
}

func TestToDoRepository_FindOwned(t *testing.T) {
	db := setupTestDB(t)
	repo := NewToDoRepository(db)

	toDo := newTestToDo("user-a", "Buy milk")
	if err := repo.Create(toDo); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("owner finds it", func(t *testing.T) {
		found, err := repo.FindOwned(toDo.ID, "user-a")
		if err != nil {
			t.Fatalf("FindOwned() error = %v", err)
		}
		if found.Content != "Buy milk" {
			t.Errorf("content = %q, want %q", found.Content, "Buy milk")
		}
	})

	t.Run("another user gets not found", func(t *testing.T) {
		_, err := repo.FindOwned(toDo.ID, "user-b")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindOwned("no-such-id", "user-a")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestToDoRepository_SetComplete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewToDoRepository(db)

	toDo := newTestToDo("user-a", "Buy milk")
	if err := repo.Create(toDo); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	completedAt := time.Now()

	affected, err := repo.SetComplete(toDo.ID, "user-a", completedAt)
	if err != nil {
		t.Fatalf("SetComplete() error = %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}

	found, err := repo.FindOwned(toDo.ID, "user-a")
	if err != nil {
		t.Fatalf("FindOwned() error = %v", err)
	}
	if !found.Complete {
		t.Error("todo not marked complete")
	}
	if found.CompletedAt == nil {
		t.Fatal("CompletedAt not set")
	}

	// The conditional update misses an already-complete row.
	affected, err = repo.SetComplete(toDo.ID, "user-a", time.Now())
	if err != nil {
		t.Fatalf("SetComplete() error = %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0 for already-complete todo", affected)
	}

	// And it never touches another user's row.
	toDo2 := newTestToDo("user-b", "Walk dog")
	if err := repo.Create(toDo2); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	affected, err = repo.SetComplete(toDo2.ID, "user-a", time.Now())
	if err != nil {
		t.Fatalf("SetComplete() error = %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0 for another user's todo", affected)
	}
}

func TestToDoRepository_SetIncomplete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewToDoRepository(db)

	toDo := newTestToDo("user-a", "Buy milk")
	if err := repo.Create(toDo); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := repo.SetComplete(toDo.ID, "user-a", time.Now()); err != nil {
		t.Fatalf("SetComplete() error = %v", err)
	}

	affected, err := repo.SetIncomplete(toDo.ID, "user-a")
	if err != nil {
		t.Fatalf("SetIncomplete() error = %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}

	found, err := repo.FindOwned(toDo.ID, "user-a")
	if err != nil {
		t.Fatalf("FindOwned() error = %v", err)
	}
	if found.Complete {
		t.Error("todo still marked complete")
	}
	if found.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil after reopening", found.CompletedAt)
	}

	affected, err = repo.SetIncomplete(toDo.ID, "user-a")
	if err != nil {
		t.Fatalf("SetIncomplete() error = %v", err)
	}
	if affected != 0 {
		t.Errorf("affected = %d, want 0 for already-open todo", affected)
	}
}

func TestToDoRepository_ListOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewToDoRepository(db)

	base := time.Now().Add(-time.Hour)

	// Three open todos with increasing creation times.
	for i, content := range []string{"first", "second", "third"} {
		toDo := newTestToDo("user-a", content)
		toDo.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Create(toDo); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	incomplete, err := repo.FindIncomplete("user-a")
	if err != nil {
		t.Fatalf("FindIncomplete() error = %v", err)
	}
	if len(incomplete) != 3 {
		t.Fatalf("len(incomplete) = %d, want 3", len(incomplete))
	}
	if incomplete[0].Content != "third" || incomplete[2].Content != "first" {
		t.Errorf("incomplete not sorted newest first: %q, %q, %q",
			incomplete[0].Content, incomplete[1].Content, incomplete[2].Content)
	}

	// Complete "first" then "third": most recently completed comes first.
	for _, content := range []string{"first", "third"} {
		for _, toDo := range incomplete {
			if toDo.Content == content {
				if _, err := repo.SetComplete(toDo.ID, "user-a", time.Now()); err != nil {
					t.Fatalf("SetComplete() error = %v", err)
				}
			}
		}
		time.Sleep(5 * time.Millisecond)
	}

	complete, err := repo.FindComplete("user-a")
	if err != nil {
		t.Fatalf("FindComplete() error = %v", err)
	}
	if len(complete) != 2 {
		t.Fatalf("len(complete) = %d, want 2", len(complete))
	}
	if complete[0].Content != "third" || complete[1].Content != "first" {
		t.Errorf("complete not sorted by completion time: %q, %q",
			complete[0].Content, complete[1].Content)
	}

	remaining, err := repo.FindIncomplete("user-a")
	if err != nil {
		t.Fatalf("FindIncomplete() error = %v", err)
	}
	if len(remaining) != 1 || remaining[0].Content != "second" {
		t.Errorf("remaining incomplete = %v, want only %q", remaining, "second")
	}
}

func TestToDoRepository_UpdateContent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewToDoRepository(db)

	toDo := newTestToDo("user-a", "Buy milk")
	if err := repo.Create(toDo); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.UpdateContent(toDo.ID, "user-a", "Buy oat milk"); err != nil {
		t.Fatalf("UpdateContent() error = %v", err)
	}

	found, err := repo.FindOwned(toDo.ID, "user-a")
	if err != nil {
		t.Fatalf("FindOwned() error = %v", err)
	}
	if found.Content != "Buy oat milk" {
		t.Errorf("content = %q, want %q", found.Content, "Buy oat milk")
	}
	if found.Complete {
		t.Error("UpdateContent must not touch the completion flag")
	}

	err = repo.UpdateContent(toDo.ID, "user-b", "hijacked")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for another user, got %v", err)
	}
}

func TestToDoRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewToDoRepository(db)

	toDo := newTestToDo("user-a", "Buy milk")
	if err := repo.Create(toDo); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("another user cannot delete", func(t *testing.T) {
		err := repo.Delete(toDo.ID, "user-b")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("owner deletes", func(t *testing.T) {
		if err := repo.Delete(toDo.ID, "user-a"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		_, err := repo.FindOwned(toDo.ID, "user-a")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("delete twice", func(t *testing.T) {
		err := repo.Delete(toDo.ID, "user-a")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
