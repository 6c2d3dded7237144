package auth

import (
	"errors"
	"testing"
	"time"

	domain "github.com/example/todo-app/domain/user"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestUser(email string) *domain.User {
	now := time.Now()
	return &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: "$2a$12$fakefakefakefakefakefake",
		Name:         "Test User",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := newTestUser("ann@example.com")
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(user.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Email != user.Email {
			t.Errorf("email = %q, want %q", found.Email, user.Email)
		}
	})

	t.Run("find by email", func(t *testing.T) {
		found, err := repo.FindByEmail("ann@example.com")
		if err != nil {
			t.Fatalf("FindByEmail() error = %v", err)
		}
		if found.ID != user.ID {
			t.Errorf("id = %q, want %q", found.ID, user.ID)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID("no-such-id")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := repo.FindByEmail("nobody@example.com")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	if err := repo.Create(newTestUser("dup@example.com")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err := repo.Create(newTestUser("dup@example.com"))
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestUserRepository_EmailExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	if err := repo.Create(newTestUser("ann@example.com")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	exists, err := repo.EmailExists("ann@example.com")
	if err != nil {
		t.Fatalf("EmailExists() error = %v", err)
	}
	if !exists {
		t.Error("EmailExists() = false, want true")
	}

	exists, err = repo.EmailExists("bob@example.com")
	if err != nil {
		t.Fatalf("EmailExists() error = %v", err)
	}
	if exists {
		t.Error("EmailExists() = true, want false")
	}
}
