package todos

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	domain "github.com/example/todo-app/domain/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the todos module configuration, built once at startup.
type Config struct {
	DBPath string
	Debug  bool
}

// ToDoModule provides owner-scoped to-do services.
type ToDoModule struct {
	cfg     Config
	db      *gorm.DB
	service *ToDoService
}

// Compile-time interface checks.
var _ mono.Module = (*ToDoModule)(nil)
var _ mono.ServiceProviderModule = (*ToDoModule)(nil)
var _ mono.HealthCheckableModule = (*ToDoModule)(nil)

// NewModule creates a new ToDoModule.
func NewModule(cfg Config) *ToDoModule {
	if cfg.DBPath == "" {
		cfg.DBPath = "todos.db"
	}
	return &ToDoModule{
		cfg: cfg,
	}
}

// Name returns the module name.
func (m *ToDoModule) Name() string {
	return "todos"
}

// Start initializes the database connection and runs migrations.
func (m *ToDoModule) Start(_ context.Context) error {
	logLevel := logger.Silent
	if m.cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.ToDo{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewToDoService(NewToDoRepository(db))

	log.Printf("[todos] Module started (database: %s)", m.cfg.DBPath)
	return nil
}

// Stop gracefully closes the database connection.
func (m *ToDoModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("[todos] Module stopped")
	return nil
}

// Health performs a health check on the todos module.
func (m *ToDoModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.cfg.DBPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *ToDoModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "complete", json.Unmarshal, json.Marshal, m.handleComplete,
	); err != nil {
		return fmt.Errorf("failed to register complete service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "incomplete", json.Unmarshal, json.Marshal, m.handleIncomplete,
	); err != nil {
		return fmt.Errorf("failed to register incomplete service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	log.Printf("[todos] Registered services: create, list, complete, incomplete, update, delete")
	return nil
}

// handleCreate handles the todos.create service request.
func (m *ToDoModule) handleCreate(ctx context.Context, req CreateRequest, _ *mono.Msg) (ToDoPayload, error) {
	toDo, err := m.service.Create(ctx, req.UserID, req.Content)
	if err != nil {
		return ToDoPayload{}, err
	}
	return toToDoPayload(toDo), nil
}

// handleList handles the todos.list service request.
func (m *ToDoModule) handleList(ctx context.Context, req ListRequest, _ *mono.Msg) (ListResponse, error) {
	incomplete, complete, err := m.service.ListForUser(ctx, req.UserID)
	if err != nil {
		return ListResponse{}, err
	}

	resp := ListResponse{
		Incomplete: make([]ToDoPayload, 0, len(incomplete)),
		Complete:   make([]ToDoPayload, 0, len(complete)),
	}
	for _, toDo := range incomplete {
		resp.Incomplete = append(resp.Incomplete, toToDoPayload(toDo))
	}
	for _, toDo := range complete {
		resp.Complete = append(resp.Complete, toToDoPayload(toDo))
	}
	return resp, nil
}

// handleComplete handles the todos.complete service request.
func (m *ToDoModule) handleComplete(ctx context.Context, req ToDoRequest, _ *mono.Msg) (ToDoPayload, error) {
	toDo, err := m.service.MarkComplete(ctx, req.ToDoID, req.UserID)
	if err != nil {
		return ToDoPayload{}, err
	}
	return toToDoPayload(toDo), nil
}

// handleIncomplete handles the todos.incomplete service request.
func (m *ToDoModule) handleIncomplete(ctx context.Context, req ToDoRequest, _ *mono.Msg) (ToDoPayload, error) {
	toDo, err := m.service.MarkIncomplete(ctx, req.ToDoID, req.UserID)
	if err != nil {
		return ToDoPayload{}, err
	}
	return toToDoPayload(toDo), nil
}

// handleUpdate handles the todos.update service request.
func (m *ToDoModule) handleUpdate(ctx context.Context, req UpdateRequest, _ *mono.Msg) (ToDoPayload, error) {
	toDo, err := m.service.UpdateContent(ctx, req.ToDoID, req.UserID, req.Content)
	if err != nil {
		return ToDoPayload{}, err
	}
	return toToDoPayload(toDo), nil
}

// handleDelete handles the todos.delete service request.
func (m *ToDoModule) handleDelete(ctx context.Context, req ToDoRequest, _ *mono.Msg) (DeleteResponse, error) {
	if err := m.service.Delete(ctx, req.ToDoID, req.UserID); err != nil {
		return DeleteResponse{Deleted: false, ID: req.ToDoID}, err
	}
	return DeleteResponse{Deleted: true, ID: req.ToDoID}, nil
}
