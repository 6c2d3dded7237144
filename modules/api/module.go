package api

import (
	"context"
	"fmt"
	"log"

	"github.com/example/todo-app/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Config holds the api module configuration, built once at startup.
type Config struct {
	Port         string
	CookieSecure bool
}

// APIModule is the HTTP boundary of the application.
type APIModule struct {
	cfg            Config
	app            *fiber.App
	authContainer  mono.ServiceContainer
	todosContainer mono.ServiceContainer
	authAdapter    auth.AuthPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(cfg Config) *APIModule {
	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	return &APIModule{
		cfg: cfg,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "todos"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	case "todos":
		m.todosContainer = container
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authContainer == nil || m.todosContainer == nil {
		return fmt.Errorf("auth and todos dependencies not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(":" + m.cfg.Port); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%s", m.cfg.Port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.cfg.Port,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authContainer, m.todosContainer, m.cfg.CookieSecure)
	gate := AuthMiddleware(m.authAdapter)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	apiRoutes := m.app.Group("/api")

	authRoutes := apiRoutes.Group("/auth")
	authRoutes.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("Auth route working")
	})
	authRoutes.Post("/register", handlers.Register)
	authRoutes.Post("/login", handlers.Login)
	authRoutes.Get("/current", gate, handlers.Current)
	authRoutes.Put("/logout", gate, handlers.Logout)

	toDoRoutes := apiRoutes.Group("/todos")
	toDoRoutes.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ToDo's route working")
	})
	toDoRoutes.Post("/new", gate, handlers.CreateToDo)
	toDoRoutes.Get("/current", gate, handlers.CurrentToDos)
	toDoRoutes.Put("/:toDoId/complete", gate, handlers.CompleteToDo)
	toDoRoutes.Put("/:toDoId/incomplete", gate, handlers.IncompleteToDo)
	toDoRoutes.Put("/:toDoId", gate, handlers.UpdateToDo)
	toDoRoutes.Delete("/:toDoId", gate, handlers.DeleteToDo)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error: message,
	})
}
