package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/todo-app/config"
	"github.com/example/todo-app/modules/api"
	"github.com/example/todo-app/modules/auth"
	"github.com/example/todo-app/modules/todos"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework.
	// Order: independent modules first, then dependent modules.
	app.Register(auth.NewModule(auth.Config{
		DBPath: cfg.AuthDBPath,
		JWT: auth.JWTConfig{
			SecretKey: cfg.JWTSecret,
			Issuer:    cfg.JWTIssuer,
		},
		Debug: cfg.DBDebug,
	}))
	app.Register(todos.NewModule(todos.Config{
		DBPath: cfg.TodoDBPath,
		Debug:  cfg.DBDebug,
	}))
	app.Register(api.NewModule(api.Config{
		Port:         cfg.Port,
		CookieSecure: cfg.IsProduction(),
	}))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg.Port)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port string) {
	log.Println("")
	log.Printf("ToDo API listening on http://localhost:%s", port)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/auth/register          - Create an account")
	log.Println("  POST   /api/auth/login             - Login, sets the session cookie")
	log.Println("  GET    /health                     - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (session cookie or Bearer token):")
	log.Println("  GET    /api/auth/current           - Current user")
	log.Println("  PUT    /api/auth/logout            - Clear the session cookie")
	log.Println("  POST   /api/todos/new              - Create a todo")
	log.Println("  GET    /api/todos/current          - List todos (incomplete/complete)")
	log.Println("  PUT    /api/todos/:toDoId/complete - Mark complete")
	log.Println("  PUT    /api/todos/:toDoId/incomplete - Mark incomplete")
	log.Println("  PUT    /api/todos/:toDoId          - Update content")
	log.Println("  DELETE /api/todos/:toDoId          - Delete")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
