package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/memory"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// application holds the wired dependencies. The in-memory stores own the
// entity collections for the lifetime of the process; nothing else holds a
// reference to them.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore store.TaskStore
	userStore store.UserStore

	taskService service.TaskService
	userService service.UserService
}

// newApplication wires stores and services and seeds the initial admin.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	taskStore := memory.NewTaskStore()
	userStore := memory.NewUserStore()

	app := &application{
		config:      cfg,
		logger:      logger,
		taskStore:   taskStore,
		userStore:   userStore,
		taskService: service.NewTaskService(taskStore, logger),
		userService: service.NewUserService(userStore, logger),
	}

	if err := app.seedAdmin(context.Background()); err != nil {
		return nil, err
	}

	return app, nil
}

// seedAdmin creates the bootstrap ADMIN user. The user collection must hold
// at least one admin at all times, so the process starts with one.
func (app *application) seedAdmin(ctx context.Context) error {
	admin, err := app.userService.Create(ctx, service.CreateUserInput{
		Name:  "Administrator",
		Email: "admin@taskboard.local",
		Role:  domain.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	app.logger.Info("seeded bootstrap admin", "user_id", admin.ID, "email", admin.Email)
	return nil
}
