package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/query"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// CreateTaskInput carries the caller-supplied fields for a new task.
// Status is not an input: new tasks always start in TODO.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    domain.Priority
	AssigneeID  string
	DueDate     *time.Time
	Tags        []string
}

// UpdateTaskInput carries a partial patch for an existing task. Nil fields
// are left unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *domain.Priority
	Status      *domain.Status
	AssigneeID  *string
	DueDate     *time.Time
	Tags        []string
}

// TaskStats summarizes the task collection.
type TaskStats struct {
	Total          int
	Completed      int
	CompletionRate int
	ByStatus       map[domain.Status]int
	ByPriority     map[domain.Priority]int
}

// TaskService provides task-related operations.
type TaskService interface {
	// Create validates and stores a new task.
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)

	// Get retrieves a task by its ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update applies a partial patch to a task, re-validates the merged
	// record, and bumps its update timestamp.
	Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*domain.Task, error)

	// Delete removes a task from the collection.
	Delete(ctx context.Context, id uuid.UUID) error

	// List runs the query engine over the full collection.
	List(
		ctx context.Context,
		filter *query.TaskFilter,
		sortOpts *query.SortOptions,
		page *query.PageOptions,
	) (*query.Result, error)

	// Stats summarizes the collection by status and priority.
	Stats(ctx context.Context) (*TaskStats, error)
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) TaskService {
	return &TaskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With("component", "task_service"),
	}
}

// Create validates and stores a new task.
func (s *TaskServiceImpl) Create(
	ctx context.Context,
	input CreateTaskInput,
) (*domain.Task, error) {
	task, err := domain.NewTask(
		input.Title,
		input.Description,
		input.Priority,
		input.AssigneeID,
		input.DueDate,
		input.Tags,
	)
	if err != nil {
		s.logger.Debug("task validation failed", "error", err)
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to store task", "error", err, "task_id", task.ID)
		return nil, fmt.Errorf("failed to store task: %w", err)
	}

	s.logger.Debug("task created", "task_id", task.ID, "title", task.Title)
	return task, nil
}

// Get retrieves a task by its ID.
func (s *TaskServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("task not found", "task_id", id)
		} else {
			s.logger.Error("failed to retrieve task", "error", err, "task_id", id)
		}
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}

	return task, nil
}

// Update applies a partial patch to a task. The merged record is validated
// as a whole before anything is written back, so a patch can never leave an
// invalid task in the collection.
func (s *TaskServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.AssigneeID != nil {
		task.AssigneeID = *input.AssigneeID
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Tags != nil {
		task.Tags = domain.NormalizeTags(input.Tags)
	}

	if result := domain.ValidateTask(task); !result.Valid {
		s.logger.Debug("task update validation failed", "task_id", id, "errors", result.Errors)
		return nil, result.Err()
	}

	task.Touch()

	if err := s.taskStore.Update(ctx, task); err != nil {
		s.logger.Error("failed to update task", "error", err, "task_id", id)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Debug("task updated", "task_id", id)
	return task, nil
}

// Delete removes a task from the collection.
func (s *TaskServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.taskStore.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("task not found for deletion", "task_id", id)
		} else {
			s.logger.Error("failed to delete task", "error", err, "task_id", id)
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Debug("task deleted", "task_id", id)
	return nil
}

// List runs the query engine over the full collection.
func (s *TaskServiceImpl) List(
	ctx context.Context,
	filter *query.TaskFilter,
	sortOpts *query.SortOptions,
	page *query.PageOptions,
) (*query.Result, error) {
	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	result, err := query.Run(tasks, filter, sortOpts, page)
	if err != nil {
		s.logger.Debug("task query rejected", "error", err)
		return nil, err
	}

	return result, nil
}

// Stats summarizes the collection by status and priority.
func (s *TaskServiceImpl) Stats(ctx context.Context) (*TaskStats, error) {
	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list tasks for stats", "error", err)
		return nil, fmt.Errorf("failed to compute task stats: %w", err)
	}

	stats := &TaskStats{
		Total:      len(tasks),
		ByStatus:   make(map[domain.Status]int),
		ByPriority: make(map[domain.Priority]int),
	}

	for _, task := range tasks {
		stats.ByStatus[task.Status]++
		stats.ByPriority[task.Priority]++
		if task.Completed() {
			stats.Completed++
		}
	}

	stats.CompletionRate = CompletionRate(tasks)
	return stats, nil
}

// CompletionRate returns the percentage of completed tasks, rounded to the
// nearest integer. An empty collection has a rate of 0.
func CompletionRate(tasks []*domain.Task) int {
	if len(tasks) == 0 {
		return 0
	}

	completed := 0
	for _, task := range tasks {
		if task.Completed() {
			completed++
		}
	}

	return int(math.Round(float64(completed) / float64(len(tasks)) * 100))
}
