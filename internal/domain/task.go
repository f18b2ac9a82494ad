package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority represents the urgency of a task.
type Priority string

// Possible task priority values, ordered from least to most urgent.
const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Rank returns the ordering weight of the priority. Higher means more urgent.
// Unknown priorities rank below LOW.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	default:
		return 0
	}
}

// IsValid reports whether the priority is one of the enumerated values.
func (p Priority) IsValid() bool {
	return p.Rank() > 0
}

// Status represents the workflow state of a task.
type Status string

// Possible task status values.
const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
	StatusCancelled  Status = "CANCELLED"
)

// Rank returns the ordering weight of the status for sorting purposes,
// following the workflow order TODO < IN_PROGRESS < DONE < CANCELLED.
func (s Status) Rank() int {
	switch s {
	case StatusTodo:
		return 1
	case StatusInProgress:
		return 2
	case StatusDone:
		return 3
	case StatusCancelled:
		return 4
	default:
		return 0
	}
}

// IsValid reports whether the status is one of the enumerated values.
func (s Status) IsValid() bool {
	return s.Rank() > 0
}

// Field length bounds for Task validation.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Task represents a unit of work tracked by the application.
//
// Completion is not stored: it is derived from Status via Completed(), so the
// two can never disagree. Status transitions are deliberately unrestricted;
// the domain only rejects values outside the enumerated set.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	AssigneeID  string     `json:"assignee_id,omitempty"` // opaque reference, not checked against the user set
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// NewTask creates a new Task with the given fields. New tasks always start
// in TODO status; an empty priority defaults to MEDIUM. The title is trimmed
// and tags are deduplicated before validation.
// Returns a *ValidationError if any field fails validation.
func NewTask(
	title, description string,
	priority Priority,
	assigneeID string,
	dueDate *time.Time,
	tags []string,
) (*Task, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: description,
		Priority:    priority,
		Status:      StatusTodo,
		AssigneeID:  assigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
		DueDate:     dueDate,
		Tags:        NormalizeTags(tags),
	}

	if result := ValidateTask(task); !result.Valid {
		return nil, result.Err()
	}

	return task, nil
}

// Completed reports whether the task is complete. It is a pure function of
// Status so the two can never be driven out of sync.
func (t *Task) Completed() bool {
	return t.Status == StatusDone
}

// Touch bumps the last-update timestamp. Every mutation goes through this.
func (t *Task) Touch() {
	t.UpdatedAt = time.Now().UTC()
}

// SetStatus updates the task's status and bumps the update timestamp.
// Returns ErrInvalidStatus if the value is outside the enumerated set.
// Transition legality is not checked: any status may follow any other.
func (t *Task) SetStatus(status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	t.Status = status
	t.Touch()
	return nil
}

// Clone returns a deep copy of the task. Stores hand out clones so callers
// can never mutate the owning collection through a shared pointer.
func (t *Task) Clone() *Task {
	clone := *t
	if t.DueDate != nil {
		due := *t.DueDate
		clone.DueDate = &due
	}
	if t.Tags != nil {
		clone.Tags = append([]string(nil), t.Tags...)
	}
	return &clone
}

// NormalizeTags removes duplicate tags, preserving first occurrence.
// Empty tags are dropped.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}

	if len(normalized) == 0 {
		return nil
	}
	return normalized
}
