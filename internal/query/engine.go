// Package query implements the task query engine: pure filter, sort, and
// pagination logic over an in-memory task collection. The engine never
// mutates its input and holds no state of its own; ownership of the
// collection stays with the caller.
package query

import (
	"errors"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// Pagination and sort errors. Malformed page options are rejected rather
// than producing accidental slices.
var (
	// ErrInvalidPage is returned when the requested page number is not a
	// positive integer.
	ErrInvalidPage = errors.New("page must be a positive integer")

	// ErrInvalidLimit is returned when the requested page size is not a
	// positive integer.
	ErrInvalidLimit = errors.New("limit must be a positive integer")

	// ErrInvalidSortField is returned when the sort key is not one of the
	// supported task fields.
	ErrInvalidSortField = errors.New("invalid sort field")
)

// TaskFilter describes the optional predicates applied to the task set.
// Fields combine with AND semantics; within a multi-value field the values
// combine with OR semantics. Nil pointers and empty slices mean "not
// filtered".
type TaskFilter struct {
	Statuses    []domain.Status
	Priorities  []domain.Priority
	AssigneeID  *string
	Completed   *bool
	CreatedFrom *time.Time // inclusive
	CreatedTo   *time.Time // inclusive
	Tags        []string   // task matches if it carries at least one of these
}

// SortField identifies a sortable task attribute.
type SortField string

// Supported sort fields.
const (
	SortByTitle     SortField = "title"
	SortByPriority  SortField = "priority"
	SortByStatus    SortField = "status"
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
	SortByDueDate   SortField = "due_date"
)

// IsValid reports whether the field is one of the supported sort keys.
func (f SortField) IsValid() bool {
	switch f {
	case SortByTitle, SortByPriority, SortByStatus,
		SortByCreatedAt, SortByUpdatedAt, SortByDueDate:
		return true
	default:
		return false
	}
}

// SortDirection orders a sorted result ascending or descending.
type SortDirection string

// Supported sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortOptions selects the sort key and direction. An empty direction
// defaults to ascending.
type SortOptions struct {
	Field     SortField
	Direction SortDirection
}

// PageOptions selects a page of the filtered result set. Both values must
// be positive.
type PageOptions struct {
	Page  int
	Limit int
}

// Result is the outcome of a query: the requested page in order, the total
// count of tasks matching the filter, and pagination bookkeeping. Page and
// TotalPages are zero when no page options were supplied.
type Result struct {
	Tasks      []*domain.Task
	Total      int
	Page       int
	TotalPages int
}

// Run evaluates filter, sort, and pagination over the given tasks.
//
// Filtering preserves the original relative order. Sorting is stable and
// applied before pagination; tasks missing the sort key sort last in both
// directions. An out-of-range page yields an empty page, not an error, but
// non-positive page options and unknown sort fields are rejected.
//
// The input slice is never reordered or mutated.
func Run(
	tasks []*domain.Task,
	filter *TaskFilter,
	sortOpts *SortOptions,
	page *PageOptions,
) (*Result, error) {
	if sortOpts != nil && !sortOpts.Field.IsValid() {
		return nil, ErrInvalidSortField
	}
	if page != nil {
		if page.Page < 1 {
			return nil, ErrInvalidPage
		}
		if page.Limit < 1 {
			return nil, ErrInvalidLimit
		}
	}

	filtered := make([]*domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if matches(task, filter) {
			filtered = append(filtered, task)
		}
	}

	if sortOpts != nil {
		sortTasks(filtered, sortOpts.Field, sortOpts.Direction == SortDesc)
	}

	total := len(filtered)
	if page == nil {
		return &Result{Tasks: filtered, Total: total}, nil
	}

	totalPages := (total + page.Limit - 1) / page.Limit
	start := (page.Page - 1) * page.Limit
	if start >= total {
		return &Result{
			Tasks:      []*domain.Task{},
			Total:      total,
			Page:       page.Page,
			TotalPages: totalPages,
		}, nil
	}

	end := start + page.Limit
	if end > total {
		end = total
	}

	return &Result{
		Tasks:      filtered[start:end],
		Total:      total,
		Page:       page.Page,
		TotalPages: totalPages,
	}, nil
}

// matches reports whether a task satisfies every predicate in the filter.
// A nil filter matches everything.
func matches(t *domain.Task, f *TaskFilter) bool {
	if f == nil {
		return true
	}

	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, t.Status) {
		return false
	}

	if len(f.Priorities) > 0 && !containsPriority(f.Priorities, t.Priority) {
		return false
	}

	if f.AssigneeID != nil && t.AssigneeID != *f.AssigneeID {
		return false
	}

	if f.Completed != nil && t.Completed() != *f.Completed {
		return false
	}

	if f.CreatedFrom != nil && t.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}

	if f.CreatedTo != nil && t.CreatedAt.After(*f.CreatedTo) {
		return false
	}

	if len(f.Tags) > 0 && !hasAnyTag(t.Tags, f.Tags) {
		return false
	}

	return true
}

func containsStatus(set []domain.Status, s domain.Status) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}

func containsPriority(set []domain.Priority, p domain.Priority) bool {
	for _, candidate := range set {
		if candidate == p {
			return true
		}
	}
	return false
}

func hasAnyTag(tags, wanted []string) bool {
	for _, tag := range tags {
		for _, want := range wanted {
			if tag == want {
				return true
			}
		}
	}
	return false
}
