package query_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/query"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// newTask builds a task with a deterministic creation time offset so tests
// can reason about date-range filters and sort order.
func newTask(title string, priority domain.Priority, status domain.Status, offset time.Duration) *domain.Task {
	created := baseTime.Add(offset)
	return &domain.Task{
		ID:        uuid.New(),
		Title:     title,
		Priority:  priority,
		Status:    status,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func titles(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func TestRunNoFilterReturnsAll(t *testing.T) {
	tasks := []*domain.Task{
		newTask("a", domain.PriorityHigh, domain.StatusTodo, 0),
		newTask("b", domain.PriorityLow, domain.StatusDone, time.Hour),
	}

	result, err := query.Run(tasks, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, []string{"a", "b"}, titles(result.Tasks))
	assert.Zero(t, result.Page)
	assert.Zero(t, result.TotalPages)
}

// The worked example: three tasks HIGH/MEDIUM/LOW, filter on {HIGH, MEDIUM},
// two results in original relative order.
func TestRunPriorityFilterPreservesOrder(t *testing.T) {
	tasks := []*domain.Task{
		newTask("high", domain.PriorityHigh, domain.StatusTodo, 0),
		newTask("medium", domain.PriorityMedium, domain.StatusTodo, time.Hour),
		newTask("low", domain.PriorityLow, domain.StatusTodo, 2*time.Hour),
	}

	result, err := query.Run(tasks, &query.TaskFilter{
		Priorities: []domain.Priority{domain.PriorityHigh, domain.PriorityMedium},
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, []string{"high", "medium"}, titles(result.Tasks))
}

func TestRunFiltersCombineWithAND(t *testing.T) {
	assignee := "worker-1"
	tasks := []*domain.Task{
		newTask("match", domain.PriorityHigh, domain.StatusTodo, 0),
		newTask("wrong-status", domain.PriorityHigh, domain.StatusDone, 0),
		newTask("wrong-priority", domain.PriorityLow, domain.StatusTodo, 0),
	}
	tasks[0].AssigneeID = assignee
	tasks[1].AssigneeID = assignee
	tasks[2].AssigneeID = assignee

	result, err := query.Run(tasks, &query.TaskFilter{
		Statuses:   []domain.Status{domain.StatusTodo},
		Priorities: []domain.Priority{domain.PriorityHigh},
		AssigneeID: &assignee,
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"match"}, titles(result.Tasks))
}

func TestRunCompletedFilter(t *testing.T) {
	tasks := []*domain.Task{
		newTask("open", domain.PriorityLow, domain.StatusTodo, 0),
		newTask("done", domain.PriorityLow, domain.StatusDone, 0),
		newTask("cancelled", domain.PriorityLow, domain.StatusCancelled, 0),
	}

	completed := true
	result, err := query.Run(tasks, &query.TaskFilter{Completed: &completed}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"done"}, titles(result.Tasks))

	completed = false
	result, err = query.Run(tasks, &query.TaskFilter{Completed: &completed}, nil, nil)
	require.NoError(t, err)
	// CANCELLED is not completed: completion is derived solely from DONE
	assert.Equal(t, []string{"open", "cancelled"}, titles(result.Tasks))
}

func TestRunCreatedRangeInclusive(t *testing.T) {
	tasks := []*domain.Task{
		newTask("early", domain.PriorityLow, domain.StatusTodo, 0),
		newTask("middle", domain.PriorityLow, domain.StatusTodo, time.Hour),
		newTask("late", domain.PriorityLow, domain.StatusTodo, 2*time.Hour),
	}

	from := baseTime
	to := baseTime.Add(time.Hour)
	result, err := query.Run(tasks, &query.TaskFilter{
		CreatedFrom: &from,
		CreatedTo:   &to,
	}, nil, nil)
	require.NoError(t, err)
	// Both boundary instants are included
	assert.Equal(t, []string{"early", "middle"}, titles(result.Tasks))
}

func TestRunTagFilterMatchesAnyOverlap(t *testing.T) {
	tasks := []*domain.Task{
		newTask("tagged", domain.PriorityLow, domain.StatusTodo, 0),
		newTask("other", domain.PriorityLow, domain.StatusTodo, 0),
		newTask("untagged", domain.PriorityLow, domain.StatusTodo, 0),
	}
	tasks[0].Tags = []string{"work", "urgent"}
	tasks[1].Tags = []string{"home"}

	result, err := query.Run(tasks, &query.TaskFilter{Tags: []string{"urgent", "home"}}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"tagged", "other"}, titles(result.Tasks))
}

// Filtering is idempotent: running the same filter over its own output
// yields the same page.
func TestRunFilterIdempotent(t *testing.T) {
	tasks := []*domain.Task{
		newTask("a", domain.PriorityHigh, domain.StatusTodo, 0),
		newTask("b", domain.PriorityLow, domain.StatusDone, time.Hour),
		newTask("c", domain.PriorityHigh, domain.StatusDone, 2*time.Hour),
	}
	filter := &query.TaskFilter{Priorities: []domain.Priority{domain.PriorityHigh}}

	first, err := query.Run(tasks, filter, nil, nil)
	require.NoError(t, err)
	second, err := query.Run(first.Tasks, filter, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, titles(first.Tasks), titles(second.Tasks))
}

func TestRunSortAscendingAndDescending(t *testing.T) {
	tasks := []*domain.Task{
		newTask("medium", domain.PriorityMedium, domain.StatusTodo, 0),
		newTask("urgent", domain.PriorityUrgent, domain.StatusTodo, 0),
		newTask("low", domain.PriorityLow, domain.StatusTodo, 0),
	}

	asc, err := query.Run(tasks, nil, &query.SortOptions{
		Field:     query.SortByPriority,
		Direction: query.SortAsc,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"low", "medium", "urgent"}, titles(asc.Tasks))

	desc, err := query.Run(tasks, nil, &query.SortOptions{
		Field:     query.SortByPriority,
		Direction: query.SortDesc,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent", "medium", "low"}, titles(desc.Tasks))
}

func TestRunSortIsStable(t *testing.T) {
	tasks := []*domain.Task{
		newTask("first", domain.PriorityHigh, domain.StatusTodo, 0),
		newTask("second", domain.PriorityHigh, domain.StatusTodo, time.Hour),
		newTask("third", domain.PriorityHigh, domain.StatusTodo, 2*time.Hour),
	}
	sortOpts := &query.SortOptions{Field: query.SortByPriority, Direction: query.SortAsc}

	once, err := query.Run(tasks, nil, sortOpts, nil)
	require.NoError(t, err)
	// Equal keys keep original relative order
	assert.Equal(t, []string{"first", "second", "third"}, titles(once.Tasks))

	twice, err := query.Run(once.Tasks, nil, sortOpts, nil)
	require.NoError(t, err)
	assert.Equal(t, titles(once.Tasks), titles(twice.Tasks))
}

// Tasks without a due date sort last in BOTH directions; missing-last is an
// explicit tie-break, not natural ordering.
func TestRunSortMissingDueDateSortsLast(t *testing.T) {
	withDue := newTask("with-due", domain.PriorityLow, domain.StatusTodo, 0)
	due := baseTime.Add(48 * time.Hour)
	withDue.DueDate = &due

	laterDue := newTask("later-due", domain.PriorityLow, domain.StatusTodo, 0)
	later := baseTime.Add(72 * time.Hour)
	laterDue.DueDate = &later

	noDue := newTask("no-due", domain.PriorityLow, domain.StatusTodo, 0)

	tasks := []*domain.Task{noDue, laterDue, withDue}

	asc, err := query.Run(tasks, nil, &query.SortOptions{
		Field:     query.SortByDueDate,
		Direction: query.SortAsc,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"with-due", "later-due", "no-due"}, titles(asc.Tasks))

	desc, err := query.Run(tasks, nil, &query.SortOptions{
		Field:     query.SortByDueDate,
		Direction: query.SortDesc,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"later-due", "with-due", "no-due"}, titles(desc.Tasks))
}

func TestRunSortDoesNotMutateInput(t *testing.T) {
	tasks := []*domain.Task{
		newTask("b", domain.PriorityHigh, domain.StatusTodo, 0),
		newTask("a", domain.PriorityLow, domain.StatusTodo, 0),
	}

	_, err := query.Run(tasks, nil, &query.SortOptions{
		Field:     query.SortByTitle,
		Direction: query.SortAsc,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, titles(tasks))
}

func TestRunInvalidSortField(t *testing.T) {
	tasks := []*domain.Task{newTask("a", domain.PriorityLow, domain.StatusTodo, 0)}

	_, err := query.Run(tasks, nil, &query.SortOptions{Field: "assignee"}, nil)
	assert.ErrorIs(t, err, query.ErrInvalidSortField)
}

// Concatenating all pages reproduces the full filtered set exactly once.
func TestRunPaginationPartitionsResult(t *testing.T) {
	var tasks []*domain.Task
	for i := 0; i < 7; i++ {
		tasks = append(tasks, newTask(
			string(rune('a'+i)),
			domain.PriorityLow,
			domain.StatusTodo,
			time.Duration(i)*time.Hour,
		))
	}

	var gathered []string
	limit := 3
	first, err := query.Run(tasks, nil, nil, &query.PageOptions{Page: 1, Limit: limit})
	require.NoError(t, err)
	assert.Equal(t, 7, first.Total)
	assert.Equal(t, 3, first.TotalPages)

	for page := 1; page <= first.TotalPages; page++ {
		result, err := query.Run(tasks, nil, nil, &query.PageOptions{Page: page, Limit: limit})
		require.NoError(t, err)
		gathered = append(gathered, titles(result.Tasks)...)
	}

	assert.Equal(t, titles(tasks), gathered)
}

func TestRunOutOfRangePageIsEmptyNotError(t *testing.T) {
	tasks := []*domain.Task{newTask("a", domain.PriorityLow, domain.StatusTodo, 0)}

	result, err := query.Run(tasks, nil, nil, &query.PageOptions{Page: 5, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, result.Tasks)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 5, result.Page)
}

func TestRunRejectsNonPositivePageOptions(t *testing.T) {
	tasks := []*domain.Task{newTask("a", domain.PriorityLow, domain.StatusTodo, 0)}

	_, err := query.Run(tasks, nil, nil, &query.PageOptions{Page: 0, Limit: 10})
	assert.ErrorIs(t, err, query.ErrInvalidPage)

	_, err = query.Run(tasks, nil, nil, &query.PageOptions{Page: 1, Limit: 0})
	assert.ErrorIs(t, err, query.ErrInvalidLimit)

	_, err = query.Run(tasks, nil, nil, &query.PageOptions{Page: -1, Limit: -1})
	assert.ErrorIs(t, err, query.ErrInvalidPage)
}

func TestRunTotalPagesCeiling(t *testing.T) {
	var tasks []*domain.Task
	for i := 0; i < 5; i++ {
		tasks = append(tasks, newTask("t", domain.PriorityLow, domain.StatusTodo, 0))
	}

	result, err := query.Run(tasks, nil, nil, &query.PageOptions{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalPages)

	result, err = query.Run(nil, nil, nil, &query.PageOptions{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalPages)
	assert.Empty(t, result.Tasks)
}

func TestRunSortAppliedBeforePagination(t *testing.T) {
	tasks := []*domain.Task{
		newTask("c", domain.PriorityLow, domain.StatusTodo, 0),
		newTask("a", domain.PriorityLow, domain.StatusTodo, 0),
		newTask("b", domain.PriorityLow, domain.StatusTodo, 0),
	}

	result, err := query.Run(tasks, nil,
		&query.SortOptions{Field: query.SortByTitle, Direction: query.SortAsc},
		&query.PageOptions{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, titles(result.Tasks))
}
