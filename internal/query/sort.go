package query

import (
	"sort"
	"strings"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// sortTasks stable-sorts tasks in place by the given field. Tasks missing
// the field sort after all tasks that have it, regardless of direction:
// the missing-last rule is an explicit tie-break, not natural ordering.
func sortTasks(tasks []*domain.Task, field SortField, desc bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		aMissing := fieldMissing(a, field)
		bMissing := fieldMissing(b, field)
		switch {
		case aMissing && bMissing:
			return false
		case aMissing:
			return false
		case bMissing:
			return true
		}

		c := compareField(a, b, field)
		if c == 0 {
			return false
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// fieldMissing reports whether the task has no value for the sort field.
// Only the optional due date can be absent.
func fieldMissing(t *domain.Task, field SortField) bool {
	return field == SortByDueDate && t.DueDate == nil
}

// compareField orders two tasks by the given field in ascending terms,
// returning a negative, zero, or positive value. Both tasks are known to
// have the field present.
func compareField(a, b *domain.Task, field SortField) int {
	switch field {
	case SortByTitle:
		return strings.Compare(a.Title, b.Title)
	case SortByPriority:
		return a.Priority.Rank() - b.Priority.Rank()
	case SortByStatus:
		return a.Status.Rank() - b.Status.Rank()
	case SortByCreatedAt:
		return compareTimes(a.CreatedAt, b.CreatedAt)
	case SortByUpdatedAt:
		return compareTimes(a.UpdatedAt, b.UpdatedAt)
	case SortByDueDate:
		return compareTimes(*a.DueDate, *b.DueDate)
	default:
		return 0
	}
}

func compareTimes(a, b time.Time) int {
	return a.Compare(b)
}
