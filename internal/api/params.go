package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/query"
)

// parseListQuery turns the list endpoint's query string into engine inputs.
// Multi-value filters accept repeated parameters (?status=TODO&status=DONE).
// Pagination always applies: missing page options fall back to the
// configured defaults, and the limit is clamped to the configured maximum
// before it reaches the engine.
func (h *TaskHandler) parseListQuery(
	r *http.Request,
) (*query.TaskFilter, *query.SortOptions, *query.PageOptions, error) {
	values := r.URL.Query()

	filter := &query.TaskFilter{}

	for _, raw := range values["status"] {
		status := domain.Status(raw)
		if !status.IsValid() {
			return nil, nil, nil, fmt.Errorf("invalid status filter %q", raw)
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	for _, raw := range values["priority"] {
		priority := domain.Priority(raw)
		if !priority.IsValid() {
			return nil, nil, nil, fmt.Errorf("invalid priority filter %q", raw)
		}
		filter.Priorities = append(filter.Priorities, priority)
	}

	if assignee := values.Get("assignee"); assignee != "" {
		filter.AssigneeID = &assignee
	}

	if raw := values.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid completed filter %q", raw)
		}
		filter.Completed = &completed
	}

	if raw := values.Get("created_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid created_from timestamp %q", raw)
		}
		filter.CreatedFrom = &from
	}

	if raw := values.Get("created_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid created_to timestamp %q", raw)
		}
		filter.CreatedTo = &to
	}

	filter.Tags = append(filter.Tags, values["tag"]...)

	params := listTasksParams{
		SortBy: values.Get("sort_by"),
		Order:  values.Get("order"),
	}
	if err := shared.Validate.Struct(params); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid sort parameters")
	}

	var sortOpts *query.SortOptions
	if params.SortBy != "" {
		sortOpts = &query.SortOptions{
			Field:     query.SortField(params.SortBy),
			Direction: query.SortDirection(params.Order),
		}
	}

	page := &query.PageOptions{Page: 1, Limit: h.pagination.DefaultLimit}

	if raw := values.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid page %q", raw)
		}
		page.Page = parsed
	}

	if raw := values.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid limit %q", raw)
		}
		page.Limit = parsed
	}

	if page.Limit > h.pagination.MaxLimit {
		page.Limit = h.pagination.MaxLimit
	}

	return filter, sortOpts, page, nil
}
