package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailPattern checks the minimal local@domain.tld shape: non-whitespace
// local part, non-whitespace domain containing at least one dot.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidationResult is the outcome of validating an entity: a validity flag
// and an ordered list of human-readable violation messages.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Err converts the result to an error. Returns nil for a valid result,
// otherwise a *ValidationError carrying the full message list.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Violations: r.Errors}
}

// ValidateTask checks a candidate Task against every field rule and reports
// all violations. Rules run in a fixed order (required-ness before length
// before cross-field checks) and never short-circuit, so the error list is
// deterministic for a given input. Pure function; the task is not modified.
func ValidateTask(t *Task) ValidationResult {
	var errs []string

	if strings.TrimSpace(t.Title) == "" {
		errs = append(errs, "title is required")
	}

	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		errs = append(errs, fmt.Sprintf("title must be at most %d characters", MaxTitleLength))
	}

	if t.Description != "" && utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		errs = append(
			errs,
			fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength),
		)
	}

	if t.Priority != "" && !t.Priority.IsValid() {
		errs = append(errs, fmt.Sprintf("invalid priority %q", string(t.Priority)))
	}

	if t.Status != "" && !t.Status.IsValid() {
		errs = append(errs, fmt.Sprintf("invalid status %q", string(t.Status)))
	}

	if t.DueDate != nil && !t.CreatedAt.IsZero() && t.DueDate.Before(t.CreatedAt) {
		errs = append(errs, "due date cannot be before creation date")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateUser checks a candidate User against every field rule and reports
// all violations, in fixed rule order. Pure function.
func ValidateUser(u *User) ValidationResult {
	var errs []string

	if strings.TrimSpace(u.Name) == "" {
		errs = append(errs, "name is required")
	}

	if utf8.RuneCountInString(u.Name) > MaxNameLength {
		errs = append(errs, fmt.Sprintf("name must be at most %d characters", MaxNameLength))
	}

	if u.Email == "" {
		errs = append(errs, "email is required")
	} else if !emailPattern.MatchString(u.Email) {
		errs = append(errs, "invalid email format")
	}

	if u.Role != "" && !u.Role.IsValid() {
		errs = append(errs, fmt.Sprintf("invalid role %q", string(u.Role)))
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
