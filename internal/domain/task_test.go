package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	task, err := NewTask("Write report", "Quarterly numbers", PriorityHigh, "", nil, nil)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.Status != StatusTodo {
		t.Errorf("Expected new task status %s, got %s", StatusTodo, task.Status)
	}

	if task.Completed() {
		t.Error("Expected new task to not be completed")
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if task.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Title is trimmed on construction
	task, err = NewTask("  padded title  ", "", "", "", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Title != "padded title" {
		t.Errorf("Expected trimmed title, got %q", task.Title)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("Expected default priority %s, got %s", PriorityMedium, task.Priority)
	}

	// Invalid task
	_, err = NewTask("", "", "", "", nil, nil)
	if err == nil {
		t.Fatal("Expected error for empty title, got nil")
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestTaskCompletedDerivedFromStatus(t *testing.T) {
	task := &Task{Status: StatusTodo}

	for status, want := range map[Status]bool{
		StatusTodo:       false,
		StatusInProgress: false,
		StatusDone:       true,
		StatusCancelled:  false,
	} {
		task.Status = status
		if task.Completed() != want {
			t.Errorf("Status %s: expected Completed()=%v", status, want)
		}
	}
}

func TestTaskSetStatus(t *testing.T) {
	task, err := NewTask("Task", "", "", "", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before := task.UpdatedAt
	time.Sleep(time.Millisecond)

	if err := task.SetStatus(StatusDone); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !task.Completed() {
		t.Error("Expected task with DONE status to be completed")
	}
	if !task.UpdatedAt.After(before) {
		t.Error("Expected SetStatus to bump UpdatedAt")
	}

	// No transition legality: DONE back to TODO is allowed
	if err := task.SetStatus(StatusTodo); err != nil {
		t.Errorf("Expected no error for DONE->TODO, got %v", err)
	}

	if err := task.SetStatus("ARCHIVED"); err != ErrInvalidStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidStatus, err)
	}
}

func TestPriorityRank(t *testing.T) {
	ordered := []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Errorf("Expected %s to rank above %s", ordered[i], ordered[i-1])
		}
	}

	if Priority("CRITICAL").IsValid() {
		t.Error("Expected unknown priority to be invalid")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"work", "urgent", "work", "", "home", "urgent"})
	want := []string{"work", "urgent", "home"}

	if len(got) != len(want) {
		t.Fatalf("Expected %d tags, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected tag %q at index %d, got %q", want[i], i, got[i])
		}
	}

	if NormalizeTags(nil) != nil {
		t.Error("Expected nil for empty input")
	}
}

func TestTaskClone(t *testing.T) {
	due := time.Now().UTC().Add(24 * time.Hour)
	task, err := NewTask("Task", "", PriorityLow, "someone", &due, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	clone := task.Clone()
	clone.Tags[0] = "mutated"
	*clone.DueDate = clone.DueDate.Add(time.Hour)

	if task.Tags[0] != "a" {
		t.Error("Expected clone tag mutation to not affect original")
	}
	if !task.DueDate.Equal(due) {
		t.Error("Expected clone due date mutation to not affect original")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Violations: []string{"first", "second"}}
	if !strings.Contains(err.Error(), "first; second") {
		t.Errorf("Expected joined violations in message, got %q", err.Error())
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("Expected ValidationError to match ErrValidation")
	}
}
