// Package draft applies field edits to a task being edited before it is
// saved back to the project store.
package draft

import (
	"fmt"
	"time"

	"github.com/dyluth/taskboard/pkg/taskboard"
)

// Edit changes one field of a task draft. The set of edits is closed:
// SetTitle, SetDescription, SetPriority, SetStatus and SetDueDate.
type Edit interface {
	apply(t *taskboard.Task) error
	field() string
}

// SetTitle replaces the title.
type SetTitle string

// SetDescription replaces the description.
type SetDescription string

// SetPriority replaces the priority. Unknown values are rejected.
type SetPriority taskboard.Priority

// SetStatus replaces the status. Unknown values are rejected.
type SetStatus taskboard.Status

// SetDueDate replaces the due date. Must be YYYY-MM-DD.
type SetDueDate string

func (e SetTitle) apply(t *taskboard.Task) error {
	t.Title = string(e)
	return nil
}

func (SetTitle) field() string { return "title" }

func (e SetDescription) apply(t *taskboard.Task) error {
	t.Description = string(e)
	return nil
}

func (SetDescription) field() string { return "description" }

func (e SetPriority) apply(t *taskboard.Task) error {
	p := taskboard.Priority(e)
	if err := p.Validate(); err != nil {
		return err
	}
	t.Priority = p
	return nil
}

func (SetPriority) field() string { return "priority" }

func (e SetStatus) apply(t *taskboard.Task) error {
	s := taskboard.Status(e)
	if err := s.Validate(); err != nil {
		return err
	}
	t.Status = s
	return nil
}

func (SetStatus) field() string { return "status" }

func (e SetDueDate) apply(t *taskboard.Task) error {
	if _, err := time.Parse(taskboard.DateLayout, string(e)); err != nil {
		return fmt.Errorf("due date must be YYYY-MM-DD: %q", string(e))
	}
	t.DueDate = string(e)
	return nil
}

func (SetDueDate) field() string { return "dueDate" }

// Apply returns a copy of task with edits applied in order. If any edit is
// rejected, the original task is returned with the error.
func Apply(task taskboard.Task, edits ...Edit) (taskboard.Task, error) {
	out := task
	for _, e := range edits {
		if err := e.apply(&out); err != nil {
			return task, fmt.Errorf("invalid %s: %w", e.field(), err)
		}
	}
	return out, nil
}

// NewTask returns a blank task due on dueDate with medium priority and
// pending status, ready to be edited.
func NewTask(dueDate string) taskboard.Task {
	return taskboard.Task{
		ID:       taskboard.NewID(),
		Priority: taskboard.PriorityMedium,
		Status:   taskboard.StatusPending,
		DueDate:  dueDate,
	}
}
