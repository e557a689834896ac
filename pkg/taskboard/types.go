package taskboard

import (
	"fmt"

	"github.com/google/uuid"
)

// DateLayout is the format of every due date held by the board.
const DateLayout = "2006-01-02"

// User is a registered account. Passwords are kept as given.
type User struct {
	ID       string `json:"id"`       // UUID assigned at registration
	Username string `json:"username"` // Unique among users
	Password string `json:"password"`
}

// Project owns an ordered list of tasks.
type Project struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	DueDate string `json:"dueDate"` // YYYY-MM-DD
	Tasks   []Task `json:"tasks"`
}

// Task is a unit of work inside exactly one project.
type Task struct {
	ID          string   `json:"id"` // Unique within its project
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	DueDate     string   `json:"dueDate"` // YYYY-MM-DD
}

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority in rank order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "inprogress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in rank order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// ProjectsState is the project store's persisted shape.
// SelectedProject is nil when nothing is selected.
type ProjectsState struct {
	Items           []Project `json:"items"`
	SelectedProject *string   `json:"selectedProject"`
}

// AuthState is the auth store's persisted shape.
type AuthState struct {
	Users       []User `json:"users"`
	CurrentUser *User  `json:"currentUser"`
}

// AppState is the combined snapshot written under AppStateKey.
type AppState struct {
	Projects ProjectsState `json:"projects"`
	Auth     AuthState     `json:"auth"`
}

// Rank returns the sort position of the priority (high first).
// Unknown values sort after every known one.
func (p Priority) Rank() int {
	for i, known := range Priorities {
		if p == known {
			return i
		}
	}
	return len(Priorities)
}

// Validate checks if the Priority is a valid enum value.
func (p Priority) Validate() error {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return nil
	default:
		return fmt.Errorf("unknown priority: %q", p)
	}
}

// Rank returns the sort position of the status (pending first).
// Unknown values sort after every known one.
func (s Status) Rank() int {
	for i, known := range Statuses {
		if s == known {
			return i
		}
	}
	return len(Statuses)
}

// Validate checks if the Status is a valid enum value.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return nil
	default:
		return fmt.Errorf("unknown status: %q", s)
	}
}

// Validate checks the task's enum fields and id.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}

	if err := t.Priority.Validate(); err != nil {
		return fmt.Errorf("invalid priority: %w", err)
	}

	if err := t.Status.Validate(); err != nil {
		return fmt.Errorf("invalid status: %w", err)
	}

	return nil
}

// Clone returns a deep copy of the project, so callers can hand out
// projects without sharing the task slice.
func (p Project) Clone() Project {
	clone := p
	if p.Tasks != nil {
		clone.Tasks = make([]Task, len(p.Tasks))
		copy(clone.Tasks, p.Tasks)
	}
	return clone
}

// CloneProjects deep-copies a project list.
func CloneProjects(projects []Project) []Project {
	if projects == nil {
		return nil
	}
	out := make([]Project, len(projects))
	for i, p := range projects {
		out[i] = p.Clone()
	}
	return out
}

// NewID returns a fresh random identifier. Users, projects and tasks all use
// the same generator.
func NewID() string {
	return uuid.New().String()
}
