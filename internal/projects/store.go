// Package projects holds the project list, each project's tasks and the
// selected project.
//
// Operations that reference a missing project or task change nothing and
// return nothing. Each such no-op is logged, counted and passed to the
// optional hook so callers can tell when stale ids are in play.
package projects

import (
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/dyluth/taskboard/pkg/taskboard"
)

// ErrEmptyTitle is returned by UpdateProject when the trimmed title is empty.
var ErrEmptyTitle = errors.New("project title cannot be empty")

// Noop describes a mutation that found nothing to act on.
type Noop struct {
	Op        string
	ProjectID string
	TaskID    string
}

// Option configures a Store.
type Option func(*Store)

// WithNoopHook registers fn to be called, outside the store lock, for every
// swallowed not-found mutation.
func WithNoopHook(fn func(Noop)) Option {
	return func(s *Store) {
		s.noopHook = fn
	}
}

// Store is the project store.
type Store struct {
	mu       sync.Mutex
	state    taskboard.ProjectsState
	noops    int
	noopHook func(Noop)
}

// NewStore returns an empty store with nothing selected.
func NewStore(opts ...Option) *Store {
	s := &Store{state: taskboard.ProjectsState{Items: []taskboard.Project{}}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetItems replaces the whole project list.
func (s *Store) SetItems(items []taskboard.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Items = taskboard.CloneProjects(items)
	if s.state.Items == nil {
		s.state.Items = []taskboard.Project{}
	}
}

// SetSelectedProject points the selection at id. An empty id clears it.
// The id is not checked against the list.
func (s *Store) SetSelectedProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		s.state.SelectedProject = nil
		return
	}
	s.state.SelectedProject = &id
}

// AddProject appends p to the list.
func (s *Store) AddProject(p taskboard.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = append(s.state.Items, p.Clone())
}

// UpdateProject sets the title and due date of a project. The title is
// trimmed and must not end up empty. Tasks are left alone.
func (s *Store) UpdateProject(id, title, dueDate string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.state.Items[i].Title = title
		s.state.Items[i].DueDate = dueDate
	}
	s.mu.Unlock()

	if i < 0 {
		s.noop(Noop{Op: "updateProject", ProjectID: id})
	}
	return nil
}

// DeleteProject removes a project together with its tasks.
func (s *Store) DeleteProject(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i >= 0 {
		s.state.Items = append(s.state.Items[:i:i], s.state.Items[i+1:]...)
	}
	s.mu.Unlock()

	if i < 0 {
		s.noop(Noop{Op: "deleteProject", ProjectID: id})
	}
}

// AddTask appends task to the project's tasks.
func (s *Store) AddTask(projectID string, task taskboard.Task) {
	s.mu.Lock()
	i := s.indexOf(projectID)
	if i >= 0 {
		p := &s.state.Items[i]
		p.Tasks = append(p.Tasks[:len(p.Tasks):len(p.Tasks)], task)
	}
	s.mu.Unlock()

	if i < 0 {
		s.noop(Noop{Op: "addTask", ProjectID: projectID, TaskID: task.ID})
	}
}

// UpdateTask replaces the task with the same id, keeping its position.
func (s *Store) UpdateTask(projectID string, task taskboard.Task) {
	s.mu.Lock()
	found := false
	if i := s.indexOf(projectID); i >= 0 {
		p := &s.state.Items[i]
		if j := taskIndex(p.Tasks, task.ID); j >= 0 {
			tasks := make([]taskboard.Task, len(p.Tasks))
			copy(tasks, p.Tasks)
			tasks[j] = task
			p.Tasks = tasks
			found = true
		}
	}
	s.mu.Unlock()

	if !found {
		s.noop(Noop{Op: "updateTask", ProjectID: projectID, TaskID: task.ID})
	}
}

// DeleteTask removes a task from a project.
func (s *Store) DeleteTask(projectID, taskID string) {
	s.mu.Lock()
	found := false
	if i := s.indexOf(projectID); i >= 0 {
		p := &s.state.Items[i]
		if j := taskIndex(p.Tasks, taskID); j >= 0 {
			p.Tasks = append(p.Tasks[:j:j], p.Tasks[j+1:]...)
			found = true
		}
	}
	s.mu.Unlock()

	if !found {
		s.noop(Noop{Op: "deleteTask", ProjectID: projectID, TaskID: taskID})
	}
}

// State returns a deep copy of the current state.
func (s *Store) State() taskboard.ProjectsState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := taskboard.ProjectsState{Items: taskboard.CloneProjects(s.state.Items)}
	if s.state.SelectedProject != nil {
		selected := *s.state.SelectedProject
		out.SelectedProject = &selected
	}
	return out
}

// Items returns a deep copy of the project list in store order.
func (s *Store) Items() []taskboard.Project {
	return s.State().Items
}

// SelectedProjectID returns the selection, or "" if nothing is selected.
// The id may be stale.
func (s *Store) SelectedProjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.SelectedProject == nil {
		return ""
	}
	return *s.state.SelectedProject
}

// Project looks a project up by id.
func (s *Store) Project(id string) (taskboard.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.state.Items[i].Clone(), true
	}
	return taskboard.Project{}, false
}

// SelectedProject returns the selected project. A stale selection reports
// false, the same as no selection.
func (s *Store) SelectedProject() (taskboard.Project, bool) {
	id := s.SelectedProjectID()
	if id == "" {
		return taskboard.Project{}, false
	}
	return s.Project(id)
}

// Noops returns how many mutations were swallowed as not-found.
func (s *Store) Noops() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.noops
}

func (s *Store) noop(n Noop) {
	s.mu.Lock()
	s.noops++
	s.mu.Unlock()

	log.Printf("[Projects] %s: nothing found (project=%q task=%q)", n.Op, n.ProjectID, n.TaskID)
	if s.noopHook != nil {
		s.noopHook(n)
	}
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id string) int {
	for i := range s.state.Items {
		if s.state.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func taskIndex(tasks []taskboard.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
