package board

import (
	"github.com/dyluth/taskboard/internal/view"
	"github.com/dyluth/taskboard/pkg/taskboard"
)

// CurrentUsername returns the logged-in username, or "".
func (b *Board) CurrentUsername() string {
	return b.auth.CurrentUsername()
}

// LoggedIn reports whether a session is active.
func (b *Board) LoggedIn() bool {
	return b.auth.CurrentUser() != nil
}

// UserList returns every registered username in registration order.
func (b *Board) UserList() []string {
	users := b.auth.Users()
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Username
	}
	return names
}

// ProjectList returns projects in display order: store order with a just
// created project pinned to the front.
func (b *Board) ProjectList() []taskboard.Project {
	b.mu.Lock()
	pinned := b.pinnedProject
	b.mu.Unlock()

	return view.PinProjects(b.projects.Items(), pinned)
}

// SelectedProjectID returns the selected project id, or "" when nothing is
// selected or the selection no longer exists.
func (b *Board) SelectedProjectID() string {
	p, ok := b.projects.SelectedProject()
	if !ok {
		return ""
	}
	return p.ID
}

// SelectedProject returns the selected project.
func (b *Board) SelectedProject() (taskboard.Project, bool) {
	return b.projects.SelectedProject()
}

// Project looks up a project by id.
func (b *Board) Project(id string) (taskboard.Project, bool) {
	return b.projects.Project(id)
}

// TasksForSelectedProject returns the displayed tasks of the selected
// project. No selection gives an empty list.
func (b *Board) TasksForSelectedProject(sortKey view.SortKey, filter view.Filter) []taskboard.Task {
	return b.TasksForProject(b.SelectedProjectID(), sortKey, filter)
}

// TasksForProject returns the displayed tasks of a project.
func (b *Board) TasksForProject(projectID string, sortKey view.SortKey, filter view.Filter) []taskboard.Task {
	p, ok := b.projects.Project(projectID)
	if !ok {
		return []taskboard.Task{}
	}

	b.mu.Lock()
	pinned := b.pinnedTask
	b.mu.Unlock()

	return view.Display(p.Tasks, sortKey, filter, pinned)
}

// Noops returns how many mutations referenced a missing project or task.
func (b *Board) Noops() int {
	return b.projects.Noops()
}
