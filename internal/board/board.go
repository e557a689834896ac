// Package board is the command and query surface used by the CLI.
//
// Every command performs one store mutation and then persists the combined
// state through the snapshot synchronizer before returning. The board also
// holds the short-lived view state the CLI needs within a run: which project
// and task were just created and so stay pinned to the front of lists.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dyluth/taskboard/internal/api"
	"github.com/dyluth/taskboard/internal/auth"
	"github.com/dyluth/taskboard/internal/draft"
	"github.com/dyluth/taskboard/internal/projects"
	"github.com/dyluth/taskboard/internal/snapshot"
	"github.com/dyluth/taskboard/pkg/taskboard"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 8

var (
	// ErrNotAuthenticated is returned by project and task commands when no
	// user is logged in.
	ErrNotAuthenticated = errors.New("not logged in")

	// ErrPasswordTooShort is returned by Register for passwords shorter than
	// MinPasswordLength.
	ErrPasswordTooShort = fmt.Errorf("password must contain at least %d characters", MinPasswordLength)

	// ErrUnknownUser is returned by Login when no user has the username.
	ErrUnknownUser = errors.New("user does not exist")

	// ErrWrongPassword is returned by Login when the password does not match.
	ErrWrongPassword = errors.New("wrong password")
)

// Options configures a Board.
type Options struct {
	// InstanceName tags log events.
	InstanceName string

	// FetchLatency is the simulated delay of each hydration fetch.
	FetchLatency time.Duration

	// Now supplies the current time for default due dates. Defaults to time.Now.
	Now func() time.Time
}

// Board wires the auth and project stores to storage.
type Board struct {
	instanceName string
	storage      taskboard.Storage
	auth         *auth.Store
	projects     *projects.Store
	synchronizer *snapshot.Synchronizer
	fetcher      *api.Fetcher
	now          func() time.Time

	mu            sync.Mutex
	pinnedProject string
	pinnedTask    string
}

// New creates a board persisting through storage. Call Hydrate before use.
func New(storage taskboard.Storage, opts Options) *Board {
	b := &Board{
		instanceName: opts.InstanceName,
		storage:      storage,
		auth:         auth.NewStore(),
		synchronizer: snapshot.NewSynchronizer(storage),
		fetcher:      api.NewFetcher(storage, opts.FetchLatency),
		now:          opts.Now,
	}
	if b.now == nil {
		b.now = time.Now
	}
	b.projects = projects.NewStore(projects.WithNoopHook(b.onNoop))
	return b
}

// Hydrate loads the initial projects and users concurrently, then restores
// the persisted selection and session. The stores are only replaced once both fetches
// succeed.
func (b *Board) Hydrate(ctx context.Context) error {
	var (
		wg         sync.WaitGroup
		items      []taskboard.Project
		authState  taskboard.AuthState
		projectErr error
		authErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		items, projectErr = b.fetcher.FetchInitialProjects(ctx)
	}()
	go func() {
		defer wg.Done()
		authState, authErr = b.fetcher.FetchInitialAuth(ctx)
	}()
	wg.Wait()

	if projectErr != nil {
		return fmt.Errorf("failed to fetch projects: %w", projectErr)
	}
	if authErr != nil {
		return fmt.Errorf("failed to fetch users: %w", authErr)
	}

	selected, err := b.fetcher.PersistedSelection(ctx)
	if err != nil {
		return fmt.Errorf("failed to read selection: %w", err)
	}

	b.projects.SetItems(items)
	b.projects.SetSelectedProject(selected)
	b.auth.ReplaceAll(authState)
	b.auth.LoadPersistedSession(ctx, b.storage)

	b.logEvent("hydrated", map[string]interface{}{
		"projects": len(items),
		"users":    len(authState.Users),
	})

	return b.persist(ctx)
}

// Register creates a user. The password length policy is applied here; the
// auth store only enforces unique usernames.
func (b *Board) Register(ctx context.Context, username, password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	if err := b.auth.Register(username, password); err != nil {
		return err
	}

	b.logEvent("user_registered", map[string]interface{}{"username": username})
	return b.persist(ctx)
}

// Login starts a session, telling an unknown user apart from a wrong
// password.
func (b *Board) Login(ctx context.Context, username, password string) error {
	known := false
	for _, u := range b.auth.Users() {
		if u.Username == username {
			known = true
			break
		}
	}
	if !known {
		return ErrUnknownUser
	}

	if err := b.auth.Login(username, password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return ErrWrongPassword
		}
		return err
	}

	b.logEvent("login", map[string]interface{}{"username": username})
	return b.persist(ctx)
}

// Logout ends the session.
func (b *Board) Logout(ctx context.Context) error {
	b.auth.Logout()
	b.clearPins()

	b.logEvent("logout", map[string]interface{}{})
	return b.persist(ctx)
}

// NewProject adds an untitled project due today, selects it and pins it to
// the front of the project list until it is saved or cancelled.
func (b *Board) NewProject(ctx context.Context) (taskboard.Project, error) {
	if err := b.requireSession(); err != nil {
		return taskboard.Project{}, err
	}

	p := taskboard.Project{
		ID:      taskboard.NewID(),
		DueDate: b.today(),
		Tasks:   []taskboard.Task{},
	}
	b.projects.AddProject(p)
	b.projects.SetSelectedProject(p.ID)

	b.mu.Lock()
	b.pinnedProject = p.ID
	b.mu.Unlock()

	b.logEvent("project_created", map[string]interface{}{"project_id": p.ID})
	return p, b.persist(ctx)
}

// SaveProject sets a project's title and due date. Returns
// projects.ErrEmptyTitle without persisting if the title is blank.
func (b *Board) SaveProject(ctx context.Context, id, title, dueDate string) error {
	if err := b.requireSession(); err != nil {
		return err
	}

	if err := b.projects.UpdateProject(id, title, dueDate); err != nil {
		return err
	}

	b.mu.Lock()
	b.pinnedProject = ""
	b.mu.Unlock()

	return b.persist(ctx)
}

// CancelProject abandons an edit. A project that was just created by
// NewProject is deleted; any other project is left as is.
func (b *Board) CancelProject(ctx context.Context, id string) error {
	if err := b.requireSession(); err != nil {
		return err
	}

	b.mu.Lock()
	isNew := b.pinnedProject == id
	b.mu.Unlock()

	if !isNew {
		return nil
	}
	return b.DeleteProject(ctx, id)
}

// DeleteProject removes a project and all of its tasks.
func (b *Board) DeleteProject(ctx context.Context, id string) error {
	if err := b.requireSession(); err != nil {
		return err
	}

	b.projects.DeleteProject(id)

	b.mu.Lock()
	if b.pinnedProject == id {
		b.pinnedProject = ""
	}
	b.mu.Unlock()

	b.logEvent("project_deleted", map[string]interface{}{"project_id": id})
	return b.persist(ctx)
}

// SelectProject changes the selected project. An empty id clears the
// selection.
func (b *Board) SelectProject(ctx context.Context, id string) error {
	if err := b.requireSession(); err != nil {
		return err
	}

	b.projects.SetSelectedProject(id)
	return b.persist(ctx)
}

// NewTask adds a blank task to a project and pins it to the front of every
// task list until it is saved or cancelled.
func (b *Board) NewTask(ctx context.Context, projectID string) (taskboard.Task, error) {
	if err := b.requireSession(); err != nil {
		return taskboard.Task{}, err
	}

	task := draft.NewTask(b.today())
	b.projects.AddTask(projectID, task)

	b.mu.Lock()
	b.pinnedTask = task.ID
	b.mu.Unlock()

	b.logEvent("task_created", map[string]interface{}{"project_id": projectID, "task_id": task.ID})
	return task, b.persist(ctx)
}

// SaveTask replaces a task in place.
func (b *Board) SaveTask(ctx context.Context, projectID string, task taskboard.Task) error {
	if err := b.requireSession(); err != nil {
		return err
	}

	b.projects.UpdateTask(projectID, task)

	b.mu.Lock()
	b.pinnedTask = ""
	b.mu.Unlock()

	return b.persist(ctx)
}

// CancelTask abandons an edit. A task that was just created by NewTask is
// deleted.
func (b *Board) CancelTask(ctx context.Context, projectID, taskID string) error {
	if err := b.requireSession(); err != nil {
		return err
	}

	b.mu.Lock()
	isNew := b.pinnedTask == taskID
	b.mu.Unlock()

	if !isNew {
		return nil
	}
	return b.DeleteTask(ctx, projectID, taskID)
}

// DeleteTask removes a task from a project.
func (b *Board) DeleteTask(ctx context.Context, projectID, taskID string) error {
	if err := b.requireSession(); err != nil {
		return err
	}

	b.projects.DeleteTask(projectID, taskID)

	b.mu.Lock()
	if b.pinnedTask == taskID {
		b.pinnedTask = ""
	}
	b.mu.Unlock()

	b.logEvent("task_deleted", map[string]interface{}{"project_id": projectID, "task_id": taskID})
	return b.persist(ctx)
}

func (b *Board) requireSession() error {
	if b.auth.CurrentUser() == nil {
		return ErrNotAuthenticated
	}
	return nil
}

func (b *Board) clearPins() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pinnedProject = ""
	b.pinnedTask = ""
}

func (b *Board) today() string {
	return b.now().Format(taskboard.DateLayout)
}

func (b *Board) persist(ctx context.Context) error {
	if err := b.synchronizer.Persist(ctx, b.projects.State(), b.auth.State()); err != nil {
		log.Printf("[Board] Failed to persist state: %v", err)
		return err
	}
	return nil
}

func (b *Board) onNoop(n projects.Noop) {
	b.logEvent("noop", map[string]interface{}{
		"op":         n.Op,
		"project_id": n.ProjectID,
		"task_id":    n.TaskID,
	})
}

// logEvent logs a structured event in JSON format.
func (b *Board) logEvent(eventType string, data map[string]interface{}) {
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	data["level"] = "info"
	data["component"] = "board"
	data["event_type"] = eventType
	data["instance"] = b.instanceName

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("[Board] Failed to marshal log event: %v", err)
		return
	}

	log.Println(string(jsonData))
}
