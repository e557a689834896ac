// Package auth holds registered users and the current session.
package auth

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/dyluth/taskboard/pkg/taskboard"
)

var (
	// ErrUserExists is returned by Register when the username is taken.
	ErrUserExists = errors.New("user exists")

	// ErrInvalidCredentials is returned by Login when no user matches both
	// username and password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Store is the auth store. The zero value is not usable; call NewStore.
type Store struct {
	mu    sync.Mutex
	state taskboard.AuthState
}

// NewStore returns a store with no users and no session.
func NewStore() *Store {
	return &Store{state: taskboard.AuthState{Users: []taskboard.User{}}}
}

// Register appends a new user with a fresh id.
// A taken username leaves the state unchanged and returns ErrUserExists.
func (s *Store) Register(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.state.Users {
		if u.Username == username {
			log.Printf("[Auth] user exists: %s", username)
			return ErrUserExists
		}
	}

	s.state.Users = append(s.state.Users, taskboard.User{
		ID:       taskboard.NewID(),
		Username: username,
		Password: password,
	})
	return nil
}

// Login starts a session for the user matching both username and password.
// The session holds a copy of the user record.
func (s *Store) Login(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.state.Users {
		if u.Username == username && u.Password == password {
			session := u
			s.state.CurrentUser = &session
			return nil
		}
	}
	return ErrInvalidCredentials
}

// Logout ends the current session, if any.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentUser = nil
}

// LoadPersistedSession restores the session from the session key without
// checking credentials. Missing or unreadable records leave the state alone.
func (s *Store) LoadPersistedSession(ctx context.Context, storage taskboard.Storage) {
	raw, err := storage.GetItem(ctx, taskboard.SessionKey)
	if err != nil {
		if !taskboard.IsNotFound(err) {
			log.Printf("[Auth] failed to read session: %v", err)
		}
		return
	}

	user, err := taskboard.DecodeUser(raw)
	if err != nil {
		log.Printf("[Auth] ignoring malformed session: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentUser = user
}

// ReplaceAll swaps in a whole auth state, as loaded at startup.
func (s *Store) ReplaceAll(state taskboard.AuthState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = cloneState(state)
}

// State returns a copy of the current state.
func (s *Store) State() taskboard.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// Users returns a copy of the registered users.
func (s *Store) Users() []taskboard.User {
	return s.State().Users
}

// CurrentUser returns the session user, or nil when logged out.
func (s *Store) CurrentUser() *taskboard.User {
	return s.State().CurrentUser
}

// CurrentUsername returns the session username, or "" when logged out.
func (s *Store) CurrentUsername() string {
	if u := s.CurrentUser(); u != nil {
		return u.Username
	}
	return ""
}

func cloneState(state taskboard.AuthState) taskboard.AuthState {
	users := make([]taskboard.User, len(state.Users))
	copy(users, state.Users)

	out := taskboard.AuthState{Users: users}
	if state.CurrentUser != nil {
		current := *state.CurrentUser
		out.CurrentUser = &current
	}
	return out
}
