// Package snapshot writes the combined board state to storage after every
// committed mutation.
package snapshot

import (
	"context"
	"fmt"
	"log"

	"github.com/dyluth/taskboard/pkg/taskboard"
)

// Synchronizer persists {projects, auth} under taskboard.AppStateKey and the
// current user under taskboard.SessionKey.
type Synchronizer struct {
	storage taskboard.Storage
}

// NewSynchronizer creates a synchronizer writing through storage.
func NewSynchronizer(storage taskboard.Storage) *Synchronizer {
	return &Synchronizer{storage: storage}
}

// Persist writes the snapshot.
//
// When the live project list is empty the previously persisted projects are
// kept, so an empty store can never overwrite saved projects. A prior value
// that is missing or does not parse counts as an empty project list.
//
// Only storage errors are returned.
func (s *Synchronizer) Persist(ctx context.Context, projects taskboard.ProjectsState, auth taskboard.AuthState) error {
	state := taskboard.AppState{Projects: projects, Auth: auth}

	if len(projects.Items) == 0 {
		prior, err := s.priorProjects(ctx)
		if err != nil {
			return err
		}
		state.Projects = prior
	}

	raw, err := taskboard.EncodeAppState(&state)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := s.storage.SetItem(ctx, taskboard.AppStateKey, raw); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	return s.persistSession(ctx, auth.CurrentUser)
}

func (s *Synchronizer) priorProjects(ctx context.Context) (taskboard.ProjectsState, error) {
	empty := taskboard.ProjectsState{Items: []taskboard.Project{}}

	raw, err := s.storage.GetItem(ctx, taskboard.AppStateKey)
	if err != nil {
		if taskboard.IsNotFound(err) {
			return empty, nil
		}
		return empty, fmt.Errorf("failed to read persisted snapshot: %w", err)
	}

	prior, err := taskboard.DecodeAppState(raw)
	if err != nil {
		log.Printf("[Sync] persisted state corrupt, starting from empty projects: %v", err)
		return empty, nil
	}

	return prior.Projects, nil
}

func (s *Synchronizer) persistSession(ctx context.Context, user *taskboard.User) error {
	if user == nil {
		if err := s.storage.RemoveItem(ctx, taskboard.SessionKey); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	}

	raw, err := taskboard.EncodeUser(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.storage.SetItem(ctx, taskboard.SessionKey, raw); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}
