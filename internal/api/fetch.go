// Package api simulates the remote calls used to hydrate the board at
// startup. Each fetch waits a fixed latency, then reads through storage.
package api

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dyluth/taskboard/pkg/taskboard"
)

// DefaultLatency is the delay applied before each fetch resolves.
const DefaultLatency = 500 * time.Millisecond

// Fetcher serves the initial project list and auth state.
type Fetcher struct {
	storage taskboard.Storage
	latency time.Duration
}

// NewFetcher creates a fetcher reading from storage. A latency of zero
// resolves immediately.
func NewFetcher(storage taskboard.Storage, latency time.Duration) *Fetcher {
	return &Fetcher{storage: storage, latency: latency}
}

// FetchInitialProjects returns the persisted projects, or the seed projects
// when none are persisted or the snapshot does not parse.
func (f *Fetcher) FetchInitialProjects(ctx context.Context) ([]taskboard.Project, error) {
	state, err := f.fetchState(ctx)
	if err != nil {
		return nil, err
	}

	if state == nil || len(state.Projects.Items) == 0 {
		return SeedProjects(), nil
	}
	return state.Projects.Items, nil
}

// FetchInitialAuth returns the persisted auth state, or an empty one.
func (f *Fetcher) FetchInitialAuth(ctx context.Context) (taskboard.AuthState, error) {
	state, err := f.fetchState(ctx)
	if err != nil {
		return taskboard.AuthState{}, err
	}

	if state == nil {
		return taskboard.AuthState{Users: []taskboard.User{}}, nil
	}
	return state.Auth, nil
}

// PersistedSelection returns the persisted selected project id, or "" when
// nothing is selected or persisted. It does not wait.
func (f *Fetcher) PersistedSelection(ctx context.Context) (string, error) {
	state, err := f.readState(ctx)
	if err != nil {
		return "", err
	}

	if state == nil || state.Projects.SelectedProject == nil {
		return "", nil
	}
	return *state.Projects.SelectedProject, nil
}

// fetchState returns nil when nothing usable is persisted.
func (f *Fetcher) fetchState(ctx context.Context) (*taskboard.AppState, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.readState(ctx)
}

func (f *Fetcher) readState(ctx context.Context) (*taskboard.AppState, error) {
	raw, err := f.storage.GetItem(ctx, taskboard.AppStateKey)
	if err != nil {
		if taskboard.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read persisted state: %w", err)
	}

	state, err := taskboard.DecodeAppState(raw)
	if err != nil {
		log.Printf("[API] persisted state corrupt, using defaults: %v", err)
		return nil, nil
	}
	return state, nil
}

func (f *Fetcher) wait(ctx context.Context) error {
	if f.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(f.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
