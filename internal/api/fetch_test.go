package api

import (
	"context"
	"testing"
	"time"

	"github.com/dyluth/taskboard/pkg/taskboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func persist(t *testing.T, storage taskboard.Storage, state *taskboard.AppState) {
	t.Helper()
	raw, err := taskboard.EncodeAppState(state)
	require.NoError(t, err)
	require.NoError(t, storage.SetItem(context.Background(), taskboard.AppStateKey, raw))
}

func TestSeedProjects(t *testing.T) {
	seed := SeedProjects()
	require.Len(t, seed, 2)

	total := 0
	for _, p := range seed {
		total += len(p.Tasks)
		for _, tk := range p.Tasks {
			assert.NoError(t, tk.Validate())
		}
	}
	assert.Equal(t, 4, total)

	// Fresh copy per call
	seed[0].Title = "changed"
	assert.Equal(t, "Project 1", SeedProjects()[0].Title)
}

func TestFetchInitialProjects(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing persisted gives the seed", func(t *testing.T) {
		f := NewFetcher(taskboard.NewMemoryStorage(), 0)
		projects, err := f.FetchInitialProjects(ctx)
		require.NoError(t, err)
		assert.Equal(t, SeedProjects(), projects)
	})

	t.Run("persisted projects win", func(t *testing.T) {
		storage := taskboard.NewMemoryStorage()
		persist(t, storage, &taskboard.AppState{Projects: taskboard.ProjectsState{
			Items: []taskboard.Project{{ID: "p1", Title: "Mine", DueDate: "2025-07-01"}},
		}})

		projects, err := NewFetcher(storage, 0).FetchInitialProjects(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "Mine", projects[0].Title)
		assert.NotNil(t, projects[0].Tasks)
	})

	t.Run("empty persisted list gives the seed", func(t *testing.T) {
		storage := taskboard.NewMemoryStorage()
		persist(t, storage, &taskboard.AppState{})

		projects, err := NewFetcher(storage, 0).FetchInitialProjects(ctx)
		require.NoError(t, err)
		assert.Len(t, projects, 2)
	})

	t.Run("corrupt data gives the seed", func(t *testing.T) {
		storage := taskboard.NewMemoryStorage()
		require.NoError(t, storage.SetItem(ctx, taskboard.AppStateKey, "invalid_json"))

		projects, err := NewFetcher(storage, 0).FetchInitialProjects(ctx)
		require.NoError(t, err)
		assert.Len(t, projects, 2)
	})
}

func TestFetchInitialAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing persisted gives empty auth", func(t *testing.T) {
		auth, err := NewFetcher(taskboard.NewMemoryStorage(), 0).FetchInitialAuth(ctx)
		require.NoError(t, err)
		assert.Empty(t, auth.Users)
		assert.Nil(t, auth.CurrentUser)
	})

	t.Run("persisted auth is returned", func(t *testing.T) {
		storage := taskboard.NewMemoryStorage()
		user := taskboard.User{ID: "u1", Username: "ann", Password: "pw"}
		persist(t, storage, &taskboard.AppState{Auth: taskboard.AuthState{
			Users:       []taskboard.User{user},
			CurrentUser: &user,
		}})

		auth, err := NewFetcher(storage, 0).FetchInitialAuth(ctx)
		require.NoError(t, err)
		assert.Equal(t, []taskboard.User{user}, auth.Users)
		require.NotNil(t, auth.CurrentUser)
		assert.Equal(t, "ann", auth.CurrentUser.Username)
	})

	t.Run("corrupt data gives empty auth", func(t *testing.T) {
		storage := taskboard.NewMemoryStorage()
		require.NoError(t, storage.SetItem(ctx, taskboard.AppStateKey, "{"))

		auth, err := NewFetcher(storage, 0).FetchInitialAuth(ctx)
		require.NoError(t, err)
		assert.Empty(t, auth.Users)
	})
}

func TestPersistedSelection(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing persisted", func(t *testing.T) {
		selected, err := NewFetcher(taskboard.NewMemoryStorage(), time.Hour).PersistedSelection(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", selected)
	})

	t.Run("returns the persisted selection", func(t *testing.T) {
		storage := taskboard.NewMemoryStorage()
		id := "1"
		raw, err := taskboard.EncodeAppState(&taskboard.AppState{
			Projects: taskboard.ProjectsState{Items: SeedProjects(), SelectedProject: &id},
		})
		require.NoError(t, err)
		require.NoError(t, storage.SetItem(ctx, taskboard.AppStateKey, raw))

		// Does not wait for the latency
		selected, err := NewFetcher(storage, time.Hour).PersistedSelection(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1", selected)
	})

	t.Run("corrupt data selects nothing", func(t *testing.T) {
		storage := taskboard.NewMemoryStorage()
		require.NoError(t, storage.SetItem(ctx, taskboard.AppStateKey, "invalid_json"))

		selected, err := NewFetcher(storage, 0).PersistedSelection(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", selected)
	})
}

func TestLatency(t *testing.T) {
	t.Run("waits before resolving", func(t *testing.T) {
		f := NewFetcher(taskboard.NewMemoryStorage(), 50*time.Millisecond)
		start := time.Now()
		_, err := f.FetchInitialProjects(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("cancellation stops the wait", func(t *testing.T) {
		f := NewFetcher(taskboard.NewMemoryStorage(), time.Hour)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := f.FetchInitialAuth(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
