package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/dyluth/taskboard/pkg/taskboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Run("appends a user with a fresh id", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Register("ann", "secret123"))

		users := s.Users()
		require.Len(t, users, 1)
		assert.Equal(t, "ann", users[0].Username)
		assert.Equal(t, "secret123", users[0].Password)
		assert.Len(t, users[0].ID, 36)
		assert.Nil(t, s.CurrentUser(), "registering does not log in")
	})

	t.Run("duplicate username leaves state unchanged", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Register("ann", "x"))
		before := s.State()

		err := s.Register("ann", "y")
		assert.ErrorIs(t, err, ErrUserExists)
		assert.Equal(t, before, s.State())
	})

	t.Run("usernames stay unique", func(t *testing.T) {
		s := NewStore()
		for _, name := range []string{"a", "b", "a", "c", "b"} {
			_ = s.Register(name, "pw")
		}

		seen := map[string]bool{}
		for _, u := range s.Users() {
			assert.False(t, seen[u.Username], "duplicate %s", u.Username)
			seen[u.Username] = true
		}
		assert.Len(t, seen, 3)
	})
}

func TestLogin(t *testing.T) {
	newStore := func(t *testing.T) *Store {
		s := NewStore()
		require.NoError(t, s.Register("ann", "secret123"))
		return s
	}

	t.Run("exact match starts a session", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Login("ann", "secret123"))
		assert.Equal(t, "ann", s.CurrentUsername())
		assert.Equal(t, s.Users()[0], *s.CurrentUser())
	})

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "ann", "nope"},
		{"unknown user", "bob", "secret123"},
		{"case differs", "Ann", "secret123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			err := s.Login(tt.username, tt.password)
			assert.True(t, errors.Is(err, ErrInvalidCredentials))
			assert.Nil(t, s.CurrentUser())
		})
	}

	t.Run("failed login keeps the existing session", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Login("ann", "secret123"))
		assert.Error(t, s.Login("ann", "wrong"))
		assert.Equal(t, "ann", s.CurrentUsername())
	})

	t.Run("session is a copy", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Login("ann", "secret123"))

		current := s.CurrentUser()
		current.Username = "mutated"
		assert.Equal(t, "ann", s.CurrentUsername())
	})
}

func TestLogout(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Register("ann", "pw"))
	require.NoError(t, s.Login("ann", "pw"))

	s.Logout()
	assert.Nil(t, s.CurrentUser())
	assert.Equal(t, "", s.CurrentUsername())

	// Logging out twice is fine
	s.Logout()
	assert.Nil(t, s.CurrentUser())
	assert.Len(t, s.Users(), 1)
}

func TestLoadPersistedSession(t *testing.T) {
	ctx := context.Background()

	t.Run("restores the stored user", func(t *testing.T) {
		storage := taskboard.NewMemoryStorage()
		require.NoError(t, storage.SetItem(ctx, taskboard.SessionKey, `{"id":"1","username":"ann","password":"pw"}`))

		s := NewStore()
		s.LoadPersistedSession(ctx, storage)
		assert.Equal(t, "ann", s.CurrentUsername())
		assert.Empty(t, s.Users(), "session restore does not verify against users")
	})

	tests := []struct {
		name string
		raw  *string
	}{
		{"missing key", nil},
		{"invalid json", ptr("{nope")},
		{"json null", ptr("null")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := taskboard.NewMemoryStorage()
			if tt.raw != nil {
				require.NoError(t, storage.SetItem(ctx, taskboard.SessionKey, *tt.raw))
			}

			s := NewStore()
			require.NoError(t, s.Register("bob", "pw"))
			require.NoError(t, s.Login("bob", "pw"))

			s.LoadPersistedSession(ctx, storage)
			assert.Equal(t, "bob", s.CurrentUsername())
		})
	}

	t.Run("unreadable storage", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		s := NewStore()
		s.LoadPersistedSession(cancelled, taskboard.NewMemoryStorage())
		assert.Nil(t, s.CurrentUser())
	})
}

func TestReplaceAll(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Register("old", "pw"))

	current := taskboard.User{ID: "2", Username: "new", Password: "pw"}
	s.ReplaceAll(taskboard.AuthState{
		Users:       []taskboard.User{current},
		CurrentUser: &current,
	})

	assert.Equal(t, []taskboard.User{current}, s.Users())
	assert.Equal(t, "new", s.CurrentUsername())

	// The store holds its own copy
	current.Username = "changed"
	assert.Equal(t, "new", s.CurrentUsername())
}

func ptr(s string) *string {
	return &s
}
