package resolver

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dyluth/taskboard/pkg/taskboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var projects = []taskboard.Project{
	{ID: "0"},
	{ID: "abc12345-0000-4000-8000-000000000001"},
	{ID: "abc12399-0000-4000-8000-000000000002"},
	{ID: "def45678-0000-4000-8000-000000000003"},
}

func TestResolveProjectID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		checkFn func(error) bool
	}{
		{name: "exact short seed id", input: "0", want: "0"},
		{name: "full id", input: "def45678-0000-4000-8000-000000000003", want: "def45678-0000-4000-8000-000000000003"},
		{name: "unique prefix", input: "def456", want: "def45678-0000-4000-8000-000000000003"},
		{name: "longer prefix disambiguates", input: "abc12345", want: "abc12345-0000-4000-8000-000000000001"},
		{name: "ambiguous prefix", input: "abc123", checkFn: IsAmbiguousError},
		{name: "no match", input: "ffffff", checkFn: IsNotFoundError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveProjectID(projects, tt.input)
			if tt.checkFn != nil {
				require.Error(t, err)
				assert.True(t, tt.checkFn(err), "unexpected error type: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_TooShort(t *testing.T) {
	_, err := ResolveProjectID(projects, "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 6 characters")
	assert.False(t, IsNotFoundError(err))
}

func TestResolveTaskID(t *testing.T) {
	tasks := []taskboard.Task{{ID: "1"}, {ID: "99887766-aaaa"}}

	got, err := ResolveTaskID(tasks, "998877")
	require.NoError(t, err)
	assert.Equal(t, "99887766-aaaa", got)

	_, err = ResolveTaskID(tasks, "123456")
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "task", notFound.Kind)
	assert.Equal(t, "no tasks found matching '123456'", err.Error())
}

func TestWrappedErrors(t *testing.T) {
	_, err := ResolveProjectID(projects, "abc123")
	wrapped := fmt.Errorf("select failed: %w", err)
	assert.True(t, IsAmbiguousError(wrapped))
}

func TestFormatAmbiguousError(t *testing.T) {
	t.Run("lists matches", func(t *testing.T) {
		msg := FormatAmbiguousError(&AmbiguousError{Kind: "project", ShortID: "abc123", Matches: []string{"abc1230", "abc1231"}})
		assert.Contains(t, msg, "matches 2 projects:")
		assert.Contains(t, msg, "  abc1230\n  abc1231\n")
		assert.Contains(t, msg, "uniquely identify the project.")
	})

	t.Run("truncates after ten", func(t *testing.T) {
		matches := make([]string, 12)
		for i := range matches {
			matches[i] = fmt.Sprintf("abc123-%02d", i)
		}
		msg := FormatAmbiguousError(&AmbiguousError{Kind: "task", ShortID: "abc123", Matches: matches})
		assert.Equal(t, 10, strings.Count(msg, "  abc123-"))
		assert.Contains(t, msg, "...and 2 more")
	})
}
