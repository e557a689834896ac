package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dyluth/taskboard/pkg/taskboard"
)

// MinShortIDLength is the minimum required length for short ID prefixes.
// Set to 6 characters to balance usability with collision avoidance.
const MinShortIDLength = 6

// ResolveProjectID resolves a full id or unique id prefix to a project id.
func ResolveProjectID(projects []taskboard.Project, input string) (string, error) {
	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	return Resolve("project", ids, input)
}

// ResolveTaskID resolves a full id or unique id prefix to a task id.
func ResolveTaskID(tasks []taskboard.Task, input string) (string, error) {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return Resolve("task", ids, input)
}

// Resolve maps input onto one of ids.
//
// The function handles three cases:
// 1. Input equals an id - returned as-is, whatever its length
// 2. Input is too short (< 6 chars) - returns validation error
// 3. Input is a prefix - returns the unique match
func Resolve(kind string, ids []string, input string) (string, error) {
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	if len(input) < MinShortIDLength {
		return "", fmt.Errorf("short ID must be at least %d characters (got %d)", MinShortIDLength, len(input))
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Kind: kind, ShortID: input}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{Kind: kind, ShortID: input, Matches: matches}
	}
}

// NotFoundError indicates no ids matched the short ID.
type NotFoundError struct {
	Kind    string
	ShortID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %ss found matching '%s'", e.Kind, e.ShortID)
}

// AmbiguousError indicates multiple ids matched the short ID.
type AmbiguousError struct {
	Kind    string
	ShortID string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous short ID '%s' matches %d %ss", e.ShortID, len(e.Matches), e.Kind)
}

// FormatAmbiguousError creates a user-friendly error message for ambiguous short IDs.
// Lists all matching ids (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ambiguous short ID '%s' matches %d %ss:\n", err.ShortID, len(err.Matches), err.Kind)

	displayCount := min(len(err.Matches), 10)
	for _, id := range err.Matches[:displayCount] {
		fmt.Fprintf(&b, "  %s\n", id)
	}

	if len(err.Matches) > 10 {
		fmt.Fprintf(&b, "  ...and %d more\n", len(err.Matches)-10)
	}

	fmt.Fprintf(&b, "\nUse a longer prefix to uniquely identify the %s.", err.Kind)
	return b.String()
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	var target *AmbiguousError
	return errors.As(err, &target)
}
