package taskboard

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Serialization helpers for the persisted snapshot.
//
// Everything is stored as a single JSON document per key, in the same shape
// the board keeps in memory. Nil slices are normalized to empty ones before
// encoding so readers always see [] rather than null.

// EncodeAppState serializes the combined snapshot.
func EncodeAppState(state *AppState) (string, error) {
	normalized := *state
	normalized.normalize()

	data, err := json.Marshal(&normalized)
	if err != nil {
		return "", fmt.Errorf("failed to marshal app state: %w", err)
	}
	return string(data), nil
}

// DecodeAppState parses a snapshot previously written by EncodeAppState.
// Returns an error if the value is not a JSON object; callers treat that as
// "no prior state".
func DecodeAppState(raw string) (*AppState, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty app state")
	}

	var state AppState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal app state: %w", err)
	}

	state.normalize()
	return &state, nil
}

// EncodeUser serializes a single user for the session key.
func EncodeUser(u *User) (string, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("failed to marshal user: %w", err)
	}
	return string(data), nil
}

// DecodeUser parses a session record. JSON null and records without a
// username are rejected as malformed.
func DecodeUser(raw string) (*User, error) {
	var user *User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	if user == nil || user.Username == "" {
		return nil, fmt.Errorf("session record has no user")
	}

	return user, nil
}

func (s *AppState) normalize() {
	s.Projects.normalize()
	if s.Auth.Users == nil {
		s.Auth.Users = []User{}
	}
}

func (s *ProjectsState) normalize() {
	// Copy before patching so the caller's slice is left alone
	items := make([]Project, len(s.Items))
	copy(items, s.Items)
	for i := range items {
		if items[i].Tasks == nil {
			items[i].Tasks = []Task{}
		}
	}
	s.Items = items
}
