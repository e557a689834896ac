package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	testCases := []struct {
		name      string
		inputName string
		wantErr   bool
		errMsg    string
	}{
		{
			name:      "valid simple name",
			inputName: "prod",
			wantErr:   false,
		},
		{
			name:      "valid name with hyphens",
			inputName: "team-board-1",
			wantErr:   false,
		},
		{
			name:      "single character",
			inputName: "a",
			wantErr:   false,
		},
		{
			name:      "empty name",
			inputName: "",
			wantErr:   true,
			errMsg:    "cannot be empty",
		},
		{
			name:      "name with uppercase",
			inputName: "Prod",
			wantErr:   true,
			errMsg:    "must be lowercase",
		},
		{
			name:      "name starting with hyphen",
			inputName: "-prod",
			wantErr:   true,
			errMsg:    "not at start/end",
		},
		{
			name:      "name ending with hyphen",
			inputName: "prod-",
			wantErr:   true,
			errMsg:    "not at start/end",
		},
		{
			name:      "name with colon",
			inputName: "prod:1",
			wantErr:   true,
			errMsg:    "must be lowercase alphanumeric",
		},
		{
			name:      "name too long",
			inputName: strings.Repeat("a", MaxNameLength+1),
			wantErr:   true,
			errMsg:    "too long",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateName(tc.inputName)
			if tc.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
