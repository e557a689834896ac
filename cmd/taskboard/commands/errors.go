package commands

import (
	"errors"
	"fmt"

	"github.com/dyluth/taskboard/internal/auth"
	"github.com/dyluth/taskboard/internal/board"
	"github.com/dyluth/taskboard/internal/printer"
	"github.com/dyluth/taskboard/internal/projects"
	"github.com/dyluth/taskboard/internal/resolver"
)

// boardError turns a board command error into a printed, user-facing error.
func boardError(action string, err error) error {
	switch {
	case errors.Is(err, board.ErrNotAuthenticated):
		return printer.Error(
			"not logged in",
			"This command needs a logged-in user.",
			[]string{
				"Log in:\n     taskboard login <username> <password>",
				"Create an account first:\n     taskboard register <username> <password>",
			},
		)

	case errors.Is(err, board.ErrPasswordTooShort):
		return printer.Error(
			"password too short",
			fmt.Sprintf("Password must contain at least %d characters.", board.MinPasswordLength),
			nil,
		)

	case errors.Is(err, auth.ErrUserExists):
		return printer.Error(
			"user already exists",
			"User with such login already exists.",
			[]string{"Log in instead:\n  taskboard login <username> <password>"},
		)

	case errors.Is(err, board.ErrUnknownUser):
		return printer.Error(
			"user does not exist",
			"No user is registered with that username.",
			[]string{"Register first:\n  taskboard register <username> <password>"},
		)

	case errors.Is(err, board.ErrWrongPassword):
		return printer.Error("wrong password", "", nil)

	case errors.Is(err, projects.ErrEmptyTitle):
		return printer.Error(
			"project name cannot be empty",
			"",
			[]string{"Pass a title:\n  --title \"My project\""},
		)

	default:
		return printer.Error(
			fmt.Sprintf("failed to %s", action),
			fmt.Sprintf("Error: %v", err),
			nil,
		)
	}
}

// resolveError prints a short-ID resolution failure.
func resolveError(kind string, err error) error {
	var ambiguous *resolver.AmbiguousError
	if errors.As(err, &ambiguous) {
		return printer.Error(
			fmt.Sprintf("ambiguous %s ID", kind),
			resolver.FormatAmbiguousError(ambiguous),
			nil,
		)
	}

	if resolver.IsNotFoundError(err) {
		return printer.Error(
			fmt.Sprintf("%s not found", kind),
			err.Error(),
			[]string{fmt.Sprintf("List available IDs:\n  taskboard %s list", kind)},
		)
	}

	return printer.Error(fmt.Sprintf("invalid %s ID", kind), err.Error(), nil)
}
