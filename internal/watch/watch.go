// Package watch streams board state changes published by the redis backend.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dyluth/taskboard/pkg/taskboard"
)

// OutputFormat selects how events are written.
type OutputFormat string

const (
	// OutputFormatDefault writes one human-readable line per event, followed
	// by the re-rendered board for app state changes
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSON writes each event as a line of JSON
	OutputFormatJSON OutputFormat = "json"
)

// RenderFunc redraws the board after the app state changed.
type RenderFunc func(ctx context.Context, w io.Writer) error

// StreamStateEvents writes state events until ctx is cancelled or the
// subscription ends. Returns nil on cancellation.
func StreamStateEvents(ctx context.Context, subscriber taskboard.StateSubscriber, format OutputFormat, w io.Writer, render RenderFunc) error {
	if format != OutputFormatDefault && format != OutputFormatJSON {
		return fmt.Errorf("unknown output format: %s", format)
	}

	sub, err := subscriber.SubscribeStateEvents(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-sub.Errors():
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "⚠️  %v\n", err)

		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if err := writeEvent(ctx, w, event, format, render); err != nil {
				return err
			}
		}
	}
}

func writeEvent(ctx context.Context, w io.Writer, event *taskboard.StateEvent, format OutputFormat, render RenderFunc) error {
	if format == OutputFormatJSON {
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}

	fmt.Fprintln(w, FormatEvent(event))

	if event.Key == taskboard.AppStateKey && !event.Removed && render != nil {
		if err := render(ctx, w); err != nil {
			fmt.Fprintf(w, "⚠️  failed to render board: %v\n", err)
		}
	}
	return nil
}

// FormatEvent renders one event as a single human-readable line.
func FormatEvent(event *taskboard.StateEvent) string {
	stamp := time.UnixMilli(event.AtMs).Format("15:04:05")

	switch {
	case event.Key == taskboard.SessionKey && event.Removed:
		return fmt.Sprintf("[%s] 🔒 Logged out", stamp)
	case event.Key == taskboard.SessionKey:
		return fmt.Sprintf("[%s] 🔑 Session updated", stamp)
	case event.Key == taskboard.AppStateKey && event.Removed:
		return fmt.Sprintf("[%s] 🗑️  Board cleared", stamp)
	case event.Key == taskboard.AppStateKey:
		return fmt.Sprintf("[%s] ✏️  Board updated", stamp)
	case event.Removed:
		return fmt.Sprintf("[%s] removed %s", stamp, event.Key)
	default:
		return fmt.Sprintf("[%s] wrote %s", stamp, event.Key)
	}
}
