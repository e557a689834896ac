// Package listing renders projects and tasks for the CLI as tables, JSONL or
// pretty JSON.
package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dyluth/taskboard/pkg/taskboard"
)

// OutputFormat specifies how to format list output.
type OutputFormat string

const (
	// OutputFormatDefault uses a table format with truncated fields
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL outputs complete records as line-delimited JSON
	OutputFormatJSONL OutputFormat = "jsonl"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case "", OutputFormatDefault:
		return OutputFormatDefault, nil
	case OutputFormatJSONL:
		return OutputFormatJSONL, nil
	default:
		return "", fmt.Errorf("unknown output format: %s (must be 'default' or 'jsonl')", s)
	}
}

// Projects writes the project list in the requested format. The selected
// project is marked with "*" in table output.
func Projects(w io.Writer, projects []taskboard.Project, selectedID string, format OutputFormat, now time.Time) error {
	switch format {
	case OutputFormatDefault, "":
		FormatProjectTable(w, projects, selectedID, now)
		return nil
	case OutputFormatJSONL:
		return FormatJSONL(w, projects)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// Tasks writes a task list in the requested format.
func Tasks(w io.Writer, project taskboard.Project, tasks []taskboard.Task, format OutputFormat, now time.Time) error {
	switch format {
	case OutputFormatDefault, "":
		FormatTaskTable(w, project, tasks, now)
		return nil
	case OutputFormatJSONL:
		return FormatJSONL(w, tasks)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// FormatProjectTable writes projects as a formatted table.
// Columns: selection marker, ID, TITLE, DUE, TASKS.
// Returns the number of projects formatted.
func FormatProjectTable(w io.Writer, projects []taskboard.Project, selectedID string, now time.Time) int {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects found")
		return 0
	}

	fmt.Fprintf(w, "  %-10s %-30s %-20s %s\n", "ID", "TITLE", "DUE", "TASKS")
	fmt.Fprintf(w, "  %-10s %-30s %-20s %s\n",
		"----------", "------------------------------", "--------------------", "-----")

	for _, p := range projects {
		marker := " "
		if p.ID == selectedID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-10s %-30s %-20s %s\n",
			marker,
			formatID(p.ID),
			formatTitle(p.Title, 30),
			formatDue(p.DueDate, now),
			formatProgress(p.Tasks),
		)
	}

	fmt.Fprintf(w, "\n%d %s found\n", len(projects), plural(len(projects), "project"))
	return len(projects)
}

// FormatTaskTable writes tasks as a formatted table under a project heading.
// Columns: ID, TITLE, PRIORITY, STATUS, DUE, DESCRIPTION (truncated).
// Returns the number of tasks formatted.
func FormatTaskTable(w io.Writer, project taskboard.Project, tasks []taskboard.Task, now time.Time) int {
	fmt.Fprintf(w, "Tasks for project '%s':\n\n", displayTitle(project.Title))

	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return 0
	}

	fmt.Fprintf(w, "%-10s %-24s %-8s %-10s %-20s %s\n",
		"ID", "TITLE", "PRIORITY", "STATUS", "DUE", "DESCRIPTION")
	fmt.Fprintf(w, "%-10s %-24s %-8s %-10s %-20s %s\n",
		"----------", "------------------------", "--------", "----------", "--------------------", "----------------------------------------")

	for _, t := range tasks {
		fmt.Fprintf(w, "%-10s %-24s %-8s %-10s %-20s %s\n",
			formatID(t.ID),
			formatTitle(t.Title, 24),
			t.Priority,
			t.Status,
			formatDue(t.DueDate, now),
			formatDescription(t.Description),
		)
	}

	fmt.Fprintf(w, "\n%d %s found\n", len(tasks), plural(len(tasks), "task"))
	return len(tasks)
}

// FormatJSONL writes records as line-delimited JSON (JSONL), one compact
// object per line, for processing with tools like jq.
func FormatJSONL[T any](w io.Writer, records []T) error {
	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// FormatSingleJSON writes one record as pretty-printed JSON.
func FormatSingleJSON(w io.Writer, record any) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record to JSON: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	fmt.Fprintln(w)
	return nil
}

// formatID truncates an id to its first 8 characters for compact display.
// Seed ids ("0", "1") are shown as is.
func formatID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func displayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func formatTitle(title string, width int) string {
	title = displayTitle(title)
	if len(title) > width {
		return title[:width-3] + "..."
	}
	return title
}

// formatDescription truncates a description to its first non-empty line,
// max 40 characters. Empty descriptions return "-".
func formatDescription(description string) string {
	var firstLine string
	for _, line := range strings.Split(description, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			firstLine = trimmed
			break
		}
	}

	if firstLine == "" {
		return "-"
	}

	if len(firstLine) > 40 {
		return firstLine[:37] + "..."
	}
	return firstLine
}

// formatProgress shows completed/total tasks.
func formatProgress(tasks []taskboard.Task) string {
	done := 0
	for _, t := range tasks {
		if t.Status == taskboard.StatusCompleted {
			done++
		}
	}
	return fmt.Sprintf("%d/%d", done, len(tasks))
}

// formatDue shows the date with a relative hint like "(in 3d)", "(today)" or
// "(2d late)". Unparseable dates are shown as stored.
func formatDue(date string, now time.Time) string {
	if date == "" {
		return "-"
	}

	due, err := time.Parse(taskboard.DateLayout, date)
	if err != nil {
		return date
	}

	today, _ := time.Parse(taskboard.DateLayout, now.Format(taskboard.DateLayout))
	days := int(due.Sub(today).Hours() / 24)

	switch {
	case days == 0:
		return date + " (today)"
	case days > 0:
		return fmt.Sprintf("%s (in %dd)", date, days)
	default:
		return fmt.Sprintf("%s (%dd late)", date, -days)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
