package timespec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dyluth/taskboard/pkg/taskboard"
)

// ParseDue parses a due date specification into a YYYY-MM-DD date.
// Supports:
//   - Calendar dates: "2025-07-01"
//   - RFC3339 timestamps: "2025-07-01T13:00:00Z"
//   - Keywords: "today", "tomorrow"
//   - Day offsets: "3d", "-1d"
//   - Go duration format: "72h", "1h30m"
//
// Offsets and durations are relative to now (added to it).
func ParseDue(spec string, now time.Time) (string, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", fmt.Errorf("empty date specification")
	}

	if t, err := time.Parse(taskboard.DateLayout, spec); err == nil {
		return t.Format(taskboard.DateLayout), nil
	}

	if t, err := time.Parse(time.RFC3339, spec); err == nil {
		return t.Format(taskboard.DateLayout), nil
	}

	switch strings.ToLower(spec) {
	case "today":
		return now.Format(taskboard.DateLayout), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(taskboard.DateLayout), nil
	}

	if days, ok := strings.CutSuffix(spec, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return now.AddDate(0, 0, n).Format(taskboard.DateLayout), nil
		}
	}

	if d, err := time.ParseDuration(spec); err == nil {
		return now.Add(d).Format(taskboard.DateLayout), nil
	}

	return "", fmt.Errorf("invalid date specification: %s (use a date like '2025-07-01', 'today', or an offset like '3d')", spec)
}
