package timespec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDue(t *testing.T) {
	now := time.Date(2025, 6, 30, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		spec    string
		want    string
		wantErr bool
	}{
		{name: "calendar date", spec: "2025-07-15", want: "2025-07-15"},
		{name: "rfc3339", spec: "2025-07-15T08:00:00Z", want: "2025-07-15"},
		{name: "today", spec: "today", want: "2025-06-30"},
		{name: "tomorrow crosses month", spec: "Tomorrow", want: "2025-07-01"},
		{name: "day offset", spec: "3d", want: "2025-07-03"},
		{name: "negative day offset", spec: "-1d", want: "2025-06-29"},
		{name: "duration", spec: "72h", want: "2025-07-03"},
		{name: "short duration crosses midnight", spec: "3h", want: "2025-07-01"},
		{name: "surrounding spaces", spec: "  2025-07-15 ", want: "2025-07-15"},
		{name: "empty", spec: "", wantErr: true},
		{name: "garbage", spec: "next week", wantErr: true},
		{name: "bad calendar date", spec: "2025-13-40", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDue(tt.spec, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
