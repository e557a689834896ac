package draft

import (
	"testing"

	"github.com/dyluth/taskboard/pkg/taskboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	task := NewTask("2025-07-01")
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "", task.Title)
	assert.Equal(t, taskboard.PriorityMedium, task.Priority)
	assert.Equal(t, taskboard.StatusPending, task.Status)
	assert.Equal(t, "2025-07-01", task.DueDate)
	assert.NoError(t, task.Validate())
}

func TestApply(t *testing.T) {
	base := NewTask("2025-07-01")

	got, err := Apply(base,
		SetTitle("Write report"),
		SetDescription("quarterly"),
		SetPriority(taskboard.PriorityHigh),
		SetStatus(taskboard.StatusInProgress),
		SetDueDate("2025-08-15"),
	)
	require.NoError(t, err)

	assert.Equal(t, base.ID, got.ID)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, "quarterly", got.Description)
	assert.Equal(t, taskboard.PriorityHigh, got.Priority)
	assert.Equal(t, taskboard.StatusInProgress, got.Status)
	assert.Equal(t, "2025-08-15", got.DueDate)

	// Input is a value; the original is untouched
	assert.Equal(t, "", base.Title)
}

func TestApplyRejects(t *testing.T) {
	base := NewTask("2025-07-01")

	tests := []struct {
		name  string
		edit  Edit
		field string
	}{
		{"unknown priority", SetPriority("urgent"), "priority"},
		{"unknown status", SetStatus("done"), "status"},
		{"bad date", SetDueDate("07/01/2025"), "dueDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(base, SetTitle("changed"), tt.edit)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid "+tt.field)
			assert.Equal(t, base, got, "no partial edits")
		})
	}
}

func TestApplyLastEditWins(t *testing.T) {
	got, err := Apply(NewTask("2025-07-01"), SetTitle("a"), SetTitle("b"))
	require.NoError(t, err)
	assert.Equal(t, "b", got.Title)
}
