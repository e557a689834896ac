package taskboard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 0, PriorityHigh.Rank())
	assert.Equal(t, 1, PriorityMedium.Rank())
	assert.Equal(t, 2, PriorityLow.Rank())
	assert.Equal(t, 3, Priority("urgent").Rank())
}

func TestStatusRank(t *testing.T) {
	assert.Equal(t, 0, StatusPending.Rank())
	assert.Equal(t, 1, StatusInProgress.Rank())
	assert.Equal(t, 2, StatusCompleted.Rank())
	assert.Equal(t, 3, Status("blocked").Rank())
}

func TestEnumValidate(t *testing.T) {
	for _, p := range Priorities {
		assert.NoError(t, p.Validate())
	}
	for _, s := range Statuses {
		assert.NoError(t, s.Validate())
	}

	err := Priority("urgent").Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown priority")

	err = Status("").Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown status")
}

func TestTaskValidate(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		task := Task{ID: NewID(), Priority: PriorityLow, Status: StatusPending}
		assert.NoError(t, task.Validate())
	})

	t.Run("missing id", func(t *testing.T) {
		task := Task{Priority: PriorityLow, Status: StatusPending}
		err := task.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "task ID cannot be empty")
	})

	t.Run("bad priority", func(t *testing.T) {
		task := Task{ID: "1", Priority: "urgent", Status: StatusPending}
		err := task.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid priority")
	})

	t.Run("bad status", func(t *testing.T) {
		task := Task{ID: "1", Priority: PriorityHigh, Status: "done"}
		err := task.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid status")
	})
}

func TestProjectClone(t *testing.T) {
	original := Project{
		ID:    "p1",
		Title: "Groceries",
		Tasks: []Task{{ID: "t1", Title: "Milk"}},
	}

	clone := original.Clone()
	clone.Tasks[0].Title = "Bread"
	clone.Title = "Errands"

	assert.Equal(t, "Milk", original.Tasks[0].Title)
	assert.Equal(t, "Groceries", original.Title)
}

func TestCloneProjects(t *testing.T) {
	assert.Nil(t, CloneProjects(nil))

	projects := []Project{{ID: "1", Tasks: []Task{{ID: "a"}}}, {ID: "2"}}
	clone := CloneProjects(projects)
	require.Len(t, clone, 2)

	clone[0].Tasks = append(clone[0].Tasks, Task{ID: "b"})
	assert.Len(t, projects[0].Tasks, 1)
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
