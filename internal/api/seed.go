package api

import "github.com/dyluth/taskboard/pkg/taskboard"

// SeedProjects returns the starter board shown when nothing is persisted:
// two projects with two tasks each. Every call returns a fresh copy.
func SeedProjects() []taskboard.Project {
	return []taskboard.Project{
		{
			ID:      "0",
			Title:   "Project 1",
			DueDate: "2025-06-08",
			Tasks: []taskboard.Task{
				{
					ID:          "0",
					Title:       "Task 1",
					Description: "Lorem ipsum dolor sit amet, consectetur adipiscing elit",
					Priority:    taskboard.PriorityHigh,
					Status:      taskboard.StatusCompleted,
					DueDate:     "2025-06-12",
				},
				{
					ID:          "1",
					Title:       "Task 2",
					Description: "Lorem Ipsum neque porro quisquam est qui dolorem ipsum quia dolor sit amet, consectetur, adipisci velit...",
					Priority:    taskboard.PriorityMedium,
					Status:      taskboard.StatusInProgress,
					DueDate:     "2025-06-11",
				},
			},
		},
		{
			ID:      "1",
			Title:   "Project 2",
			DueDate: "2025-06-07",
			Tasks: []taskboard.Task{
				{
					ID:          "0",
					Title:       "Task 3",
					Description: "Lorem ipsum there is no one who loves pain itself, who seeks after it and wants to have it, simply because it is pain...",
					Priority:    taskboard.PriorityLow,
					Status:      taskboard.StatusCompleted,
					DueDate:     "2025-06-10",
				},
				{
					ID:          "1",
					Title:       "Task 4",
					Description: "Lorem ipsum dolor sit amet, consectetur adipiscing",
					Priority:    taskboard.PriorityLow,
					Status:      taskboard.StatusPending,
					DueDate:     "2025-06-09",
				},
			},
		},
	}
}
