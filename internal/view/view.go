// Package view derives the displayed task and project lists from store state.
//
// Every function here is pure: inputs are never modified and each call
// recomputes from scratch.
package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dyluth/taskboard/pkg/taskboard"
)

// SortKey selects the ordering applied inside each bucket.
type SortKey string

const (
	SortNone     SortKey = ""
	SortPriority SortKey = "priority"
	SortStatus   SortKey = "status"
)

// Filter names a bucket.
type Filter string

// FilterAll selects every task.
const FilterAll Filter = "ALL"

// Filters lists every bucket name in display order.
var Filters = []Filter{
	FilterAll,
	Filter(taskboard.PriorityHigh),
	Filter(taskboard.PriorityMedium),
	Filter(taskboard.PriorityLow),
	Filter(taskboard.StatusPending),
	Filter(taskboard.StatusInProgress),
	Filter(taskboard.StatusCompleted),
}

// Buckets maps a filter to its ordered tasks. Every known filter has an
// entry, possibly empty.
type Buckets map[Filter][]taskboard.Task

// ParseSortKey accepts "", "none", "priority" or "status".
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case string(SortPriority):
		return SortPriority, nil
	case string(SortStatus):
		return SortStatus, nil
	default:
		return SortNone, fmt.Errorf("unknown sort key %q (expected priority or status)", s)
	}
}

// ParseFilter accepts any bucket name. An empty string means ALL.
func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range Filters {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// Group partitions tasks into buckets, sorts each bucket by sortKey and then
// moves pinnedID to the front of every bucket holding it.
func Group(tasks []taskboard.Task, sortKey SortKey, pinnedID string) Buckets {
	buckets := make(Buckets, len(Filters))
	for _, f := range Filters {
		buckets[f] = []taskboard.Task{}
	}

	for _, t := range tasks {
		buckets[FilterAll] = append(buckets[FilterAll], t)
		if _, ok := buckets[Filter(t.Priority)]; ok {
			buckets[Filter(t.Priority)] = append(buckets[Filter(t.Priority)], t)
		}
		if _, ok := buckets[Filter(t.Status)]; ok {
			buckets[Filter(t.Status)] = append(buckets[Filter(t.Status)], t)
		}
	}

	for f, bucket := range buckets {
		sortTasks(bucket, sortKey)
		buckets[f] = pin(bucket, pinnedID, func(t taskboard.Task) string { return t.ID })
	}

	return buckets
}

// Display returns the bucket selected by filter. Unknown filters give an
// empty list.
func Display(tasks []taskboard.Task, sortKey SortKey, filter Filter, pinnedID string) []taskboard.Task {
	if filter == "" {
		filter = FilterAll
	}
	if bucket, ok := Group(tasks, sortKey, pinnedID)[filter]; ok {
		return bucket
	}
	return []taskboard.Task{}
}

// PinProjects returns a copy of projects with pinnedID moved to the front.
func PinProjects(projects []taskboard.Project, pinnedID string) []taskboard.Project {
	out := slices.Clone(projects)
	return pin(out, pinnedID, func(p taskboard.Project) string { return p.ID })
}

func sortTasks(tasks []taskboard.Task, key SortKey) {
	switch key {
	case SortPriority:
		slices.SortStableFunc(tasks, func(a, b taskboard.Task) int {
			if c := a.Priority.Rank() - b.Priority.Rank(); c != 0 {
				return c
			}
			return a.Status.Rank() - b.Status.Rank()
		})
	case SortStatus:
		slices.SortStableFunc(tasks, func(a, b taskboard.Task) int {
			if c := a.Status.Rank() - b.Status.Rank(); c != 0 {
				return c
			}
			return a.Priority.Rank() - b.Priority.Rank()
		})
	}
}

// pin relocates the item with pinnedID to index 0, keeping the relative
// order of everything else. It works in place on items.
func pin[T any](items []T, pinnedID string, id func(T) string) []T {
	if pinnedID == "" {
		return items
	}
	for i := 1; i < len(items); i++ {
		if id(items[i]) == pinnedID {
			pinned := items[i]
			copy(items[1:i+1], items[:i])
			items[0] = pinned
			break
		}
	}
	return items
}
