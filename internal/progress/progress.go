// Package progress rolls task status up into per-task completion and
// project-level statistics. Statistics are always recomputed from the full
// current task collection, never patched incrementally, so they cannot drift
// from the authoritative task set.
package progress

import "github.com/josephgoksu/RoadWing/models"

// ProjectStats are derived, not persisted. Recompute after any status write.
type ProjectStats struct {
	TotalTasks          int     `json:"totalTasks"`
	CompletedTasks      int     `json:"completedTasks"`
	InProgressTasks     int     `json:"inProgressTasks"`
	TotalEstimatedHours float64 `json:"totalEstimatedHours"`
	CompletedHours      float64 `json:"completedHours"`
}

// Percent maps a status to a completion percentage: completed tasks are
// 100%, in-progress 50%, everything else 0. Blocked counts as 0 for
// progress even though it has its own Kanban column.
func Percent(s models.TaskStatus) int {
	switch s {
	case models.StatusCompleted:
		return 100
	case models.StatusInProgress:
		return 50
	default:
		return 0
	}
}

// Compute recomputes project statistics from the full task collection. Tasks
// without an estimate contribute zero hours.
func Compute(tasks []models.Task) ProjectStats {
	var stats ProjectStats
	stats.TotalTasks = len(tasks)
	for _, t := range tasks {
		hours := 0.0
		if t.EstimateHours != nil {
			hours = *t.EstimateHours
		}
		stats.TotalEstimatedHours += hours

		switch t.Status {
		case models.StatusCompleted:
			stats.CompletedTasks++
			stats.CompletedHours += hours
		case models.StatusInProgress:
			stats.InProgressTasks++
		}
	}
	return stats
}

// CompletionRatio is completed tasks over total tasks in [0,1]; zero for an
// empty roadmap.
func (s ProjectStats) CompletionRatio() float64 {
	if s.TotalTasks == 0 {
		return 0
	}
	return float64(s.CompletedTasks) / float64(s.TotalTasks)
}
