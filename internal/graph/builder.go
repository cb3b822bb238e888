// Package graph finalizes a generation batch into persistable tasks: it
// assigns stable IDs, resolves title-based dependency references into
// ID-based edges, and rejects self-references, dangling references, and
// cycles. Dropped edges are reported as warnings, never as failures.
package graph

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/josephgoksu/RoadWing/internal/roster"
	"github.com/josephgoksu/RoadWing/models"
	"github.com/josephgoksu/RoadWing/types"
)

// BuildBatch converts resolved proposals into finalized tasks in two phases.
//
// Phase 1 assigns a UUID to every proposal independent of dependency
// relationships and builds a batch-local title→id map. Titles are assumed
// batch-locally unique; when two proposals share a title, references resolve
// to the first occurrence (a known limitation, recorded as a warning).
//
// Phase 2 resolves depends_on_title through the map. Titles not found in the
// batch (for example references to pre-existing tasks) are dropped with a
// warning. Self-references are checked explicitly, then a bounded chain walk
// rejects any edge that closes a cycle.
//
// Every returned task has DependsOn either nil or a valid, acyclic, in-batch
// task ID.
func BuildBatch(roadmapID string, resolved []roster.Resolved, now time.Time) ([]models.Task, []types.Warning) {
	var warnings []types.Warning

	// Phase 1: stable ids before any edge exists.
	tasks := make([]models.Task, len(resolved))
	titleToID := make(map[string]string, len(resolved))
	for i, r := range resolved {
		id := uuid.NewString()
		if _, dup := titleToID[r.Title]; dup {
			warnings = append(warnings, types.Warning{
				Kind:      types.WarnDuplicateTitle,
				TaskTitle: r.Title,
				Detail:    "dependency references resolve to the first occurrence",
			})
		} else {
			titleToID[r.Title] = id
		}

		gen := now
		tasks[i] = models.Task{
			ID:            id,
			RoadmapID:     roadmapID,
			Title:         r.Title,
			Description:   r.Description,
			Status:        models.StatusTodo,
			Priority:      r.Priority,
			EstimateHours: r.EstimateHours,
			AssigneeID:    r.AssigneeID,
			OrderIndex:    r.OrderIndex,
			AIGenerated:   true,
			GeneratedAt:   &gen,
			CreatedAt:     now,
		}
	}

	// Phase 2: resolve title references into edges.
	for i, r := range resolved {
		if r.DependsOnTitle == "" {
			continue
		}
		depID, ok := titleToID[r.DependsOnTitle]
		if !ok {
			warnings = append(warnings, types.Warning{
				Kind:      types.WarnDanglingDependency,
				TaskTitle: r.Title,
				Detail:    fmt.Sprintf("no task titled %q in this batch", r.DependsOnTitle),
			})
			continue
		}
		// Explicit self-reference check, independent of the cycle walk.
		if depID == tasks[i].ID {
			warnings = append(warnings, types.Warning{
				Kind:      types.WarnSelfDependency,
				TaskTitle: r.Title,
			})
			continue
		}
		tasks[i].DependsOn = &depID
	}

	// Validation pass: reject edges that close a cycle. Runs after all edges
	// are tentatively assigned, never optimistically per edge.
	warnings = append(warnings, breakCycles(tasks)...)

	return tasks, warnings
}

// breakCycles walks each task's dependency chain up to a bound equal to the
// batch size. If a task is revisited before reaching a nil terminator, the
// walked task's own edge is dropped, which breaks the cycle while keeping
// every task.
func breakCycles(tasks []models.Task) []types.Warning {
	byID := make(map[string]int, len(tasks))
	for i, t := range tasks {
		byID[t.ID] = i
	}

	var warnings []types.Warning
	for i := range tasks {
		if tasks[i].DependsOn == nil {
			continue
		}
		seen := map[string]bool{tasks[i].ID: true}
		cur := i
		cyclic := false
		for steps := 0; steps < len(tasks); steps++ {
			dep := tasks[cur].DependsOn
			if dep == nil {
				break
			}
			if seen[*dep] {
				cyclic = true
				break
			}
			seen[*dep] = true
			next, ok := byID[*dep]
			if !ok {
				// Edge points outside the batch; phase 2 should have dropped
				// it already, treat as terminated.
				break
			}
			cur = next
		}
		if cyclic {
			warnings = append(warnings, types.Warning{
				Kind:      types.WarnCyclicDependency,
				TaskTitle: tasks[i].Title,
			})
			tasks[i].DependsOn = nil
		}
	}
	return warnings
}

// VerifyAcyclic checks an already persisted task set: every DependsOn must
// reference a task in the set and no chain may revisit a task. Used as a
// load-time integrity check by the stores.
func VerifyAcyclic(tasks []models.Task) error {
	byID := make(map[string]int, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return fmt.Errorf("task %q has empty ID", t.Title)
		}
		byID[t.ID] = i
	}

	for i := range tasks {
		seen := map[string]bool{tasks[i].ID: true}
		cur := i
		for tasks[cur].DependsOn != nil {
			dep := *tasks[cur].DependsOn
			next, ok := byID[dep]
			if !ok {
				return fmt.Errorf("task %q depends on unknown task %s", tasks[cur].Title, dep)
			}
			if seen[dep] {
				return fmt.Errorf("dependency cycle involving task %q", tasks[i].Title)
			}
			seen[dep] = true
			cur = next
		}
	}
	return nil
}
