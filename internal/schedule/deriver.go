// Package schedule derives a deterministic timeline from a roadmap's task
// set. Derivation is a pure function of the tasks and the period
// configuration: re-running it on an unchanged task set yields identical
// output, so it is recomputed on every read unless a Cache is used.
package schedule

import (
	"math"
	"sort"

	"github.com/josephgoksu/RoadWing/internal/progress"
	"github.com/josephgoksu/RoadWing/models"
)

// Config holds the constants the deriver works in.
type Config struct {
	// HoursPerPeriod is the length of one period in work hours (one
	// work-week by default).
	HoursPerPeriod float64
	// MinHorizonPeriods is the minimum timeline length, so short projects
	// still render a readable grid.
	MinHorizonPeriods int
	// DefaultEstimateHours substitutes for a missing estimate.
	DefaultEstimateHours float64
}

// DefaultConfig returns the standard scheduling constants.
func DefaultConfig() Config {
	return Config{
		HoursPerPeriod:       40,
		MinHorizonPeriods:    12,
		DefaultEstimateHours: 8,
	}
}

// Slot is one task's position on the timeline. Periods are zero-based and
// inclusive: a one-period task has StartPeriod == EndPeriod.
type Slot struct {
	TaskID          string `json:"taskId"`
	StartPeriod     int    `json:"startPeriod"`
	EndPeriod       int    `json:"endPeriod"`
	DurationPeriods int    `json:"durationPeriods"`
	ProgressPercent int    `json:"progressPercent"`
}

// Timeline is the derived schedule for one roadmap. Slots appear in
// scheduling order.
type Timeline struct {
	Slots        []Slot `json:"slots"`
	TotalPeriods int    `json:"totalPeriods"`
}

// Derive computes the timeline for the given tasks.
//
// Tasks are processed strictly in ascending OrderIndex, ties broken by their
// position in the input slice (insertion order). Dependency edges are
// intentionally not consulted: ordering is declarative via OrderIndex, and
// the graph exists for display and traceability, not critical-path
// computation. A task can therefore be scheduled before its declared
// dependency finishes when OrderIndex says so.
//
// Tasks pack back-to-back with no overlap and no gaps: each task starts
// where the previous one ended.
func Derive(tasks []models.Task, cfg Config) Timeline {
	ordered := make([]models.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	slots := make([]Slot, 0, len(ordered))
	current := 0
	for _, t := range ordered {
		d := durationPeriods(t.EstimateHours, cfg)
		slots = append(slots, Slot{
			TaskID:          t.ID,
			StartPeriod:     current,
			EndPeriod:       current + d - 1,
			DurationPeriods: d,
			ProgressPercent: progress.Percent(t.Status),
		})
		current += d
	}

	total := current
	if total < cfg.MinHorizonPeriods {
		total = cfg.MinHorizonPeriods
	}

	return Timeline{Slots: slots, TotalPeriods: total}
}

// durationPeriods is ceil(estimate / hoursPerPeriod) with a minimum of one
// period. A missing estimate uses the configured default.
func durationPeriods(estimate *float64, cfg Config) int {
	hours := cfg.DefaultEstimateHours
	if estimate != nil {
		hours = *estimate
	}
	d := int(math.Ceil(hours / cfg.HoursPerPeriod))
	if d < 1 {
		d = 1
	}
	return d
}
