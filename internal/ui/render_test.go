package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/josephgoksu/RoadWing/internal/progress"
	"github.com/josephgoksu/RoadWing/internal/schedule"
	"github.com/josephgoksu/RoadWing/models"
)

func sampleTasks() []models.Task {
	est := 40.0
	assignee := "0d8f6a2e-5c1b-4f3a-9e7d-2b4c6a8e0f13"
	return []models.Task{
		{
			ID:        "aaaa1111-0000-4000-8000-000000000001",
			RoadmapID: "bbbb2222-0000-4000-8000-000000000001",
			Title:     "Design schema",
			Status:    models.StatusCompleted,
			Priority:  models.PriorityHigh,

			EstimateHours: &est,
			AssigneeID:    &assignee,
			OrderIndex:    1,
			CreatedAt:     time.Now(),
		},
		{
			ID:         "aaaa1111-0000-4000-8000-000000000002",
			RoadmapID:  "bbbb2222-0000-4000-8000-000000000001",
			Title:      "Build API layer",
			Status:     models.StatusInProgress,
			Priority:   models.PriorityMedium,
			OrderIndex: 2,
			CreatedAt:  time.Now(),
		},
	}
}

func TestRenderBoard(t *testing.T) {
	tasks := sampleTasks()
	members := []models.Member{
		{
			UserID:    "0d8f6a2e-5c1b-4f3a-9e7d-2b4c6a8e0f13",
			RoadmapID: tasks[0].RoadmapID,
			Name:      "Alice",
			Email:     "alice@example.com",
		},
	}

	out := RenderBoard(tasks, members)

	for _, want := range []string{"To Do", "In Progress", "Completed", "Blocked", "Design schema", "Alice"} {
		if !strings.Contains(out, want) {
			t.Errorf("board output missing %q", want)
		}
	}
}

func TestRenderBoardEmptyColumns(t *testing.T) {
	out := RenderBoard(nil, nil)
	if !strings.Contains(out, "empty") {
		t.Error("empty columns should render a placeholder")
	}
}

func TestRenderTimeline(t *testing.T) {
	tasks := sampleTasks()
	tl := schedule.Derive(tasks, schedule.DefaultConfig())

	out := RenderTimeline(tl, tasks)

	if !strings.Contains(out, "Design schema") {
		t.Error("timeline should list task titles")
	}
	if !strings.Contains(out, "Horizon: 12 periods") {
		t.Errorf("timeline should report the horizon, got:\n%s", out)
	}
}

func TestRenderTimelineEmpty(t *testing.T) {
	out := RenderTimeline(schedule.Timeline{}, nil)
	if !strings.Contains(out, "No tasks scheduled") {
		t.Error("empty timeline should render a placeholder")
	}
}

func TestRenderStats(t *testing.T) {
	stats := progress.Compute(sampleTasks())
	out := RenderStats(stats)

	for _, want := range []string{"Tasks", "Completed", "In Progress", "50%"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q", want)
		}
	}
}
