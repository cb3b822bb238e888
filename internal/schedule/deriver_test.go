package schedule

import (
	"reflect"
	"testing"

	"github.com/josephgoksu/RoadWing/models"
)

func est(h float64) *float64 { return &h }

func TestDerive_Packing(t *testing.T) {
	// Estimates 40, 80, 20 at 40 hours per period: durations 1, 2, 1.
	tasks := []models.Task{
		{ID: "t0", OrderIndex: 0, EstimateHours: est(40)},
		{ID: "t1", OrderIndex: 1, EstimateHours: est(80)},
		{ID: "t2", OrderIndex: 2, EstimateHours: est(20)},
	}

	tl := Derive(tasks, DefaultConfig())

	want := []Slot{
		{TaskID: "t0", StartPeriod: 0, EndPeriod: 0, DurationPeriods: 1},
		{TaskID: "t1", StartPeriod: 1, EndPeriod: 2, DurationPeriods: 2},
		{TaskID: "t2", StartPeriod: 3, EndPeriod: 3, DurationPeriods: 1},
	}
	if !reflect.DeepEqual(tl.Slots, want) {
		t.Errorf("slots = %+v, want %+v", tl.Slots, want)
	}
	if tl.TotalPeriods != 12 {
		t.Errorf("TotalPeriods = %d, want max(12, 4) = 12", tl.TotalPeriods)
	}
}

func TestDerive_HorizonExceededBySum(t *testing.T) {
	tasks := []models.Task{
		{ID: "big", OrderIndex: 0, EstimateHours: est(600)}, // 15 periods
	}
	tl := Derive(tasks, DefaultConfig())
	if tl.TotalPeriods != 15 {
		t.Errorf("TotalPeriods = %d, want 15", tl.TotalPeriods)
	}
}

func TestDerive_OrderIndexNotInputOrder(t *testing.T) {
	tasks := []models.Task{
		{ID: "second", OrderIndex: 5, EstimateHours: est(40)},
		{ID: "first", OrderIndex: 1, EstimateHours: est(40)},
	}
	tl := Derive(tasks, DefaultConfig())
	if tl.Slots[0].TaskID != "first" || tl.Slots[1].TaskID != "second" {
		t.Errorf("slots not in orderIndex order: %+v", tl.Slots)
	}
	if tl.Slots[1].StartPeriod != 1 {
		t.Errorf("second task start = %d, want 1", tl.Slots[1].StartPeriod)
	}
}

func TestDerive_TiesBrokenByInsertionOrder(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", OrderIndex: 0},
		{ID: "b", OrderIndex: 0},
		{ID: "c", OrderIndex: 0},
	}
	tl := Derive(tasks, DefaultConfig())
	for i, id := range []string{"a", "b", "c"} {
		if tl.Slots[i].TaskID != id {
			t.Fatalf("slot %d = %q, want %q (insertion order must break ties)", i, tl.Slots[i].TaskID, id)
		}
	}
}

func TestDerive_MissingEstimateDefaults(t *testing.T) {
	// Default 8 hours -> one period.
	tasks := []models.Task{{ID: "t", OrderIndex: 0}}
	tl := Derive(tasks, DefaultConfig())
	if tl.Slots[0].DurationPeriods != 1 {
		t.Errorf("duration = %d, want 1 for default estimate", tl.Slots[0].DurationPeriods)
	}
}

func TestDerive_ZeroEstimateMinimumOnePeriod(t *testing.T) {
	tasks := []models.Task{{ID: "t", OrderIndex: 0, EstimateHours: est(0)}}
	tl := Derive(tasks, DefaultConfig())
	if tl.Slots[0].DurationPeriods != 1 {
		t.Errorf("duration = %d, want minimum 1", tl.Slots[0].DurationPeriods)
	}
}

func TestDerive_ProgressFromStatus(t *testing.T) {
	tasks := []models.Task{
		{ID: "done", OrderIndex: 0, Status: models.StatusCompleted},
		{ID: "wip", OrderIndex: 1, Status: models.StatusInProgress},
		{ID: "todo", OrderIndex: 2, Status: models.StatusTodo},
	}
	tl := Derive(tasks, DefaultConfig())
	if tl.Slots[0].ProgressPercent != 100 || tl.Slots[1].ProgressPercent != 50 || tl.Slots[2].ProgressPercent != 0 {
		t.Errorf("progress percents = %+v", tl.Slots)
	}
}

func TestDerive_Deterministic(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", OrderIndex: 2, EstimateHours: est(30)},
		{ID: "b", OrderIndex: 0, EstimateHours: est(45)},
		{ID: "c", OrderIndex: 1},
	}
	first := Derive(tasks, DefaultConfig())
	second := Derive(tasks, DefaultConfig())
	if !reflect.DeepEqual(first, second) {
		t.Error("Derive must be deterministic for an unchanged task set")
	}
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", OrderIndex: 1},
		{ID: "b", OrderIndex: 0},
	}
	Derive(tasks, DefaultConfig())
	if tasks[0].ID != "a" || tasks[1].ID != "b" {
		t.Error("Derive must not reorder the caller's slice")
	}
}

func TestDerive_IgnoresDependencyOrder(t *testing.T) {
	// "impl" is declared to depend on "design" but orderIndex schedules it
	// first. The deriver must honor orderIndex, not the graph.
	designID := "design"
	tasks := []models.Task{
		{ID: "impl", OrderIndex: 0, DependsOn: &designID, EstimateHours: est(40)},
		{ID: "design", OrderIndex: 1, EstimateHours: est(40)},
	}
	tl := Derive(tasks, DefaultConfig())
	if tl.Slots[0].TaskID != "impl" {
		t.Error("scheduling must follow orderIndex even against dependency direction")
	}
}
