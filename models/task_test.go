package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func validTask() Task {
	return Task{
		ID:        uuid.NewString(),
		RoadmapID: uuid.NewString(),
		Title:     "Design schema",
		Status:    StatusTodo,
		Priority:  PriorityMedium,
		CreatedAt: time.Now(),
	}
}

func TestValidateStruct_ValidTask(t *testing.T) {
	task := validTask()
	if err := ValidateStruct(task); err != nil {
		t.Errorf("expected valid task, got: %v", err)
	}
}

func TestValidateStruct_RejectsEmptyTitle(t *testing.T) {
	task := validTask()
	task.Title = ""
	if err := ValidateStruct(task); err == nil {
		t.Error("expected error for empty title, got nil")
	}
}

func TestValidateStruct_RejectsUnknownStatus(t *testing.T) {
	task := validTask()
	task.Status = "done"
	if err := ValidateStruct(task); err == nil {
		t.Error("expected error for unknown status, got nil")
	}
}

func TestValidateStruct_RejectsNegativeEstimate(t *testing.T) {
	task := validTask()
	est := -1.0
	task.EstimateHours = &est
	if err := ValidateStruct(task); err == nil {
		t.Error("expected error for negative estimate, got nil")
	}
}

func TestNewTask_Defaults(t *testing.T) {
	task := NewTask(uuid.NewString(), uuid.NewString(), "Setup CI")
	if task.Status != StatusTodo {
		t.Errorf("default status = %q, want %q", task.Status, StatusTodo)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("default priority = %q, want %q", task.Priority, PriorityMedium)
	}
	if task.DependsOn != nil {
		t.Error("new task should have no dependency")
	}
	if task.EstimateHours != nil {
		t.Error("new task should have no estimate")
	}
}

func TestValidStatusAndPriority(t *testing.T) {
	for _, s := range []TaskStatus{StatusTodo, StatusInProgress, StatusCompleted, StatusBlocked} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	if ValidStatus("cancelled") {
		t.Error("ValidStatus(cancelled) = true, want false")
	}
	if ValidPriority("urgent") {
		t.Error("ValidPriority(urgent) = true, want false")
	}
}

func TestRoadmapReadable(t *testing.T) {
	rm := Roadmap{OwnerID: "owner-1", Visibility: VisibilityPrivate}
	if !rm.Readable("owner-1") {
		t.Error("owner should read private roadmap")
	}
	if rm.Readable("other") {
		t.Error("non-owner should not read private roadmap")
	}
	rm.Visibility = VisibilityLink
	if !rm.Readable("other") {
		t.Error("anyone should read link-shared roadmap")
	}
}
