package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusBlocked    TaskStatus = "blocked"
)

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the known task priorities.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Task represents a unit of work within a roadmap.
//
// DependsOn holds at most one predecessor task ID (single-predecessor model).
// It must reference a task in the same roadmap and must never introduce a
// cycle when the chain of predecessors is followed; the graph builder
// guarantees both before a batch is persisted.
//
// EstimateHours is a pointer so "no estimate" is distinguishable from an
// explicit zero. Scheduling substitutes a default when it is nil; statistics
// count it as zero.
type Task struct {
	ID            string       `json:"id" validate:"required,uuid4"`
	RoadmapID     string       `json:"roadmapId" validate:"required,uuid4"`
	Title         string       `json:"title" validate:"required,min=1,max=255"`
	Description   string       `json:"description,omitempty"`
	Status        TaskStatus   `json:"status" validate:"required,oneof=todo in_progress completed blocked"`
	Priority      TaskPriority `json:"priority" validate:"required,oneof=low medium high critical"`
	EstimateHours *float64     `json:"estimateHours,omitempty" validate:"omitempty,gte=0"`
	AssigneeID    *string      `json:"assigneeId,omitempty" validate:"omitempty,uuid4"`
	DependsOn     *string      `json:"dependsOn,omitempty" validate:"omitempty,uuid4"`
	OrderIndex    int          `json:"orderIndex"`
	AIGenerated   bool         `json:"aiGenerated"`
	GeneratedAt   *time.Time   `json:"generatedAt,omitempty"`
	CreatedAt     time.Time    `json:"createdAt" validate:"required"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// NewTask creates a task with defaults applied (status todo, medium priority).
func NewTask(id, roadmapID, title string) *Task {
	return &Task{
		ID:        id,
		RoadmapID: roadmapID,
		Title:     title,
		Status:    StatusTodo,
		Priority:  PriorityMedium,
		CreatedAt: time.Now().UTC(),
	}
}
