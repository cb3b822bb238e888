package store

import "github.com/josephgoksu/RoadWing/models"

// RoadmapStore defines the interface for roadmap persistence.
// It outlines the contract for managing roadmaps, team members and tasks,
// including batch creation, dependency patching and resource cleanup.
type RoadmapStore interface {
	// Initialize configures the store with necessary parameters, such as
	// file path, data format, and any other backend-specific settings.
	// It should be called before any other store operations.
	Initialize(config map[string]string) error

	// CreateRoadmap adds a new roadmap to the store.
	// It returns the created roadmap or an error if the operation fails.
	CreateRoadmap(roadmap models.Roadmap) (models.Roadmap, error)

	// GetRoadmap retrieves a roadmap by its unique identifier.
	// It returns types.ErrRoadmapNotFound if no roadmap has that id.
	GetRoadmap(id string) (models.Roadmap, error)

	// ListRoadmaps retrieves all roadmaps in creation order.
	ListRoadmaps() ([]models.Roadmap, error)

	// AddMember attaches a team member to a roadmap.
	AddMember(member models.Member) (models.Member, error)

	// ListMembers retrieves the members of a roadmap in insertion order.
	ListMembers(roadmapID string) ([]models.Member, error)

	// CreateTask adds a single task to the store.
	// It returns the created task or an error if the operation fails.
	CreateTask(task models.Task) (models.Task, error)

	// BulkCreateTasks inserts a batch of tasks atomically: either every
	// task is persisted or none are.
	BulkCreateTasks(tasks []models.Task) ([]models.Task, error)

	// SetTaskDependency sets or clears a task's predecessor. A nil
	// dependsOn clears the edge.
	SetTaskDependency(taskID string, dependsOn *string) error

	// GetTask retrieves a task by its unique identifier.
	// It returns types.ErrTaskNotFound if no task has that id.
	GetTask(id string) (models.Task, error)

	// UpdateTaskStatus transitions a task to the given status.
	// Any transition between valid statuses is allowed.
	UpdateTaskStatus(id string, status models.TaskStatus) (models.Task, error)

	// DeleteTask removes a task by id and clears any edges pointing at it.
	DeleteTask(id string) error

	// ListTasks retrieves a roadmap's tasks ordered by orderIndex, with
	// insertion order breaking ties.
	ListTasks(roadmapID string) ([]models.Task, error)

	// Close releases any resources held by the store, such as file locks or
	// database connections. It should be called when the store is no longer needed.
	Close() error
}
