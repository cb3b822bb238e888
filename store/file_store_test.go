package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephgoksu/RoadWing/models"
	"github.com/josephgoksu/RoadWing/types"
)

func setupFileStore(t *testing.T, format string) *FileRoadmapStore {
	t.Helper()

	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "roadmap."+format)

	store := NewFileRoadmapStore()
	config := map[string]string{
		"dataFile":       filePath,
		"dataFileFormat": format,
	}

	if err := store.Initialize(config); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}

	return store
}

func createRoadmap(t *testing.T, store RoadmapStore) models.Roadmap {
	t.Helper()

	roadmap, err := store.CreateRoadmap(models.Roadmap{
		Title:      "Test Roadmap",
		Visibility: models.VisibilityPrivate,
		OwnerID:    "owner-1",
	})
	if err != nil {
		t.Fatalf("CreateRoadmap failed: %v", err)
	}
	return roadmap
}

func TestFileRoadmapStore_RoadmapLifecycle(t *testing.T) {
	store := setupFileStore(t, "json")
	defer func() { _ = store.Close() }()

	roadmap := createRoadmap(t, store)
	if roadmap.ID == "" {
		t.Error("Created roadmap should have an ID")
	}
	if roadmap.CreatedAt.IsZero() {
		t.Error("Created roadmap should have CreatedAt set")
	}

	retrieved, err := store.GetRoadmap(roadmap.ID)
	if err != nil {
		t.Fatalf("GetRoadmap failed: %v", err)
	}
	if retrieved.Title != roadmap.Title {
		t.Errorf("Title mismatch: got %q, want %q", retrieved.Title, roadmap.Title)
	}

	if _, err := store.GetRoadmap("b2f9f0a0-0000-4000-8000-000000000000"); !errors.Is(err, types.ErrRoadmapNotFound) {
		t.Errorf("expected ErrRoadmapNotFound, got %v", err)
	}

	all, err := store.ListRoadmaps()
	if err != nil {
		t.Fatalf("ListRoadmaps failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 roadmap, got %d", len(all))
	}
}

func TestFileRoadmapStore_Members(t *testing.T) {
	store := setupFileStore(t, "json")
	defer func() { _ = store.Close() }()

	roadmap := createRoadmap(t, store)

	member, err := store.AddMember(models.Member{
		RoadmapID:  roadmap.ID,
		Email:      "alice@example.com",
		Name:       "Alice",
		LoadFactor: 1.0,
	})
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if member.UserID == "" {
		t.Error("AddMember should assign a user ID")
	}

	if _, err := store.AddMember(models.Member{
		RoadmapID:  "b2f9f0a0-0000-4000-8000-000000000000",
		Email:      "bob@example.com",
		LoadFactor: 1.0,
	}); !errors.Is(err, types.ErrRoadmapNotFound) {
		t.Errorf("expected ErrRoadmapNotFound for unknown roadmap, got %v", err)
	}

	members, err := store.ListMembers(roadmap.ID)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(members) != 1 || members[0].Email != "alice@example.com" {
		t.Errorf("unexpected members: %+v", members)
	}
}

func TestFileRoadmapStore_TaskLifecycle(t *testing.T) {
	store := setupFileStore(t, "json")
	defer func() { _ = store.Close() }()

	roadmap := createRoadmap(t, store)

	task, err := store.CreateTask(models.Task{
		RoadmapID: roadmap.ID,
		Title:     "Design schema",
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.Status != models.StatusTodo {
		t.Errorf("Status should default to todo, got %q", task.Status)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("Priority should default to medium, got %q", task.Priority)
	}

	updated, err := store.UpdateTaskStatus(task.ID, models.StatusInProgress)
	if err != nil {
		t.Fatalf("UpdateTaskStatus failed: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Errorf("Status not updated: got %q", updated.Status)
	}

	// Reverting completed work is allowed.
	if _, err := store.UpdateTaskStatus(task.ID, models.StatusCompleted); err != nil {
		t.Fatalf("UpdateTaskStatus to completed failed: %v", err)
	}
	reverted, err := store.UpdateTaskStatus(task.ID, models.StatusTodo)
	if err != nil {
		t.Fatalf("reverting status failed: %v", err)
	}
	if reverted.Status != models.StatusTodo {
		t.Errorf("Status should revert to todo, got %q", reverted.Status)
	}

	if _, err := store.UpdateTaskStatus(task.ID, models.TaskStatus("done")); err == nil {
		t.Error("unknown status must be rejected")
	}

	if err := store.DeleteTask(task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if _, err := store.GetTask(task.ID); !errors.Is(err, types.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
	}
}

func TestFileRoadmapStore_BulkCreateIsAtomic(t *testing.T) {
	store := setupFileStore(t, "json")
	defer func() { _ = store.Close() }()

	roadmap := createRoadmap(t, store)

	batch := []models.Task{
		{RoadmapID: roadmap.ID, Title: "Valid task"},
		{RoadmapID: roadmap.ID, Title: ""}, // fails validation
	}

	if _, err := store.BulkCreateTasks(batch); err == nil {
		t.Fatal("expected error for invalid task in batch")
	}

	tasks, err := store.ListTasks(roadmap.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("no tasks may persist from a failed batch, got %d", len(tasks))
	}
}

func TestFileRoadmapStore_ListTasksOrdering(t *testing.T) {
	store := setupFileStore(t, "json")
	defer func() { _ = store.Close() }()

	roadmap := createRoadmap(t, store)

	batch := []models.Task{
		{RoadmapID: roadmap.ID, Title: "third", OrderIndex: 2},
		{RoadmapID: roadmap.ID, Title: "first", OrderIndex: 0},
		{RoadmapID: roadmap.ID, Title: "tie-a", OrderIndex: 1},
		{RoadmapID: roadmap.ID, Title: "tie-b", OrderIndex: 1},
	}
	if _, err := store.BulkCreateTasks(batch); err != nil {
		t.Fatalf("BulkCreateTasks failed: %v", err)
	}

	tasks, err := store.ListTasks(roadmap.ID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}

	want := []string{"first", "tie-a", "tie-b", "third"}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i, title := range want {
		if tasks[i].Title != title {
			t.Errorf("tasks[%d] = %q, want %q (orderIndex with insertion-order ties)", i, tasks[i].Title, title)
		}
	}
}

func TestFileRoadmapStore_Dependencies(t *testing.T) {
	store := setupFileStore(t, "json")
	defer func() { _ = store.Close() }()

	roadmap := createRoadmap(t, store)

	a, err := store.CreateTask(models.Task{RoadmapID: roadmap.ID, Title: "A"})
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	b, err := store.CreateTask(models.Task{RoadmapID: roadmap.ID, Title: "B"})
	if err != nil {
		t.Fatalf("create B: %v", err)
	}

	if err := store.SetTaskDependency(b.ID, &a.ID); err != nil {
		t.Fatalf("SetTaskDependency failed: %v", err)
	}

	got, err := store.GetTask(b.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.DependsOn == nil || *got.DependsOn != a.ID {
		t.Errorf("dependency not set: %v", got.DependsOn)
	}

	// Self-dependency and cycles are rejected.
	if err := store.SetTaskDependency(a.ID, &a.ID); err == nil {
		t.Error("self-dependency must be rejected")
	}
	if err := store.SetTaskDependency(a.ID, &b.ID); err == nil {
		t.Error("cycle A->B->A must be rejected")
	}

	// Clearing an edge.
	if err := store.SetTaskDependency(b.ID, nil); err != nil {
		t.Fatalf("clearing dependency failed: %v", err)
	}
	got, _ = store.GetTask(b.ID)
	if got.DependsOn != nil {
		t.Error("dependency should be cleared")
	}

	// Deleting a predecessor clears edges pointing at it.
	if err := store.SetTaskDependency(b.ID, &a.ID); err != nil {
		t.Fatalf("re-adding dependency failed: %v", err)
	}
	if err := store.DeleteTask(a.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	got, _ = store.GetTask(b.ID)
	if got.DependsOn != nil {
		t.Error("edge to a deleted task should be cleared")
	}
}

func TestFileRoadmapStore_PersistsAcrossReopen(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "roadmap.json")
	config := map[string]string{"dataFile": filePath, "dataFileFormat": "json"}

	store := NewFileRoadmapStore()
	if err := store.Initialize(config); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	roadmap := createRoadmap(t, store)
	if _, err := store.CreateTask(models.Task{RoadmapID: roadmap.ID, Title: "Persisted"}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	_ = store.Close()

	reopened := NewFileRoadmapStore()
	if err := reopened.Initialize(config); err != nil {
		t.Fatalf("re-Initialize: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	tasks, err := reopened.ListTasks(roadmap.ID)
	if err != nil {
		t.Fatalf("ListTasks after reopen: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Persisted" {
		t.Errorf("unexpected tasks after reopen: %+v", tasks)
	}
}

func TestFileRoadmapStore_ChecksumDetectsTampering(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "roadmap.json")
	config := map[string]string{"dataFile": filePath, "dataFileFormat": "json"}

	store := NewFileRoadmapStore()
	if err := store.Initialize(config); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	createRoadmap(t, store)
	_ = store.Close()

	// Corrupt the data file without updating the checksum.
	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	if err := os.WriteFile(filePath, append(data, ' '), 0o644); err != nil {
		t.Fatalf("tamper with data file: %v", err)
	}

	tampered := NewFileRoadmapStore()
	if err := tampered.Initialize(config); err == nil {
		t.Error("expected checksum mismatch error on tampered file")
	}
}

func TestFileRoadmapStore_YAMLAndTOMLFormats(t *testing.T) {
	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			store := setupFileStore(t, format)
			defer func() { _ = store.Close() }()

			roadmap := createRoadmap(t, store)
			if _, err := store.CreateTask(models.Task{RoadmapID: roadmap.ID, Title: "Task"}); err != nil {
				t.Fatalf("CreateTask (%s): %v", format, err)
			}
			tasks, err := store.ListTasks(roadmap.ID)
			if err != nil {
				t.Fatalf("ListTasks (%s): %v", format, err)
			}
			if len(tasks) != 1 {
				t.Errorf("expected 1 task, got %d", len(tasks))
			}
		})
	}
}
