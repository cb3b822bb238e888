package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/josephgoksu/RoadWing/internal/graph"
	"github.com/josephgoksu/RoadWing/models"
	"github.com/josephgoksu/RoadWing/types"
)

// SQLiteRoadmapStore implements the RoadmapStore interface on SQLite
// (pure-Go driver, CGO-free). Insertion order is the implicit rowid.
type SQLiteRoadmapStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteRoadmapStore creates a new instance of SQLiteRoadmapStore.
// It does not initialize the store; Initialize must be called separately.
func NewSQLiteRoadmapStore() *SQLiteRoadmapStore {
	return &SQLiteRoadmapStore{}
}

// Initialize opens the database and creates the schema. It expects a
// 'dataFile' key in the config map specifying the database path; pass
// ':memory:' for an in-memory database.
func (s *SQLiteRoadmapStore) Initialize(config map[string]string) error {
	dbPath := config[dataFileKey]
	if dbPath == "" {
		dbPath = "roadmap.db"
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create data directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("enable foreign keys: %w", err)
	}

	s.db = db
	s.dbPath = dbPath

	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// initSchema creates the database tables if they don't exist.
func (s *SQLiteRoadmapStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS roadmaps (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		visibility TEXT NOT NULL DEFAULT 'private',
		owner_id TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS members (
		user_id TEXT NOT NULL,
		roadmap_id TEXT NOT NULL,
		name TEXT,
		email TEXT NOT NULL,
		role TEXT,
		skills TEXT,                       -- comma-separated
		load_factor REAL NOT NULL DEFAULT 1.0,
		PRIMARY KEY (user_id, roadmap_id),
		FOREIGN KEY (roadmap_id) REFERENCES roadmaps(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		roadmap_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'todo',
		priority TEXT NOT NULL DEFAULT 'medium',
		estimate_hours REAL,
		assignee_id TEXT,
		depends_on TEXT,
		order_idx INTEGER NOT NULL DEFAULT 0,
		ai_generated INTEGER NOT NULL DEFAULT 0,
		generated_at TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (roadmap_id) REFERENCES roadmaps(id) ON DELETE CASCADE,
		FOREIGN KEY (depends_on) REFERENCES tasks(id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_roadmap ON tasks(roadmap_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	CREATE INDEX IF NOT EXISTS idx_members_roadmap ON members(roadmap_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CreateRoadmap adds a new roadmap to the store.
func (s *SQLiteRoadmapStore) CreateRoadmap(roadmap models.Roadmap) (models.Roadmap, error) {
	if roadmap.ID == "" {
		roadmap.ID = generateID()
	}
	if roadmap.Visibility == "" {
		roadmap.Visibility = models.VisibilityPrivate
	}
	roadmap.CreatedAt = time.Now().UTC()

	if err := models.ValidateStruct(roadmap); err != nil {
		return models.Roadmap{}, fmt.Errorf("validation failed for new roadmap: %w", err)
	}

	_, err := s.db.Exec(
		`INSERT INTO roadmaps (id, title, description, visibility, owner_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		roadmap.ID, roadmap.Title, roadmap.Description, string(roadmap.Visibility), roadmap.OwnerID,
		roadmap.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return models.Roadmap{}, &types.StoreFailureError{Op: "create roadmap", Err: err}
	}
	return roadmap, nil
}

// GetRoadmap retrieves a roadmap by its unique identifier.
func (s *SQLiteRoadmapStore) GetRoadmap(id string) (models.Roadmap, error) {
	row := s.db.QueryRow(
		`SELECT id, title, description, visibility, owner_id, created_at FROM roadmaps WHERE id = ?`, id)
	return scanRoadmap(row)
}

// ListRoadmaps retrieves all roadmaps in creation order.
func (s *SQLiteRoadmapStore) ListRoadmaps() ([]models.Roadmap, error) {
	rows, err := s.db.Query(
		`SELECT id, title, description, visibility, owner_id, created_at FROM roadmaps ORDER BY rowid`)
	if err != nil {
		return nil, &types.StoreFailureError{Op: "list roadmaps", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var out []models.Roadmap
	for rows.Next() {
		r, err := scanRoadmap(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoadmap(row rowScanner) (models.Roadmap, error) {
	var r models.Roadmap
	var visibility, createdAt string
	err := row.Scan(&r.ID, &r.Title, &r.Description, &visibility, &r.OwnerID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Roadmap{}, types.ErrRoadmapNotFound
	}
	if err != nil {
		return models.Roadmap{}, &types.StoreFailureError{Op: "scan roadmap", Err: err}
	}
	r.Visibility = models.Visibility(visibility)
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return r, nil
}

// AddMember attaches a team member to a roadmap.
func (s *SQLiteRoadmapStore) AddMember(member models.Member) (models.Member, error) {
	if _, err := s.GetRoadmap(member.RoadmapID); err != nil {
		return models.Member{}, err
	}
	if member.UserID == "" {
		member.UserID = generateID()
	}
	if err := models.ValidateStruct(member); err != nil {
		return models.Member{}, fmt.Errorf("validation failed for new member: %w", err)
	}

	_, err := s.db.Exec(
		`INSERT INTO members (user_id, roadmap_id, name, email, role, skills, load_factor) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		member.UserID, member.RoadmapID, member.Name, member.Email, member.Role,
		joinSkills(member.Skills), member.LoadFactor,
	)
	if err != nil {
		return models.Member{}, &types.StoreFailureError{Op: "add member", Err: err}
	}
	return member, nil
}

// ListMembers retrieves the members of a roadmap in insertion order.
func (s *SQLiteRoadmapStore) ListMembers(roadmapID string) ([]models.Member, error) {
	rows, err := s.db.Query(
		`SELECT user_id, roadmap_id, name, email, role, skills, load_factor FROM members WHERE roadmap_id = ? ORDER BY rowid`,
		roadmapID)
	if err != nil {
		return nil, &types.StoreFailureError{Op: "list members", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var out []models.Member
	for rows.Next() {
		var m models.Member
		var skills string
		if err := rows.Scan(&m.UserID, &m.RoadmapID, &m.Name, &m.Email, &m.Role, &skills, &m.LoadFactor); err != nil {
			return nil, &types.StoreFailureError{Op: "scan member", Err: err}
		}
		m.Skills = splitSkills(skills)
		out = append(out, m)
	}
	return out, rows.Err()
}

// CreateTask adds a single task to the store.
func (s *SQLiteRoadmapStore) CreateTask(task models.Task) (models.Task, error) {
	created, err := s.BulkCreateTasks([]models.Task{task})
	if err != nil {
		return models.Task{}, err
	}
	return created[0], nil
}

// BulkCreateTasks inserts a batch of tasks in one transaction: either every
// task is persisted or none are.
func (s *SQLiteRoadmapStore) BulkCreateTasks(tasks []models.Task) ([]models.Task, error) {
	prepared := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.ID == "" {
			task.ID = generateID()
		}
		if task.Status == "" {
			task.Status = models.StatusTodo
		}
		if task.Priority == "" {
			task.Priority = models.PriorityMedium
		}
		task.CreatedAt = time.Now().UTC()
		if err := models.ValidateStruct(task); err != nil {
			return nil, fmt.Errorf("validation failed for new task: %w", err)
		}
		prepared = append(prepared, task)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, &types.StoreFailureError{Op: "bulk create tasks", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO tasks
		(id, roadmap_id, title, description, status, priority, estimate_hours, assignee_id, depends_on, order_idx, ai_generated, generated_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, &types.StoreFailureError{Op: "bulk create tasks", Err: err}
	}
	defer func() { _ = stmt.Close() }()

	for _, task := range prepared {
		var generatedAt any
		if task.GeneratedAt != nil {
			generatedAt = task.GeneratedAt.Format(time.RFC3339Nano)
		}
		_, err := stmt.Exec(
			task.ID, task.RoadmapID, task.Title, task.Description,
			string(task.Status), string(task.Priority),
			task.EstimateHours, task.AssigneeID, task.DependsOn,
			task.OrderIndex, task.AIGenerated, generatedAt,
			task.CreatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return nil, &types.StoreFailureError{Op: "bulk create tasks", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, &types.StoreFailureError{Op: "bulk create tasks", Err: err}
	}
	return prepared, nil
}

// SetTaskDependency sets or clears a task's predecessor. The edge must stay
// within the task's roadmap and must not introduce a cycle.
func (s *SQLiteRoadmapStore) SetTaskDependency(taskID string, dependsOn *string) error {
	task, err := s.GetTask(taskID)
	if err != nil {
		return err
	}

	if dependsOn != nil {
		if *dependsOn == taskID {
			return fmt.Errorf("task cannot depend on itself")
		}
		dep, err := s.GetTask(*dependsOn)
		if err != nil {
			return fmt.Errorf("dependency task with ID '%s' not found", *dependsOn)
		}
		if dep.RoadmapID != task.RoadmapID {
			return fmt.Errorf("dependency '%s' belongs to a different roadmap", dep.ID)
		}

		siblings, err := s.ListTasks(task.RoadmapID)
		if err != nil {
			return err
		}
		for i := range siblings {
			if siblings[i].ID == taskID {
				siblings[i].DependsOn = dependsOn
			}
		}
		if err := graph.VerifyAcyclic(siblings); err != nil {
			return fmt.Errorf("dependency rejected: %w", err)
		}
	}

	_, err = s.db.Exec(`UPDATE tasks SET depends_on = ? WHERE id = ?`, dependsOn, taskID)
	if err != nil {
		return &types.StoreFailureError{Op: "set task dependency", Err: err}
	}
	return nil
}

const taskColumns = `id, roadmap_id, title, description, status, priority, estimate_hours, assignee_id, depends_on, order_idx, ai_generated, generated_at, created_at`

// GetTask retrieves a task by its unique identifier.
func (s *SQLiteRoadmapStore) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

// UpdateTaskStatus transitions a task to the given status. Any transition
// between valid statuses is allowed.
func (s *SQLiteRoadmapStore) UpdateTaskStatus(id string, status models.TaskStatus) (models.Task, error) {
	if !models.ValidStatus(status) {
		return models.Task{}, fmt.Errorf("invalid task status: %s", status)
	}

	res, err := s.db.Exec(`UPDATE tasks SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return models.Task{}, &types.StoreFailureError{Op: "update task status", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Task{}, types.ErrTaskNotFound
	}
	return s.GetTask(id)
}

// DeleteTask removes a task by id and clears any edges pointing at it.
func (s *SQLiteRoadmapStore) DeleteTask(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &types.StoreFailureError{Op: "delete task", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE tasks SET depends_on = NULL WHERE depends_on = ?`, id); err != nil {
		return &types.StoreFailureError{Op: "delete task", Err: err}
	}
	res, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return &types.StoreFailureError{Op: "delete task", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrTaskNotFound
	}
	if err := tx.Commit(); err != nil {
		return &types.StoreFailureError{Op: "delete task", Err: err}
	}
	return nil
}

// ListTasks retrieves a roadmap's tasks ordered by orderIndex, with insertion
// order (rowid) breaking ties.
func (s *SQLiteRoadmapStore) ListTasks(roadmapID string) ([]models.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskColumns+` FROM tasks WHERE roadmap_id = ? ORDER BY order_idx, rowid`, roadmapID)
	if err != nil {
		return nil, &types.StoreFailureError{Op: "list tasks", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var out []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var status, priority, createdAt string
	var generatedAt sql.NullString
	err := row.Scan(&t.ID, &t.RoadmapID, &t.Title, &t.Description, &status, &priority,
		&t.EstimateHours, &t.AssigneeID, &t.DependsOn, &t.OrderIndex, &t.AIGenerated,
		&generatedAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, types.ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, &types.StoreFailureError{Op: "scan task", Err: err}
	}
	t.Status = models.TaskStatus(status)
	t.Priority = models.TaskPriority(priority)
	t.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if generatedAt.Valid {
		if ts, parseErr := time.Parse(time.RFC3339Nano, generatedAt.String); parseErr == nil {
			t.GeneratedAt = &ts
		}
	}
	return t, nil
}

func joinSkills(skills []string) string {
	return strings.Join(skills, ",")
}

func splitSkills(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// Close releases the database connection.
func (s *SQLiteRoadmapStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
