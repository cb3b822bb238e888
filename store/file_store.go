package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	yaml "gopkg.in/yaml.v3"

	"github.com/josephgoksu/RoadWing/internal/graph"
	"github.com/josephgoksu/RoadWing/models"
	"github.com/josephgoksu/RoadWing/types"
)

const (
	defaultDataFile   = "roadmap.json" // Default filename if only format implies extension
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
)

// roadmapDocument is the on-disk shape of the file backend. Slice order is
// insertion order; ListTasks relies on it to break orderIndex ties.
type roadmapDocument struct {
	Roadmaps []models.Roadmap `json:"roadmaps" yaml:"roadmaps" toml:"roadmaps"`
	Members  []models.Member  `json:"members" yaml:"members" toml:"members"`
	Tasks    []models.Task    `json:"tasks" yaml:"tasks" toml:"tasks"`
}

// FileRoadmapStore implements the RoadmapStore interface using a file backend.
// It supports JSON, YAML, and TOML formats and uses file-level locking.
type FileRoadmapStore struct {
	filePath string
	doc      roadmapDocument
	flk      *flock.Flock
	format   string // "json", "yaml", or "toml"
}

// NewFileRoadmapStore creates a new instance of FileRoadmapStore.
// It does not initialize the store; Initialize must be called separately.
func NewFileRoadmapStore() *FileRoadmapStore {
	return &FileRoadmapStore{}
}

// Initialize configures the FileRoadmapStore.
// It expects a 'dataFile' key in the config map specifying the path to the
// data file, defaulting to 'roadmap.json' in the current working directory.
// It loads existing data from the file if it exists and establishes a file lock.
func (s *FileRoadmapStore) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	// Adjust the default file extension when a non-JSON format was picked
	// without an explicit path.
	if s.filePath == defaultDataFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// flock uses the file path itself for locking.
	s.flk = flock.New(s.filePath)

	locked, err := s.flk.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire initial lock for %s: %w", s.filePath, err)
	}
	if !locked {
		if err := s.flk.Lock(); err != nil {
			return fmt.Errorf("failed to acquire blocking initial lock for %s: %w", s.filePath, err)
		}
	}
	defer func() { _ = s.flk.Unlock() }()

	s.doc = roadmapDocument{}
	return s.loadInternal()
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

// loadInternal reads the document from the file, verifies checksum, and
// unmarshals. It assumes the file lock is held.
func (s *FileRoadmapStore) loadInternal() error {
	checksumFilePath := s.filePath + checksumSuffix

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.doc = roadmapDocument{}
			// If the data file doesn't exist, the checksum file shouldn't either.
			_ = os.Remove(checksumFilePath)
			f, createErr := os.OpenFile(s.filePath, os.O_CREATE|os.O_RDWR, 0o644)
			if createErr != nil {
				return fmt.Errorf("failed to create data file %s: %w", s.filePath, createErr)
			}
			_ = f.Close()
			if err := os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644); err != nil {
				fmt.Printf("Warning: could not write initial checksum file %s: %v\n", checksumFilePath, err)
			}
			return nil
		}
		return fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}

	// Verify checksum if the checksum file exists. Data written before
	// checksums existed is still loadable; the next save creates one.
	if _, err := os.Stat(checksumFilePath); err == nil {
		expectedChecksumBytes, readErr := os.ReadFile(checksumFilePath)
		if readErr != nil {
			return fmt.Errorf("failed to read checksum file %s: %w - data file might be corrupt or tampered", checksumFilePath, readErr)
		}
		expectedChecksum := strings.TrimSpace(string(expectedChecksumBytes))
		actualChecksum := calculateChecksum(data)

		if actualChecksum != expectedChecksum {
			return fmt.Errorf("checksum mismatch for %s - expected %s, got %s - file is corrupt or tampered", s.filePath, expectedChecksum, actualChecksum)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking checksum file %s: %w", checksumFilePath, err)
	}

	if len(data) == 0 {
		_ = os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644) // best effort
		s.doc = roadmapDocument{}
		return nil
	}

	var doc roadmapDocument
	switch s.format {
	case formatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to unmarshal JSON from %s (checksum may have passed): %w", s.filePath, err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to unmarshal YAML from %s (checksum may have passed): %w", s.filePath, err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to unmarshal TOML from %s (checksum may have passed): %w", s.filePath, err)
		}
	default:
		return fmt.Errorf("unsupported data format for loading: %s", s.format)
	}

	// Dependency edges in a persisted document must always form a DAG.
	if err := graph.VerifyAcyclic(doc.Tasks); err != nil {
		return fmt.Errorf("integrity check failed for %s: %w", s.filePath, err)
	}

	s.doc = doc
	return nil
}

// saveInternal writes the document to file, then writes its checksum.
// It assumes the file lock is held.
func (s *FileRoadmapStore) saveInternal() error {
	var marshaledData []byte
	var err error

	switch s.format {
	case formatJSON:
		marshaledData, err = json.MarshalIndent(s.doc, "", "  ")
	case formatYAML:
		marshaledData, err = yaml.Marshal(s.doc)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encodeErr := toml.NewEncoder(buf).Encode(s.doc); encodeErr == nil {
			marshaledData = buf.Bytes()
		} else {
			err = fmt.Errorf("failed to marshal TOML: %w", encodeErr)
		}
	default:
		return fmt.Errorf("unsupported data format for saving: %s", s.format)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal document to %s: %w", s.format, err)
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := os.WriteFile(tempFilePath, marshaledData, 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary data file %s: %w", tempFilePath, err)
	}

	actualChecksum := calculateChecksum(marshaledData)
	if err := os.WriteFile(tempChecksumFilePath, []byte(actualChecksum), 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	// Atomically move the data file and then the checksum file.
	if err := os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempFilePath, s.filePath, err)
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("CRITICAL: data file %s updated, but failed to update checksum file %s from %s: %w - store may be inconsistent", s.filePath, checksumFilePath, tempChecksumFilePath, err)
	}

	return nil
}

// generateID creates a new universally unique identifier string.
func generateID() string {
	return uuid.NewString()
}

func (s *FileRoadmapStore) lockAndLoad(op string) error {
	if err := s.flk.Lock(); err != nil {
		return &types.StoreFailureError{Op: op, Err: fmt.Errorf("could not lock file: %w", err)}
	}
	if err := s.loadInternal(); err != nil {
		_ = s.flk.Unlock()
		return &types.StoreFailureError{Op: op, Err: err}
	}
	return nil
}

// CreateRoadmap adds a new roadmap to the store.
func (s *FileRoadmapStore) CreateRoadmap(roadmap models.Roadmap) (models.Roadmap, error) {
	if err := s.lockAndLoad("create roadmap"); err != nil {
		return models.Roadmap{}, err
	}
	defer func() { _ = s.flk.Unlock() }()

	if roadmap.ID == "" {
		roadmap.ID = generateID()
	} else {
		for _, r := range s.doc.Roadmaps {
			if r.ID == roadmap.ID {
				return models.Roadmap{}, fmt.Errorf("roadmap with ID '%s' already exists", roadmap.ID)
			}
		}
	}
	if roadmap.Visibility == "" {
		roadmap.Visibility = models.VisibilityPrivate
	}
	roadmap.CreatedAt = time.Now().UTC()

	if err := models.ValidateStruct(roadmap); err != nil {
		return models.Roadmap{}, fmt.Errorf("validation failed for new roadmap: %w", err)
	}

	s.doc.Roadmaps = append(s.doc.Roadmaps, roadmap)

	if err := s.saveInternal(); err != nil {
		_ = s.loadInternal()
		return models.Roadmap{}, &types.StoreFailureError{Op: "create roadmap", Err: err}
	}
	return roadmap, nil
}

// GetRoadmap retrieves a roadmap by its unique identifier.
func (s *FileRoadmapStore) GetRoadmap(id string) (models.Roadmap, error) {
	if err := s.lockAndLoad("get roadmap"); err != nil {
		return models.Roadmap{}, err
	}
	defer func() { _ = s.flk.Unlock() }()

	for _, r := range s.doc.Roadmaps {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Roadmap{}, types.ErrRoadmapNotFound
}

// ListRoadmaps retrieves all roadmaps in creation order.
func (s *FileRoadmapStore) ListRoadmaps() ([]models.Roadmap, error) {
	if err := s.lockAndLoad("list roadmaps"); err != nil {
		return nil, err
	}
	defer func() { _ = s.flk.Unlock() }()

	out := make([]models.Roadmap, len(s.doc.Roadmaps))
	copy(out, s.doc.Roadmaps)
	return out, nil
}

// AddMember attaches a team member to a roadmap.
func (s *FileRoadmapStore) AddMember(member models.Member) (models.Member, error) {
	if err := s.lockAndLoad("add member"); err != nil {
		return models.Member{}, err
	}
	defer func() { _ = s.flk.Unlock() }()

	if !s.roadmapExists(member.RoadmapID) {
		return models.Member{}, types.ErrRoadmapNotFound
	}
	if member.UserID == "" {
		member.UserID = generateID()
	}
	for _, m := range s.doc.Members {
		if m.RoadmapID == member.RoadmapID && m.UserID == member.UserID {
			return models.Member{}, fmt.Errorf("member '%s' already on roadmap '%s'", member.UserID, member.RoadmapID)
		}
	}

	if err := models.ValidateStruct(member); err != nil {
		return models.Member{}, fmt.Errorf("validation failed for new member: %w", err)
	}

	s.doc.Members = append(s.doc.Members, member)

	if err := s.saveInternal(); err != nil {
		_ = s.loadInternal()
		return models.Member{}, &types.StoreFailureError{Op: "add member", Err: err}
	}
	return member, nil
}

// ListMembers retrieves the members of a roadmap in insertion order.
func (s *FileRoadmapStore) ListMembers(roadmapID string) ([]models.Member, error) {
	if err := s.lockAndLoad("list members"); err != nil {
		return nil, err
	}
	defer func() { _ = s.flk.Unlock() }()

	var out []models.Member
	for _, m := range s.doc.Members {
		if m.RoadmapID == roadmapID {
			out = append(out, m)
		}
	}
	return out, nil
}

// CreateTask adds a new task to the store.
func (s *FileRoadmapStore) CreateTask(task models.Task) (models.Task, error) {
	if err := s.lockAndLoad("create task"); err != nil {
		return models.Task{}, err
	}
	defer func() { _ = s.flk.Unlock() }()

	prepared, err := s.prepareTask(task)
	if err != nil {
		return models.Task{}, err
	}

	s.doc.Tasks = append(s.doc.Tasks, prepared)

	if err := s.saveInternal(); err != nil {
		_ = s.loadInternal()
		return models.Task{}, &types.StoreFailureError{Op: "create task", Err: err}
	}
	return prepared, nil
}

// BulkCreateTasks inserts a batch of tasks atomically: either every task is
// persisted or none are. The whole batch is validated before anything is
// appended, and the single atomic file write covers all rows.
func (s *FileRoadmapStore) BulkCreateTasks(tasks []models.Task) ([]models.Task, error) {
	if err := s.lockAndLoad("bulk create tasks"); err != nil {
		return nil, err
	}
	defer func() { _ = s.flk.Unlock() }()

	prepared := make([]models.Task, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		p, err := s.prepareTask(task)
		if err != nil {
			return nil, err
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate task ID '%s' in batch", p.ID)
		}
		seen[p.ID] = true
		prepared = append(prepared, p)
	}

	s.doc.Tasks = append(s.doc.Tasks, prepared...)

	if err := s.saveInternal(); err != nil {
		_ = s.loadInternal()
		return nil, &types.StoreFailureError{Op: "bulk create tasks", Err: err}
	}
	return prepared, nil
}

// prepareTask defaults, validates and relationship-checks a task about to be
// inserted. It assumes the lock is held and the document is loaded.
func (s *FileRoadmapStore) prepareTask(task models.Task) (models.Task, error) {
	if task.ID == "" {
		task.ID = generateID()
	} else {
		for _, t := range s.doc.Tasks {
			if t.ID == task.ID {
				return models.Task{}, fmt.Errorf("task with ID '%s' already exists", task.ID)
			}
		}
	}
	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	task.CreatedAt = time.Now().UTC()

	if err := models.ValidateStruct(task); err != nil {
		return models.Task{}, fmt.Errorf("validation failed for new task: %w", err)
	}
	if !s.roadmapExists(task.RoadmapID) {
		return models.Task{}, types.ErrRoadmapNotFound
	}
	if task.DependsOn != nil {
		if *task.DependsOn == task.ID {
			return models.Task{}, fmt.Errorf("task cannot depend on itself")
		}
		dep, ok := s.findTask(*task.DependsOn)
		if !ok {
			return models.Task{}, fmt.Errorf("dependency task with ID '%s' not found", *task.DependsOn)
		}
		if dep.RoadmapID != task.RoadmapID {
			return models.Task{}, fmt.Errorf("dependency '%s' belongs to a different roadmap", dep.ID)
		}
	}
	return task, nil
}

// SetTaskDependency sets or clears a task's predecessor. The edge must stay
// within the task's roadmap and must not introduce a cycle.
func (s *FileRoadmapStore) SetTaskDependency(taskID string, dependsOn *string) error {
	if err := s.lockAndLoad("set task dependency"); err != nil {
		return err
	}
	defer func() { _ = s.flk.Unlock() }()

	idx := -1
	for i := range s.doc.Tasks {
		if s.doc.Tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return types.ErrTaskNotFound
	}

	if dependsOn != nil {
		if *dependsOn == taskID {
			return fmt.Errorf("task cannot depend on itself")
		}
		dep, ok := s.findTask(*dependsOn)
		if !ok {
			return fmt.Errorf("dependency task with ID '%s' not found", *dependsOn)
		}
		if dep.RoadmapID != s.doc.Tasks[idx].RoadmapID {
			return fmt.Errorf("dependency '%s' belongs to a different roadmap", dep.ID)
		}
	}

	previous := s.doc.Tasks[idx].DependsOn
	s.doc.Tasks[idx].DependsOn = dependsOn

	if err := graph.VerifyAcyclic(s.doc.Tasks); err != nil {
		s.doc.Tasks[idx].DependsOn = previous
		return fmt.Errorf("dependency rejected: %w", err)
	}

	if err := s.saveInternal(); err != nil {
		_ = s.loadInternal()
		return &types.StoreFailureError{Op: "set task dependency", Err: err}
	}
	return nil
}

// GetTask retrieves a task by its unique identifier.
func (s *FileRoadmapStore) GetTask(id string) (models.Task, error) {
	if err := s.lockAndLoad("get task"); err != nil {
		return models.Task{}, err
	}
	defer func() { _ = s.flk.Unlock() }()

	task, ok := s.findTask(id)
	if !ok {
		return models.Task{}, types.ErrTaskNotFound
	}
	return task, nil
}

// UpdateTaskStatus transitions a task to the given status. Any transition
// between valid statuses is allowed, including reverting completed work.
func (s *FileRoadmapStore) UpdateTaskStatus(id string, status models.TaskStatus) (models.Task, error) {
	if !models.ValidStatus(status) {
		return models.Task{}, fmt.Errorf("invalid task status: %s", status)
	}

	if err := s.lockAndLoad("update task status"); err != nil {
		return models.Task{}, err
	}
	defer func() { _ = s.flk.Unlock() }()

	for i := range s.doc.Tasks {
		if s.doc.Tasks[i].ID != id {
			continue
		}
		previous := s.doc.Tasks[i].Status
		s.doc.Tasks[i].Status = status
		if err := s.saveInternal(); err != nil {
			s.doc.Tasks[i].Status = previous
			return models.Task{}, &types.StoreFailureError{Op: "update task status", Err: err}
		}
		return s.doc.Tasks[i], nil
	}
	return models.Task{}, types.ErrTaskNotFound
}

// DeleteTask removes a task by id and clears any edges pointing at it.
func (s *FileRoadmapStore) DeleteTask(id string) error {
	if err := s.lockAndLoad("delete task"); err != nil {
		return err
	}
	defer func() { _ = s.flk.Unlock() }()

	kept := make([]models.Task, 0, len(s.doc.Tasks))
	found := false
	for _, t := range s.doc.Tasks {
		if t.ID == id {
			found = true
			continue
		}
		if t.DependsOn != nil && *t.DependsOn == id {
			t.DependsOn = nil
		}
		kept = append(kept, t)
	}
	if !found {
		return types.ErrTaskNotFound
	}
	s.doc.Tasks = kept

	if err := s.saveInternal(); err != nil {
		_ = s.loadInternal()
		return &types.StoreFailureError{Op: "delete task", Err: err}
	}
	return nil
}

// ListTasks retrieves a roadmap's tasks ordered by orderIndex, with insertion
// order breaking ties.
func (s *FileRoadmapStore) ListTasks(roadmapID string) ([]models.Task, error) {
	if err := s.lockAndLoad("list tasks"); err != nil {
		return nil, err
	}
	defer func() { _ = s.flk.Unlock() }()

	var out []models.Task
	for _, t := range s.doc.Tasks {
		if t.RoadmapID == roadmapID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out, nil
}

func (s *FileRoadmapStore) roadmapExists(id string) bool {
	for _, r := range s.doc.Roadmaps {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (s *FileRoadmapStore) findTask(id string) (models.Task, bool) {
	for _, t := range s.doc.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// Close releases any resources held by the store, such as file locks.
// flock.Unlock() is idempotent and can be called even if the lock is not held.
func (s *FileRoadmapStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
