// Package config provides centralized configuration constants for RoadWing.
// All default values should be defined here to ensure a single source of truth.
package config

// Scheduling constants
const (
	// DefaultHoursPerPeriod is the working-hour width of one schedule period.
	DefaultHoursPerPeriod = 40.0

	// DefaultMinHorizonPeriods is the minimum timeline length in periods.
	DefaultMinHorizonPeriods = 12

	// DefaultEstimateHours is assumed for tasks without an estimate when
	// deriving the schedule.
	DefaultEstimateHours = 8.0
)

// Storage constants
const (
	// DefaultDataDir is the project-relative directory holding roadmap data.
	DefaultDataDir = ".roadwing"

	// DefaultDataFile is the roadmap data file name inside the data dir.
	DefaultDataFile = "roadmap.json"

	// DefaultDataFormat is the serialization format for the file backend.
	DefaultDataFormat = "json"

	// DefaultBackend selects the storage backend (file or sqlite).
	DefaultBackend = "file"

	// DefaultSQLiteFile is the database file name for the sqlite backend.
	DefaultSQLiteFile = "roadmap.db"
)

// LLM request constants
const (
	// DefaultRequestTimeoutSeconds bounds a single generation call.
	DefaultRequestTimeoutSeconds = 120

	// DefaultMaxRetries bounds generation attempts per batch.
	DefaultMaxRetries = 3
)
