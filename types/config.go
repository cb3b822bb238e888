/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose    bool             `mapstructure:"verbose"`
	Config     string           `mapstructure:"config"`
	Project    ProjectConfig    `mapstructure:"project" validate:"required"`
	Data       DataConfig       `mapstructure:"data" validate:"required"`
	Schedule   ScheduleConfig   `mapstructure:"schedule" validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm" validate:"omitempty"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	CurrentUse CurrentUseConfig `mapstructure:"current"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir string `mapstructure:"rootDir" validate:"required"`
	DataDir string `mapstructure:"dataDir" validate:"required"`
}

// DataConfig holds data storage configuration.
// Backend "file" persists to a single JSON/YAML/TOML file; "sqlite" uses an
// embedded SQLite database.
type DataConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite"`
	File    string `mapstructure:"file" validate:"required"`
	Format  string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// ScheduleConfig holds the constants the schedule deriver works in.
type ScheduleConfig struct {
	// HoursPerPeriod is the length of one scheduling period in work hours
	// (default 40, one work-week).
	HoursPerPeriod float64 `mapstructure:"hoursPerPeriod" validate:"gt=0"`
	// MinHorizonPeriods is the minimum number of periods a timeline renders
	// regardless of the task duration sum (default 12).
	MinHorizonPeriods int `mapstructure:"minHorizonPeriods" validate:"gte=1"`
	// DefaultEstimateHours substitutes for a missing task estimate during
	// scheduling (default 8).
	DefaultEstimateHours float64 `mapstructure:"defaultEstimateHours" validate:"gt=0"`
}

// LLMConfig holds configuration for the generation service call.
type LLMConfig struct {
	Provider  string `mapstructure:"provider" validate:"omitempty,oneof=openai anthropic gemini ollama"`
	ModelName string `mapstructure:"modelName" validate:"omitempty,min=1"`
	APIKey    string `mapstructure:"apiKey" validate:"omitempty,min=1"`
	BaseURL   string `mapstructure:"baseUrl" validate:"omitempty,url"`
	// RequestTimeoutSeconds controls the timeout for generation calls
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
	// MaxRetries controls automatic retries when the response fails to parse
	MaxRetries int `mapstructure:"maxRetries" validate:"omitempty,min=0,max=3"`
	// Debug enables extra request/response logging (generally tied to --verbose)
	Debug bool `mapstructure:"debug"`
}

// TelemetryConfig controls anonymous usage reporting.
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	APIKey   string `mapstructure:"apiKey"`
	Endpoint string `mapstructure:"endpoint"`
}

// CurrentUseConfig tracks the active roadmap and acting user for CLI calls.
type CurrentUseConfig struct {
	RoadmapID string `mapstructure:"roadmapId" validate:"omitempty,uuid4"`
	UserID    string `mapstructure:"userId"`
}
