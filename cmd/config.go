package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/RoadWing/internal/config"
	"github.com/josephgoksu/RoadWing/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = ".roadwing"
	envPrefix  = "ROADWING"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single validator instance, it caches struct info
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// GetConfig returns the populated application configuration. InitConfig must
// have run first, which cobra.OnInitialize guarantees for command paths.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

func validateAppConfig(cfg *types.AppConfig) error {
	return validate.Struct(cfg)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env first if present; missing is fine.
	_ = godotenv.Load()

	// Env handling must be set up before reading the config file so env
	// vars can influence loading.
	viper.SetEnvPrefix(envPrefix) // e.g. ROADWING_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")

	projectDir := viper.GetString("project.rootDir")
	if projectDir == "" {
		projectDir = config.DefaultDataDir
	}

	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		if _, err := os.Stat(projectDir); !os.IsNotExist(err) {
			// Project-local config directory exists, prioritize it.
			viper.AddConfigPath(projectDir)
			viper.SetConfigName(configName)
		} else {
			home, err := os.UserHomeDir()
			cobra.CheckErr(err)
			viper.AddConfigPath(home) // $HOME/.roadwing.yaml
			viper.AddConfigPath(".")  // ./.roadwing.yaml
			viper.SetConfigName(configName)
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	viper.SetDefault("project.rootDir", ".")
	viper.SetDefault("project.dataDir", config.DefaultDataDir)

	viper.SetDefault("data.backend", config.DefaultBackend)
	viper.SetDefault("data.file", config.DefaultDataFile)
	viper.SetDefault("data.format", config.DefaultDataFormat)

	viper.SetDefault("schedule.hoursPerPeriod", config.DefaultHoursPerPeriod)
	viper.SetDefault("schedule.minHorizonPeriods", config.DefaultMinHorizonPeriods)
	viper.SetDefault("schedule.defaultEstimateHours", config.DefaultEstimateHours)

	viper.SetDefault("llm.provider", "gemini")
	viper.SetDefault("llm.modelName", "")
	viper.SetDefault("llm.apiKey", "")
	viper.SetDefault("llm.requestTimeoutSeconds", config.DefaultRequestTimeoutSeconds)
	viper.SetDefault("llm.maxRetries", config.DefaultMaxRetries)

	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.apiKey", "")
	viper.SetDefault("telemetry.endpoint", "")

	viper.SetDefault("current.roadmapId", "")
	viper.SetDefault("current.userId", "")

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	// A config file may exist but omit these nested keys.
	if GlobalAppConfig.Project.RootDir == "" {
		GlobalAppConfig.Project.RootDir = viper.GetString("project.rootDir")
	}
	if GlobalAppConfig.Project.DataDir == "" {
		GlobalAppConfig.Project.DataDir = viper.GetString("project.dataDir")
	}

	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}
}
