/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/josephgoksu/RoadWing/internal/config"
	"github.com/josephgoksu/RoadWing/internal/logger"
	"github.com/josephgoksu/RoadWing/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// roadmapFlag overrides the active roadmap for a single invocation.
	roadmapFlag string
	// ErrNoRoadmapSelected is returned when a command needs a roadmap but
	// none is configured or passed via --roadmap.
	ErrNoRoadmapSelected = errors.New("no roadmap selected: run 'roadwing init' or pass --roadmap")
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "roadwing",
	Short: "RoadWing CLI turns project briefs into scheduled team roadmaps.",
	Long: `RoadWing CLI is a roadmap planning tool for small teams.
It generates a task breakdown from a project description with an LLM,
resolves assignees against your roster, wires task dependencies and
derives a week-by-week timeline you can inspect from the terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logger.HandlePanic()

	name := "roadwing"
	if len(os.Args) > 1 {
		name = os.Args[1]
	}
	logger.SetContext(name, version, config.DefaultDataDir)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.roadwing.yaml or ./.roadwing.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&roadmapFlag, "roadmap", "", "roadmap id to operate on (default: current.roadmapId from config)")
	rootCmd.PersistentFlags().Bool("json", false, "machine-readable JSON output")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

// GetDataFilePath returns the full path to the roadmap data file for the
// configured backend.
func GetDataFilePath() string {
	cfg := GetConfig()
	file := cfg.Data.File
	if cfg.Data.Backend == "sqlite" && file == config.DefaultDataFile {
		file = config.DefaultSQLiteFile
	}
	return filepath.Join(cfg.Project.RootDir, cfg.Project.DataDir, file)
}

// GetStore initializes and returns the roadmap store selected by
// data.backend in the unified types.AppConfig.
func GetStore() (store.RoadmapStore, error) {
	cfg := GetConfig()
	dataFilePath := GetDataFilePath()

	var s store.RoadmapStore
	switch cfg.Data.Backend {
	case "sqlite":
		s = store.NewSQLiteRoadmapStore()
	default:
		s = store.NewFileRoadmapStore()
	}

	err := s.Initialize(map[string]string{
		"dataFile":       dataFilePath,
		"dataFileFormat": cfg.Data.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", dataFilePath, err)
	}
	return s, nil
}

// currentRoadmapID resolves the roadmap a command should act on: the
// --roadmap flag wins, then current.roadmapId from config.
func currentRoadmapID() (string, error) {
	if roadmapFlag != "" {
		return roadmapFlag, nil
	}
	cfg := GetConfig()
	if cfg.CurrentUse.RoadmapID != "" {
		return cfg.CurrentUse.RoadmapID, nil
	}
	return "", ErrNoRoadmapSelected
}
