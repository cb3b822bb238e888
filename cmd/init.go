/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/RoadWing/internal/ui"
	"github.com/josephgoksu/RoadWing/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init <title>",
	Short: "Create a new roadmap and make it the current one",
	Long: `Create a roadmap and record it as the current roadmap in the
project config file, so subsequent commands act on it by default.

Examples:
  roadwing init "Q3 Platform Rewrite"
  roadwing init "Mobile App" --description "React Native client" --visibility link`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

var (
	initDescription string
	initVisibility  string
	initOwner       string
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initDescription, "description", "d", "", "roadmap description")
	initCmd.Flags().StringVar(&initVisibility, "visibility", string(models.VisibilityPrivate), "roadmap visibility (private, link)")
	initCmd.Flags().StringVar(&initOwner, "owner", "", "owner user id (default: current.userId or a fresh id)")
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	ownerID := initOwner
	if ownerID == "" {
		ownerID = cfg.CurrentUse.UserID
	}
	if ownerID == "" {
		ownerID = uuid.NewString()
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	roadmap, err := s.CreateRoadmap(models.Roadmap{
		ID:          uuid.NewString(),
		Title:       args[0],
		Description: initDescription,
		Visibility:  models.Visibility(initVisibility),
		OwnerID:     ownerID,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("create roadmap: %w", err)
	}

	if err := saveCurrentRoadmap(roadmap.ID, ownerID); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
	}

	trackCommand("init", nil)

	if isJSON() {
		return printJSON(roadmap)
	}

	fmt.Println(ui.RenderSuccessPanel("Roadmap created",
		fmt.Sprintf("%s\nID: %s\nOwner: %s", roadmap.Title, roadmap.ID, ownerID)))
	fmt.Println(ui.StyleSubtle.Render("Next: roadwing member add, then roadwing generate"))
	return nil
}

// saveCurrentRoadmap persists the active roadmap and user into the
// project-local config file.
func saveCurrentRoadmap(roadmapID, userID string) error {
	cfg := GetConfig()
	dir := filepath.Join(cfg.Project.RootDir, cfg.Project.DataDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	viper.Set("current.roadmapId", roadmapID)
	viper.Set("current.userId", userID)
	cfg.CurrentUse.RoadmapID = roadmapID
	cfg.CurrentUse.UserID = userID

	path := viper.ConfigFileUsed()
	if path == "" {
		path = filepath.Join(dir, configName+".yaml")
	}
	return viper.WriteConfigAs(path)
}
