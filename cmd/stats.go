/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/RoadWing/internal/progress"
	"github.com/josephgoksu/RoadWing/internal/ui"
	"github.com/josephgoksu/RoadWing/types"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show project statistics for the current roadmap",
	Long: `Recompute and display project statistics from the full task set:
task counts per status, estimated hours and completion.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	roadmapID, err := currentRoadmapID()
	if err != nil {
		return err
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	roadmap, err := s.GetRoadmap(roadmapID)
	if err != nil {
		return err
	}
	if !roadmap.Readable(GetConfig().CurrentUse.UserID) {
		return fmt.Errorf("roadmap %q is private: %w", roadmap.Title, types.ErrAccessDenied)
	}
	tasks, err := s.ListTasks(roadmapID)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	stats := progress.Compute(tasks)

	if isJSON() {
		return printJSON(stats)
	}

	ui.RenderPageHeader(roadmap.Title, "Project statistics")
	fmt.Println(ui.RenderStats(stats))
	return nil
}
