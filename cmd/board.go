/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/RoadWing/internal/ui"
	"github.com/josephgoksu/RoadWing/types"
	"github.com/spf13/cobra"
)

// boardCmd represents the board command
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the current roadmap as a Kanban board",
	RunE:  runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
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
	members, err := s.ListMembers(roadmapID)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}

	if isJSON() {
		return printJSON(tasks)
	}

	ui.RenderPageHeader(roadmap.Title, fmt.Sprintf("%d tasks", len(tasks)))
	fmt.Println(ui.RenderBoard(tasks, members))
	return nil
}
