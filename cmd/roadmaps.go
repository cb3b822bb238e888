/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/RoadWing/internal/ui"
	"github.com/spf13/cobra"
)

// roadmapsCmd represents the roadmaps command
var roadmapsCmd = &cobra.Command{
	Use:   "roadmaps",
	Short: "List all roadmaps in the store",
	RunE:  runRoadmaps,
}

// useCmd represents the use command
var useCmd = &cobra.Command{
	Use:   "use <roadmap-id>",
	Short: "Make a roadmap the current one",
	Args:  cobra.ExactArgs(1),
	RunE:  runUse,
}

func init() {
	rootCmd.AddCommand(roadmapsCmd)
	rootCmd.AddCommand(useCmd)
}

func runRoadmaps(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	roadmaps, err := s.ListRoadmaps()
	if err != nil {
		return fmt.Errorf("list roadmaps: %w", err)
	}

	if isJSON() {
		return printJSON(roadmaps)
	}

	if len(roadmaps) == 0 {
		cmd.Println("No roadmaps. Create one with: roadwing init <title>")
		return nil
	}

	current := GetConfig().CurrentUse.RoadmapID
	table := &ui.Table{
		Headers:  []string{"", "ID", "Title", "Visibility", "Created"},
		MaxWidth: 40,
	}
	for _, r := range roadmaps {
		marker := ""
		if r.ID == current {
			marker = "*"
		}
		table.Rows = append(table.Rows, []string{
			marker,
			ui.TruncateID(r.ID),
			r.Title,
			string(r.Visibility),
			r.CreatedAt.Format("2006-01-02"),
		})
	}
	fmt.Print(table.Render())
	return nil
}

func runUse(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	roadmap, err := s.GetRoadmap(args[0])
	if err != nil {
		return err
	}

	if err := saveCurrentRoadmap(roadmap.ID, GetConfig().CurrentUse.UserID); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("Now using %q (%s)\n", roadmap.Title, ui.TruncateID(roadmap.ID))
	return nil
}
