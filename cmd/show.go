/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/RoadWing/internal/progress"
	"github.com/josephgoksu/RoadWing/internal/ui"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show one task in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	task, err := s.GetTask(args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(task)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ID:       %s\n", task.ID)
	fmt.Fprintf(&sb, "Status:   %s %s (%d%%)\n", ui.StatusIcon(task.Status), task.Status, progress.Percent(task.Status))
	fmt.Fprintf(&sb, "Priority: %s\n", task.Priority)
	if task.EstimateHours != nil {
		fmt.Fprintf(&sb, "Estimate: %gh\n", *task.EstimateHours)
	}
	if task.AssigneeID != nil {
		fmt.Fprintf(&sb, "Assignee: %s\n", *task.AssigneeID)
	}
	if task.DependsOn != nil {
		dep, err := s.GetTask(*task.DependsOn)
		if err == nil {
			fmt.Fprintf(&sb, "Depends:  %s (%s)\n", dep.Title, ui.TruncateID(dep.ID))
		} else {
			fmt.Fprintf(&sb, "Depends:  %s\n", *task.DependsOn)
		}
	}
	if task.AIGenerated {
		sb.WriteString("Origin:   generated")
		if task.GeneratedAt != nil {
			fmt.Fprintf(&sb, " at %s", task.GeneratedAt.Format("2006-01-02 15:04"))
		}
		sb.WriteString("\n")
	}
	if task.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", task.Description)
	}

	fmt.Println(ui.RenderPanel(task.Title, strings.TrimRight(sb.String(), "\n")))
	return nil
}
