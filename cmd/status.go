/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/RoadWing/internal/telemetry"
	"github.com/josephgoksu/RoadWing/internal/ui"
	"github.com/josephgoksu/RoadWing/models"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <task-id> <status>",
	Short: "Move a task to a new status",
	Long: `Set a task's status. Any transition between valid statuses is
allowed, including reopening a completed task.

Statuses: todo, in_progress, completed, blocked

Examples:
  roadwing status 4f2c1a9e-... in_progress
  roadwing status 4f2c1a9e-... completed`,
	Args: cobra.ExactArgs(2),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	id := args[0]
	status := models.TaskStatus(args[1])
	if !models.ValidStatus(status) {
		return fmt.Errorf("unknown status %q (use todo, in_progress, completed or blocked)", args[1])
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	before, err := s.GetTask(id)
	if err != nil {
		return err
	}

	task, err := s.UpdateTaskStatus(id, status)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	tel := newTelemetryClient()
	tel.Track(telemetry.EventStatusChanged, telemetry.Properties{
		"from": string(before.Status),
		"to":   string(task.Status),
	})
	_ = tel.Close()

	if isJSON() {
		return printJSON(task)
	}
	fmt.Printf("%s %s: %s → %s\n", ui.StatusIcon(task.Status), task.Title, before.Status, task.Status)
	return nil
}
