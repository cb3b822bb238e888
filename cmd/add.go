/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/RoadWing/internal/ui"
	"github.com/josephgoksu/RoadWing/models"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task to the current roadmap manually",
	Long: `Add a single task without going through generation.

Examples:
  roadwing add "Set up CI" --estimate 4 --priority high
  roadwing add "Deploy staging" --depends-on 4f2c... --assignee alice@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var (
	addDescription string
	addPriority    string
	addEstimate    float64
	addAssignee    string
	addDependsOn   string
	addOrder       int
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "priority (low, medium, high, critical)")
	addCmd.Flags().Float64VarP(&addEstimate, "estimate", "e", 0, "estimate in hours")
	addCmd.Flags().StringVar(&addAssignee, "assignee", "", "assignee email (must match a roster member)")
	addCmd.Flags().StringVar(&addDependsOn, "depends-on", "", "id of the task this one depends on")
	addCmd.Flags().IntVar(&addOrder, "order", 0, "position on the timeline (default: after existing tasks)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	roadmapID, err := currentRoadmapID()
	if err != nil {
		return err
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	task := models.Task{
		ID:          uuid.NewString(),
		RoadmapID:   roadmapID,
		Title:       args[0],
		Description: addDescription,
		Priority:    models.TaskPriority(addPriority),
		OrderIndex:  addOrder,
		CreatedAt:   time.Now().UTC(),
	}

	if cmd.Flags().Changed("estimate") {
		task.EstimateHours = &addEstimate
	}
	if cmd.Flags().Changed("depends-on") {
		task.DependsOn = &addDependsOn
	}
	if !cmd.Flags().Changed("order") {
		existing, err := s.ListTasks(roadmapID)
		if err != nil {
			return fmt.Errorf("list tasks: %w", err)
		}
		for _, t := range existing {
			if t.OrderIndex >= task.OrderIndex {
				task.OrderIndex = t.OrderIndex + 1
			}
		}
	}

	if addAssignee != "" {
		members, err := s.ListMembers(roadmapID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		for _, m := range members {
			if m.Email == addAssignee {
				id := m.UserID
				task.AssigneeID = &id
				break
			}
		}
		if task.AssigneeID == nil {
			return fmt.Errorf("no roster member with email %q", addAssignee)
		}
	}

	created, err := s.CreateTask(task)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	trackCommand("add", nil)

	if isJSON() {
		return printJSON(created)
	}
	fmt.Printf("%s %s (%s)\n", ui.StatusIcon(created.Status), created.Title, ui.TruncateID(created.ID))
	return nil
}
