/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/RoadWing/internal/progress"
	"github.com/josephgoksu/RoadWing/internal/ui"
	"github.com/josephgoksu/RoadWing/models"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current roadmap's tasks",
	Long: `List tasks in timeline order (orderIndex, insertion order on ties).

Examples:
  roadwing list
  roadwing list --status in_progress
  roadwing list --json`,
	RunE: runList,
}

var listStatus string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (todo, in_progress, completed, blocked)")
}

func runList(cmd *cobra.Command, args []string) error {
	roadmapID, err := currentRoadmapID()
	if err != nil {
		return err
	}

	if listStatus != "" && !models.ValidStatus(models.TaskStatus(listStatus)) {
		return fmt.Errorf("unknown status %q", listStatus)
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	tasks, err := s.ListTasks(roadmapID)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	if listStatus != "" {
		filtered := tasks[:0]
		for _, t := range tasks {
			if t.Status == models.TaskStatus(listStatus) {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	if isJSON() {
		return printJSON(tasks)
	}

	if len(tasks) == 0 {
		cmd.Println("No tasks. Generate some with: roadwing generate")
		return nil
	}

	members, err := s.ListMembers(roadmapID)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	emailByID := make(map[string]string, len(members))
	for _, m := range members {
		emailByID[m.UserID] = m.Email
	}

	table := &ui.Table{
		Headers:  []string{"ID", "Title", "Status", "Pri", "Est", "%", "Assignee", "Depends"},
		MaxWidth: 36,
	}
	for _, t := range tasks {
		est := "-"
		if t.EstimateHours != nil {
			est = fmt.Sprintf("%gh", *t.EstimateHours)
		}
		assignee := "-"
		if t.AssigneeID != nil {
			if email, ok := emailByID[*t.AssigneeID]; ok {
				assignee = email
			} else {
				assignee = ui.TruncateID(*t.AssigneeID)
			}
		}
		depends := "-"
		if t.DependsOn != nil {
			depends = ui.TruncateID(*t.DependsOn)
		}
		table.Rows = append(table.Rows, []string{
			ui.TruncateID(t.ID),
			t.Title,
			string(t.Status),
			string(t.Priority),
			est,
			fmt.Sprintf("%d", progress.Percent(t.Status)),
			assignee,
			depends,
		})
	}
	fmt.Print(table.Render())
	return nil
}
