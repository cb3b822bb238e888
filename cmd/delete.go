/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Long: `Delete a task by id. Tasks that depended on it have their
dependency cleared rather than being deleted themselves.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteForce bool

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "delete without confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	task, err := s.GetTask(args[0])
	if err != nil {
		return err
	}

	if !deleteForce {
		if !confirmOrAbort(fmt.Sprintf("Delete %q? [y/N] ", task.Title)) {
			return nil
		}
	}

	if err := s.DeleteTask(task.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	trackCommand("delete", nil)

	if isJSON() {
		return printJSON(map[string]string{"status": "deleted", "id": task.ID})
	}
	fmt.Printf("Deleted %q\n", task.Title)
	return nil
}
