/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// dependCmd represents the depend command
var dependCmd = &cobra.Command{
	Use:   "depend <task-id> <depends-on-id>",
	Short: "Set or clear a task's dependency",
	Long: `Set the task a task depends on. Both tasks must belong to the
same roadmap and the edge may not create a cycle.

Pass "none" as the second argument to clear the dependency.

Examples:
  roadwing depend 4f2c... 9a1b...
  roadwing depend 4f2c... none`,
	Args: cobra.ExactArgs(2),
	RunE: runDepend,
}

func init() {
	rootCmd.AddCommand(dependCmd)
}

func runDepend(cmd *cobra.Command, args []string) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	task, err := s.GetTask(args[0])
	if err != nil {
		return err
	}

	var dependsOn *string
	if args[1] != "none" {
		dep := args[1]
		dependsOn = &dep
	}

	if err := s.SetTaskDependency(task.ID, dependsOn); err != nil {
		return fmt.Errorf("set dependency: %w", err)
	}

	if dependsOn == nil {
		fmt.Printf("Cleared dependency of %q\n", task.Title)
	} else {
		fmt.Printf("%q now depends on %s\n", task.Title, *dependsOn)
	}
	return nil
}
