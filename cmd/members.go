/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/josephgoksu/RoadWing/internal/ui"
	"github.com/josephgoksu/RoadWing/models"
	"github.com/spf13/cobra"
)

// memberCmd groups roster management subcommands.
var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Manage the roadmap's team roster",
}

var memberAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Add a team member to the current roadmap",
	Long: `Add a team member. The email is the identity the generator's
assignee suggestions are matched against, so it must be exact.

Examples:
  roadwing member add alice@example.com --name Alice --role "Backend" --skills go,postgres
  roadwing member add bob@example.com --load 0.5`,
	Args: cobra.ExactArgs(1),
	RunE: runMemberAdd,
}

var memberListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the current roadmap's team members",
	RunE:  runMemberList,
}

var (
	memberName   string
	memberRole   string
	memberSkills []string
	memberLoad   float64
)

func init() {
	rootCmd.AddCommand(memberCmd)
	memberCmd.AddCommand(memberAddCmd)
	memberCmd.AddCommand(memberListCmd)

	memberAddCmd.Flags().StringVar(&memberName, "name", "", "display name")
	memberAddCmd.Flags().StringVar(&memberRole, "role", "", "role, e.g. \"Frontend Engineer\"")
	memberAddCmd.Flags().StringSliceVar(&memberSkills, "skills", nil, "comma-separated skills")
	memberAddCmd.Flags().Float64Var(&memberLoad, "load", 1.0, "availability in (0,1]")
}

func runMemberAdd(cmd *cobra.Command, args []string) error {
	roadmapID, err := currentRoadmapID()
	if err != nil {
		return err
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	member := models.NewMember(uuid.NewString(), roadmapID, args[0])
	member.Name = memberName
	member.Role = memberRole
	member.Skills = memberSkills
	member.LoadFactor = memberLoad

	created, err := s.AddMember(*member)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}

	trackCommand("member_add", nil)

	if isJSON() {
		return printJSON(created)
	}
	fmt.Printf("Added %s (%s)\n", created.Email, ui.TruncateID(created.UserID))
	return nil
}

func runMemberList(cmd *cobra.Command, args []string) error {
	roadmapID, err := currentRoadmapID()
	if err != nil {
		return err
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	members, err := s.ListMembers(roadmapID)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}

	if isJSON() {
		return printJSON(members)
	}

	if len(members) == 0 {
		cmd.Println("No members yet. Add one with: roadwing member add <email>")
		return nil
	}

	table := &ui.Table{
		Headers:  []string{"ID", "Email", "Name", "Role", "Skills", "Load"},
		MaxWidth: 30,
	}
	for _, m := range members {
		table.Rows = append(table.Rows, []string{
			ui.TruncateID(m.UserID),
			m.Email,
			m.Name,
			m.Role,
			fmt.Sprintf("%v", m.Skills),
			fmt.Sprintf("%g", m.LoadFactor),
		})
	}
	fmt.Print(table.Render())
	return nil
}
