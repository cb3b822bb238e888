/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/josephgoksu/RoadWing/internal/generate"
	"github.com/josephgoksu/RoadWing/internal/logger"
	"github.com/josephgoksu/RoadWing/internal/roster"
	"github.com/josephgoksu/RoadWing/internal/ui"
	"github.com/josephgoksu/RoadWing/types"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a task breakdown for the current roadmap",
	Long: `Generate tasks from a project description using the configured
LLM provider. Assignee suggestions are matched against the roadmap's
roster by exact email; unmatched suggestions leave the task unassigned.
The whole batch is stored atomically, then dependency edges are wired.

Examples:
  roadwing generate --title "Payments v2" --description "Stripe integration with webhooks"
  roadwing generate --title "MVP" --description-file brief.md --team team.yaml --timeline "8 weeks"`,
	RunE: runGenerate,
}

var (
	genTitle           string
	genDescription     string
	genDescriptionFile string
	genTimeline        string
	genPriority        string
	genTeamFile        string
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genTitle, "title", "", "project title (required)")
	generateCmd.Flags().StringVar(&genDescription, "description", "", "project description")
	generateCmd.Flags().StringVar(&genDescriptionFile, "description-file", "", "read the project description from a file")
	generateCmd.Flags().StringVar(&genTimeline, "timeline", "", "target timeline, e.g. \"8 weeks\"")
	generateCmd.Flags().StringVar(&genPriority, "priority", "", "overall priority (low, medium, high, critical)")
	generateCmd.Flags().StringVar(&genTeamFile, "team", "", "YAML team file overriding the stored roster for prompt context")
	_ = generateCmd.MarkFlagRequired("title")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	roadmapID, err := currentRoadmapID()
	if err != nil {
		return err
	}

	description := genDescription
	if genDescriptionFile != "" {
		data, err := os.ReadFile(genDescriptionFile)
		if err != nil {
			return fmt.Errorf("read description file: %w", err)
		}
		description = strings.TrimSpace(string(data))
	}
	if description == "" {
		return fmt.Errorf("a project description is required (--description or --description-file)")
	}
	logger.SetLastInput(description)

	cfg := GetConfig()
	llmCfg, err := llmConfigFromApp()
	if err != nil {
		return err
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	var team []types.TeamMemberInput
	if genTeamFile != "" {
		team, err = roster.LoadTeamFile(afero.NewOsFs(), genTeamFile)
		if err != nil {
			return fmt.Errorf("load team file: %w", err)
		}
	} else {
		members, err := s.ListMembers(roadmapID)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		for _, m := range members {
			team = append(team, types.TeamMemberInput{
				Name:       m.Name,
				Email:      m.Email,
				Skills:     m.Skills,
				Role:       m.Role,
				LoadFactor: m.LoadFactor,
			})
		}
	}
	if len(team) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: empty roster, tasks will be generated unassigned.")
	}

	tel := newTelemetryClient()
	defer func() { _ = tel.Close() }()
	svc := generate.NewService(s, generate.NewGenerator(llmCfg), tel, nil)

	timeout := time.Duration(cfg.LLM.RequestTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if !isQuiet() {
		fmt.Fprintln(os.Stderr, "Generating tasks...")
	}

	result, err := svc.GenerateTasks(ctx, types.GenerationRequest{
		RoadmapID:          roadmapID,
		ProjectTitle:       genTitle,
		ProjectDescription: description,
		TeamMembers:        team,
		Timeline:           genTimeline,
		Priority:           genPriority,
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if isJSON() {
		return printJSON(result)
	}

	renderGenerateResult(result)
	return nil
}

func renderGenerateResult(result *generate.Result) {
	var sb strings.Builder
	for _, t := range result.Tasks {
		fmt.Fprintf(&sb, "%s %s (%s, %s)\n", ui.StatusIcon(t.Status), t.Title, ui.TruncateID(t.ID), t.Priority)
	}
	fmt.Println(ui.RenderSuccessPanel(
		fmt.Sprintf("Created %d tasks in %d attempt(s)", result.TasksCreated, result.Attempts),
		strings.TrimRight(sb.String(), "\n")))

	if len(result.Warnings) > 0 {
		var wb strings.Builder
		for _, w := range result.Warnings {
			wb.WriteString(w.String())
			wb.WriteString("\n")
		}
		fmt.Println(ui.RenderWarningPanel("Warnings", strings.TrimRight(wb.String(), "\n")))
	}

	if len(result.Insights.Risks) > 0 || len(result.Insights.Recommendations) > 0 {
		var ib strings.Builder
		if result.Insights.TotalEstimatedHours > 0 {
			fmt.Fprintf(&ib, "Estimated effort: %gh\n", result.Insights.TotalEstimatedHours)
		}
		for _, r := range result.Insights.Risks {
			fmt.Fprintf(&ib, "Risk: %s\n", r)
		}
		for _, r := range result.Insights.Recommendations {
			fmt.Fprintf(&ib, "Recommendation: %s\n", r)
		}
		fmt.Println(ui.RenderPanel("Project insights", strings.TrimRight(ib.String(), "\n")))
	}
}
