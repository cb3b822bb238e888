package generate

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/josephgoksu/RoadWing/types"
)

// taskPromptTemplate asks the model for a full task breakdown with
// assignments. The schema block matches what the proposal parser expects.
const taskPromptTemplate = `You are an expert project manager and task planner. Analyze the following project and create a comprehensive task breakdown with intelligent assignments.

PROJECT DETAILS:
Title: {{.ProjectTitle}}
Description: {{.ProjectDescription}}
Timeline: {{.Timeline}}
Priority: {{.Priority}}

TEAM MEMBERS:
{{.TeamSkillsInfo}}
{{if .ValidationErrors}}
{{.ValidationErrors}}
{{end}}
REQUIREMENTS:
1. Break down the project into 8-15 specific, actionable tasks
2. Consider task dependencies and logical sequencing
3. Assign tasks to team members based on their skills and load factors
4. Estimate realistic hours for each task (consider complexity and team member experience)
5. Set appropriate priorities (high, medium, low)
6. Identify which tasks can run in parallel vs sequential

Return a JSON response with this exact structure:
{
  "tasks": [
    {
      "title": "Task title",
      "description": "Detailed task description",
      "assignee_email": "team_member@email.com",
      "estimated_hours": 8,
      "priority": "high|medium|low",
      "skills_required": ["skill1", "skill2"],
      "depends_on_title": "Previous task title or null",
      "order_index": 1,
      "reasoning": "Why this task is assigned to this person"
    }
  ],
  "project_insights": {
    "total_estimated_hours": 120,
    "critical_path_tasks": ["Task 1", "Task 2"],
    "parallel_opportunities": ["Task 3", "Task 4"],
    "risks": ["Potential bottleneck in Task 5"],
    "recommendations": ["Consider additional resources for Task 6"]
  }
}

Be thorough but practical. Focus on real-world implementation and consider the team's skill distribution. Output ONLY valid JSON.`

// buildPrompt renders the task generation prompt for a request, optionally
// including feedback from a failed previous attempt.
func buildPrompt(req types.GenerationRequest, validationErrors string) (string, error) {
	tmpl, err := template.New("prompt").Parse(taskPromptTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	timeline := req.Timeline
	if timeline == "" {
		timeline = "Not specified"
	}
	priority := req.Priority
	if priority == "" {
		priority = "Medium"
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"ProjectTitle":       req.ProjectTitle,
		"ProjectDescription": req.ProjectDescription,
		"Timeline":           timeline,
		"Priority":           priority,
		"TeamSkillsInfo":     formatTeamInfo(req.TeamMembers),
		"ValidationErrors":   validationErrors,
	})
	if err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// formatTeamInfo renders one roster line per member so the model can weigh
// skills and load factors.
func formatTeamInfo(members []types.TeamMemberInput) string {
	if len(members) == 0 {
		return "- (no team members provided)"
	}

	lines := make([]string, len(members))
	for i, m := range members {
		lines[i] = fmt.Sprintf("- %s (%s): Skills: [%s], Load Factor: %g",
			m.Name, m.Role, strings.Join(m.Skills, ", "), m.LoadFactor)
	}
	return strings.Join(lines, "\n")
}

// formatErrorFeedback creates a prompt section describing why the previous
// attempt was rejected.
func formatErrorFeedback(errorMsg, rawOutput string) string {
	truncated := rawOutput
	if len(truncated) > 500 {
		truncated = truncated[:500] + "... [truncated]"
	}

	return fmt.Sprintf(`
PREVIOUS ATTEMPT FAILED - PLEASE FIX

Error: %s

Your previous output (which failed):
%s

Please ensure your response is valid JSON matching the required schema.
`, errorMsg, truncated)
}
