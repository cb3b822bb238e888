// Package proposal turns raw generation-service output into validated task
// proposals. It is a pure transform: no storage, no network.
package proposal

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/RoadWing/internal/utils"
	"github.com/josephgoksu/RoadWing/models"
	"github.com/josephgoksu/RoadWing/types"
)

// Proposal is a not-yet-persisted candidate task, parsed from generator
// output, before id assignment and dependency resolution.
type Proposal struct {
	Title          string
	Description    string
	AssigneeEmail  string
	EstimateHours  *float64
	Priority       models.TaskPriority
	SkillsRequired []string
	// DependsOnTitle names another proposal in the same batch; empty means no
	// dependency. Resolution to an ID happens in the graph builder.
	DependsOnTitle string
	OrderIndex     int
	Reasoning      string
}

// response mirrors the JSON object the generator is prompted to return.
// Everything is optional except tasks[].title; the generator is a free-text
// model and may omit or misname fields, so shapes are validated field by
// field after decoding.
type response struct {
	Tasks           []rawTask             `json:"tasks"`
	ProjectInsights types.ProjectInsights `json:"project_insights"`
}

type rawTask struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	AssigneeEmail  string   `json:"assignee_email"`
	EstimatedHours *float64 `json:"estimated_hours"`
	Priority       string   `json:"priority"`
	SkillsRequired []string `json:"skills_required"`
	DependsOnTitle string   `json:"depends_on_title"`
	OrderIndex     *int     `json:"order_index"`
	Reasoning      string   `json:"reasoning"`
}

// Parse extracts the first JSON object from raw generator text and validates
// it into a list of proposals. It returns a *types.MalformedResponseError
// when no parseable object with a tasks array is found; that error is
// batch-fatal and no partial import is attempted.
func Parse(raw string) ([]Proposal, types.ProjectInsights, error) {
	resp, err := utils.ExtractAndParseJSON[response](raw)
	if err != nil {
		return nil, types.ProjectInsights{}, &types.MalformedResponseError{
			Reason: err.Error(),
			Raw:    raw,
		}
	}
	if resp.Tasks == nil {
		return nil, types.ProjectInsights{}, &types.MalformedResponseError{
			Reason: "response has no tasks array",
			Raw:    raw,
		}
	}

	proposals := make([]Proposal, 0, len(resp.Tasks))
	for i, rt := range resp.Tasks {
		title := strings.TrimSpace(rt.Title)
		if title == "" {
			return nil, types.ProjectInsights{}, &types.MalformedResponseError{
				Reason: fmt.Sprintf("task %d has no title", i),
				Raw:    raw,
			}
		}

		if rt.EstimatedHours != nil && *rt.EstimatedHours < 0 {
			return nil, types.ProjectInsights{}, &types.MalformedResponseError{
				Reason: fmt.Sprintf("task %d has negative estimate %v", i, *rt.EstimatedHours),
				Raw:    raw,
			}
		}

		orderIndex := i
		if rt.OrderIndex != nil {
			orderIndex = *rt.OrderIndex
		}

		proposals = append(proposals, Proposal{
			Title:          title,
			Description:    strings.TrimSpace(rt.Description),
			AssigneeEmail:  strings.TrimSpace(rt.AssigneeEmail),
			EstimateHours:  rt.EstimatedHours,
			Priority:       normalizePriority(rt.Priority),
			SkillsRequired: rt.SkillsRequired,
			DependsOnTitle: normalizeDependsOn(rt.DependsOnTitle),
			OrderIndex:     orderIndex,
			Reasoning:      strings.TrimSpace(rt.Reasoning),
		})
	}

	return proposals, resp.ProjectInsights, nil
}

// normalizePriority maps generator output onto the priority enum. Unknown or
// missing values fall back to medium rather than failing the batch.
func normalizePriority(raw string) models.TaskPriority {
	p := models.TaskPriority(strings.ToLower(strings.TrimSpace(raw)))
	if models.ValidPriority(p) {
		return p
	}
	return models.PriorityMedium
}

// normalizeDependsOn treats the literal strings "null" and "none" as no
// dependency. The prompt says "Previous task title or null" and some models
// take that literally.
func normalizeDependsOn(raw string) string {
	dep := strings.TrimSpace(raw)
	switch strings.ToLower(dep) {
	case "", "null", "none":
		return ""
	}
	return dep
}
