/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// GenerationRequest describes one generation-service call: the project to
// break down and the team the generator may assign tasks to.
type GenerationRequest struct {
	RoadmapID          string            `json:"roadmapId"`
	ProjectTitle       string            `json:"projectTitle"`
	ProjectDescription string            `json:"projectDescription"`
	TeamMembers        []TeamMemberInput `json:"teamMembers"`
	Timeline           string            `json:"timeline,omitempty"`
	Priority           string            `json:"priority,omitempty"`
}

// TeamMemberInput is the roster slice sent to the generator so it can match
// tasks to skills and load.
type TeamMemberInput struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Skills     []string `json:"skills"`
	Role       string   `json:"role"`
	LoadFactor float64  `json:"load_factor"`
}

// ProjectInsights is the free-form analysis block the generator returns next
// to the task list. Parsed leniently; every field is optional.
type ProjectInsights struct {
	TotalEstimatedHours   float64  `json:"total_estimated_hours,omitempty"`
	CriticalPathTasks     []string `json:"critical_path_tasks,omitempty"`
	ParallelOpportunities []string `json:"parallel_opportunities,omitempty"`
	Risks                 []string `json:"risks,omitempty"`
	Recommendations       []string `json:"recommendations,omitempty"`
}
