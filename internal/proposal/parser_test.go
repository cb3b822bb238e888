package proposal

import (
	"testing"

	"github.com/josephgoksu/RoadWing/models"
	"github.com/josephgoksu/RoadWing/types"
)

func TestParse_FencedBlock(t *testing.T) {
	input := "Here you go:\n```json\n{\"tasks\":[{\"title\":\"A\"}]}\n```"

	proposals, _, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(proposals) != 1 {
		t.Fatalf("expected 1 proposal, got %d", len(proposals))
	}
	p := proposals[0]
	if p.Title != "A" {
		t.Errorf("title = %q, want %q", p.Title, "A")
	}
	if p.Priority != models.PriorityMedium {
		t.Errorf("default priority = %q, want medium", p.Priority)
	}
	if p.OrderIndex != 0 {
		t.Errorf("default order index = %d, want 0", p.OrderIndex)
	}
}

func TestParse_NoJSONAnywhere(t *testing.T) {
	proposals, _, err := Parse("Sorry, I cannot help with that.")
	if err == nil {
		t.Fatal("expected MalformedResponse error, got nil")
	}
	if !types.IsMalformedResponse(err) {
		t.Errorf("expected MalformedResponseError, got %T", err)
	}
	if len(proposals) != 0 {
		t.Errorf("expected zero proposals, got %d", len(proposals))
	}
}

func TestParse_MissingTasksArray(t *testing.T) {
	_, _, err := Parse(`{"project_insights": {"risks": ["none"]}}`)
	if !types.IsMalformedResponse(err) {
		t.Errorf("expected MalformedResponseError for missing tasks array, got %v", err)
	}
}

func TestParse_EntryWithoutTitle(t *testing.T) {
	_, _, err := Parse(`{"tasks":[{"title":"ok"},{"description":"no title"}]}`)
	if !types.IsMalformedResponse(err) {
		t.Errorf("expected MalformedResponseError for missing title, got %v", err)
	}
}

func TestParse_FullTask(t *testing.T) {
	input := `{"tasks":[{
		"title":"Build API",
		"description":"REST endpoints",
		"assignee_email":"dev@example.com",
		"estimated_hours": 24,
		"priority":"HIGH",
		"skills_required":["go"],
		"depends_on_title":"Design schema",
		"order_index": 3,
		"reasoning":"backend skills"
	}]}`

	proposals, _, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	p := proposals[0]
	if p.AssigneeEmail != "dev@example.com" {
		t.Errorf("assignee = %q", p.AssigneeEmail)
	}
	if p.EstimateHours == nil || *p.EstimateHours != 24 {
		t.Errorf("estimate = %v, want 24", p.EstimateHours)
	}
	if p.Priority != models.PriorityHigh {
		t.Errorf("priority = %q, want high (case-insensitive)", p.Priority)
	}
	if p.DependsOnTitle != "Design schema" {
		t.Errorf("depends_on_title = %q", p.DependsOnTitle)
	}
	if p.OrderIndex != 3 {
		t.Errorf("order index = %d, want 3", p.OrderIndex)
	}
}

func TestParse_LiteralNullDependency(t *testing.T) {
	input := `{"tasks":[{"title":"A","depends_on_title":"null"},{"title":"B","depends_on_title":"None"}]}`

	proposals, _, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	for _, p := range proposals {
		if p.DependsOnTitle != "" {
			t.Errorf("proposal %q: literal null should mean no dependency, got %q", p.Title, p.DependsOnTitle)
		}
	}
}

func TestParse_UnknownPriorityFallsBack(t *testing.T) {
	proposals, _, err := Parse(`{"tasks":[{"title":"A","priority":"urgent"}]}`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if proposals[0].Priority != models.PriorityMedium {
		t.Errorf("unknown priority should normalize to medium, got %q", proposals[0].Priority)
	}
}

func TestParse_NegativeEstimateRejected(t *testing.T) {
	_, _, err := Parse(`{"tasks":[{"title":"A","estimated_hours":-5}]}`)
	if !types.IsMalformedResponse(err) {
		t.Errorf("expected MalformedResponseError for negative estimate, got %v", err)
	}
}

func TestParse_PositionalOrderIndexes(t *testing.T) {
	proposals, _, err := Parse(`{"tasks":[{"title":"A"},{"title":"B"},{"title":"C"}]}`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	for i, p := range proposals {
		if p.OrderIndex != i {
			t.Errorf("proposal %d order index = %d, want %d", i, p.OrderIndex, i)
		}
	}
}

func TestParse_ProjectInsights(t *testing.T) {
	input := `{"tasks":[{"title":"A"}],"project_insights":{"total_estimated_hours":120,"risks":["scope creep"]}}`

	_, insights, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if insights.TotalEstimatedHours != 120 {
		t.Errorf("insights hours = %v, want 120", insights.TotalEstimatedHours)
	}
	if len(insights.Risks) != 1 || insights.Risks[0] != "scope creep" {
		t.Errorf("insights risks = %v", insights.Risks)
	}
}

func TestParse_Idempotent(t *testing.T) {
	input := "```json\n{\"tasks\":[{\"title\":\"A\",\"assignee_email\":\"a@b.c\"}]}\n```"

	first, _, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	second, _, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("proposal counts differ: %d vs %d", len(first), len(second))
	}
	if first[0].Title != second[0].Title || first[0].AssigneeEmail != second[0].AssigneeEmail {
		t.Error("Parse is not deterministic for identical input")
	}
}
