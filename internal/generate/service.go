package generate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/josephgoksu/RoadWing/internal/graph"
	"github.com/josephgoksu/RoadWing/internal/roster"
	"github.com/josephgoksu/RoadWing/internal/telemetry"
	"github.com/josephgoksu/RoadWing/models"
	"github.com/josephgoksu/RoadWing/store"
	"github.com/josephgoksu/RoadWing/types"
)

// Service orchestrates a generation batch end to end.
type Service struct {
	store     store.RoadmapStore
	generator *Generator
	telemetry telemetry.Client
	logger    *slog.Logger
}

// NewService wires a generation service. telemetryClient and logger may be
// nil; a noop client and the default slog logger are used.
func NewService(st store.RoadmapStore, gen *Generator, telemetryClient telemetry.Client, logger *slog.Logger) *Service {
	if telemetryClient == nil {
		telemetryClient = telemetry.NewNoopClient()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     st,
		generator: gen,
		telemetry: telemetryClient,
		logger:    logger,
	}
}

// Result summarizes a completed generation batch.
type Result struct {
	TasksCreated int
	Tasks        []models.Task
	Warnings     []types.Warning
	Insights     types.ProjectInsights
	Attempts     int
}

// GenerateTasks runs the full pipeline for one roadmap: generate proposals,
// resolve assignees against the roadmap's members, build the dependency
// graph, persist the batch atomically and then patch dependency edges.
// Unresolvable assignees and dropped edges degrade to warnings; a malformed
// model response or a store failure fails the whole batch.
func (s *Service) GenerateTasks(ctx context.Context, req types.GenerationRequest) (*Result, error) {
	roadmap, err := s.store.GetRoadmap(req.RoadmapID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("generating tasks",
		"roadmap", roadmap.ID,
		"project", req.ProjectTitle,
		"team_size", len(req.TeamMembers))

	proposals, err := s.generator.Propose(ctx, req)
	if err != nil {
		s.telemetry.Track(telemetry.EventBatchFailed, telemetry.Properties{
			"roadmap_id": roadmap.ID,
		})
		return nil, err
	}

	members, err := s.store.ListMembers(roadmap.ID)
	if err != nil {
		return nil, err
	}
	refs := make([]roster.MemberRef, len(members))
	for i, m := range members {
		refs[i] = roster.MemberRef{ID: m.UserID, Email: m.Email}
	}

	resolved, warnings := roster.Resolve(proposals.Tasks, refs)

	tasks, graphWarnings := graph.BuildBatch(roadmap.ID, resolved, time.Now().UTC())
	warnings = append(warnings, graphWarnings...)

	for _, w := range warnings {
		s.logger.Warn("generation warning", "kind", string(w.Kind), "task", w.TaskTitle, "detail", w.Detail)
		if w.Kind == types.WarnCyclicDependency || w.Kind == types.WarnDanglingDependency {
			s.telemetry.Track(telemetry.EventEdgeDropped, telemetry.Properties{
				"kind": string(w.Kind),
			})
		}
	}

	// Insert without edges first, then patch, so a row never references a
	// task that is not persisted yet.
	insert := make([]models.Task, len(tasks))
	copy(insert, tasks)
	for i := range insert {
		insert[i].DependsOn = nil
	}

	created, err := s.store.BulkCreateTasks(insert)
	if err != nil {
		s.telemetry.Track(telemetry.EventBatchFailed, telemetry.Properties{
			"roadmap_id": roadmap.ID,
		})
		return nil, fmt.Errorf("persist batch: %w", err)
	}

	for _, t := range tasks {
		if t.DependsOn == nil {
			continue
		}
		if err := s.store.SetTaskDependency(t.ID, t.DependsOn); err != nil {
			// The batch is already persisted; a failed edge patch degrades
			// to a warning rather than failing the batch.
			s.logger.Warn("set dependency failed", "task", t.ID, "error", err)
			warnings = append(warnings, types.Warning{
				Kind:      types.WarnDanglingDependency,
				TaskTitle: t.Title,
				Detail:    fmt.Sprintf("dependency not persisted: %v", err),
			})
		}
	}

	s.telemetry.Track(telemetry.EventBatchGenerated, telemetry.Properties{
		"roadmap_id":    roadmap.ID,
		"tasks_created": len(created),
		"warnings":      len(warnings),
		"attempts":      proposals.Attempts,
	})

	s.logger.Info("batch generated",
		"roadmap", roadmap.ID,
		"tasks_created", len(created),
		"warnings", len(warnings))

	result := &Result{
		TasksCreated: len(created),
		Tasks:        tasks,
		Warnings:     warnings,
		Insights:     proposals.Insights,
		Attempts:     proposals.Attempts,
	}
	return result, nil
}
