/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import "fmt"

// WarningKind classifies a non-fatal degradation recorded while processing a
// generation batch. Warnings never fail the batch; they are surfaced for
// logs and telemetry.
type WarningKind string

const (
	// WarnUnresolvedAssignee: assignee email had no exact match in the roster;
	// the task was created unassigned.
	WarnUnresolvedAssignee WarningKind = "unresolved_assignee"

	// WarnDanglingDependency: depends_on_title did not resolve inside the
	// batch; the dependency was dropped.
	WarnDanglingDependency WarningKind = "dangling_dependency"

	// WarnSelfDependency: a task named itself as its own dependency; the edge
	// was dropped.
	WarnSelfDependency WarningKind = "self_dependency"

	// WarnCyclicDependency: following the dependency chain revisited a task;
	// the offending edge was dropped.
	WarnCyclicDependency WarningKind = "cyclic_dependency"

	// WarnDuplicateTitle: two proposals in one batch share a title; dependency
	// references resolve to the first occurrence.
	WarnDuplicateTitle WarningKind = "duplicate_title"
)

// Warning records one non-fatal degradation tied to a task in a batch.
type Warning struct {
	Kind      WarningKind `json:"kind"`
	TaskTitle string      `json:"taskTitle"`
	Detail    string      `json:"detail,omitempty"`
}

func (w Warning) String() string {
	if w.Detail == "" {
		return fmt.Sprintf("%s: %q", w.Kind, w.TaskTitle)
	}
	return fmt.Sprintf("%s: %q (%s)", w.Kind, w.TaskTitle, w.Detail)
}
