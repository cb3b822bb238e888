/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import (
	"errors"
	"fmt"
)

// ErrRoadmapNotFound is returned when a roadmap ID does not exist in the store.
var ErrRoadmapNotFound = errors.New("roadmap not found")

// ErrTaskNotFound is returned when a task ID does not exist in the store.
var ErrTaskNotFound = errors.New("task not found")

// ErrAccessDenied is returned when a user may not read a roadmap.
var ErrAccessDenied = errors.New("access denied")

// MalformedResponseError is batch-fatal: the generation service output did
// not contain a parseable JSON object with a tasks array. No tasks are
// created when this is returned.
type MalformedResponseError struct {
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed generation response: %s", e.Reason)
}

// IsMalformedResponse reports whether err is (or wraps) a MalformedResponseError.
func IsMalformedResponse(err error) bool {
	var m *MalformedResponseError
	return errors.As(err, &m)
}

// StoreFailureError is batch-fatal: the bulk insert (the atomic commit point
// of a generation batch) failed. Dependency patches are best-effort and never
// escalate to this error.
type StoreFailureError struct {
	Op  string
	Err error
}

func (e *StoreFailureError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreFailureError) Unwrap() error { return e.Err }
