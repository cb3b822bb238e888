// Package roster maps human-readable assignee references onto roadmap member
// IDs and loads team rosters from files.
package roster

import (
	"github.com/josephgoksu/RoadWing/internal/proposal"
	"github.com/josephgoksu/RoadWing/types"
)

// MemberRef is the minimal roster entry the resolver needs.
type MemberRef struct {
	ID    string
	Email string
}

// Resolved pairs a proposal with its resolved assignee. AssigneeID is nil
// when the proposal had no assignee or the email had no roster match.
type Resolved struct {
	proposal.Proposal
	AssigneeID *string
}

// Resolve replaces each proposal's assignee email with the matching member
// ID. Lookup is an exact, case-sensitive match; there is no fuzzy matching.
// Unresolved emails degrade to unassigned with a warning and never fail the
// batch. Resolve is idempotent: the same proposals and roster always produce
// the same assignments.
func Resolve(proposals []proposal.Proposal, roster []MemberRef) ([]Resolved, []types.Warning) {
	byEmail := make(map[string]string, len(roster))
	for _, m := range roster {
		if _, dup := byEmail[m.Email]; !dup {
			byEmail[m.Email] = m.ID
		}
	}

	resolved := make([]Resolved, 0, len(proposals))
	var warnings []types.Warning

	for _, p := range proposals {
		r := Resolved{Proposal: p}
		if p.AssigneeEmail != "" {
			if id, ok := byEmail[p.AssigneeEmail]; ok {
				r.AssigneeID = &id
			} else {
				warnings = append(warnings, types.Warning{
					Kind:      types.WarnUnresolvedAssignee,
					TaskTitle: p.Title,
					Detail:    p.AssigneeEmail,
				})
			}
		}
		resolved = append(resolved, r)
	}

	return resolved, warnings
}
