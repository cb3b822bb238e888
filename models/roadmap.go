package models

import "time"

// Visibility controls who may read a roadmap.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityLink    Visibility = "link"
)

// Roadmap owns a set of tasks and members. A roadmap is created once; tasks
// are added and mutated under it, never re-parented.
type Roadmap struct {
	ID          string     `json:"id" validate:"required,uuid4"`
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description,omitempty"`
	Visibility  Visibility `json:"visibility" validate:"required,oneof=private link"`
	OwnerID     string     `json:"ownerId" validate:"required"`
	CreatedAt   time.Time  `json:"createdAt" validate:"required"`
}

// Readable reports whether the given user may read the roadmap:
// the owner always can, anyone can when the roadmap is link-shared.
func (r Roadmap) Readable(userID string) bool {
	return r.OwnerID == userID || r.Visibility == VisibilityLink
}

// Member is a team participant scoped to one roadmap. Skills and LoadFactor
// are matching and display metadata for the assignment step; the scheduler
// does not perform capacity-aware leveling.
type Member struct {
	UserID     string   `json:"userId" validate:"required,uuid4"`
	RoadmapID  string   `json:"roadmapId" validate:"required,uuid4"`
	Name       string   `json:"name,omitempty"`
	Email      string   `json:"email" validate:"required,email"`
	Role       string   `json:"role,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	LoadFactor float64  `json:"loadFactor" validate:"gt=0,lte=1"`
}

// NewMember creates a member with LoadFactor defaulted to full-time.
func NewMember(userID, roadmapID, email string) *Member {
	return &Member{
		UserID:     userID,
		RoadmapID:  roadmapID,
		Email:      email,
		LoadFactor: 1.0,
	}
}
