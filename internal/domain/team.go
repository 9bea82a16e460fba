package domain

import "time"

type TeamStatus string

const (
	TeamStatusForming   TeamStatus = "FORMING"
	TeamStatusOpen      TeamStatus = "OPEN"
	TeamStatusFull      TeamStatus = "FULL"
	TeamStatusCompleted TeamStatus = "COMPLETED"
	TeamStatusDisbanded TeamStatus = "DISBANDED"
)

// Terminal reports whether the status admits no further membership changes.
// A participant may hold at most one non-terminal team per event.
func (s TeamStatus) Terminal() bool {
	return s == TeamStatusCompleted || s == TeamStatusDisbanded
}

// AcceptsMembers reports whether new members may join in this status.
func (s TeamStatus) AcceptsMembers() bool {
	return s == TeamStatusForming || s == TeamStatusOpen
}

type TeamMember struct {
	UserID   int32     `json:"user_id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedOn time.Time `json:"joined_on"`
}

// Team is an event-scoped team. The leader is always a member; Members is
// ordered by join time, which is also the leadership succession order.
type Team struct {
	ID          int32        `json:"id"`
	EventID     int32        `json:"event_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	LeaderID    int32        `json:"leader_id"`
	Members     []TeamMember `json:"members"`
	MaxMembers  int32        `json:"max_members"`
	TechStack   []string     `json:"tech_stack"`
	Status      TeamStatus   `json:"status"`
	InviteCode  string       `json:"invite_code,omitempty"`
	CreatedOn   time.Time    `json:"created_on"`
	UpdatedOn   time.Time    `json:"updated_on"`
}

// Size is the current member count, leader included.
func (t *Team) Size() int32 {
	return int32(len(t.Members))
}

// DeriveStatus recomputes a non-terminal status from membership vs capacity.
// Status is derived, never stored independently of the member set.
func (t *Team) DeriveStatus() TeamStatus {
	if t.Status.Terminal() {
		return t.Status
	}
	if t.Size() >= t.MaxMembers {
		return TeamStatusFull
	}
	return TeamStatusOpen
}

// HasMember reports whether userID is currently on the team.
func (t *Team) HasMember(userID int32) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
