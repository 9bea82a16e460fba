package domain

import "time"

type MatchRequestStatus string

const (
	MatchRequestStatusPending   MatchRequestStatus = "PENDING"
	MatchRequestStatusAccepted  MatchRequestStatus = "ACCEPTED"
	MatchRequestStatusRejected  MatchRequestStatus = "REJECTED"
	MatchRequestStatusCancelled MatchRequestStatus = "CANCELLED"
)

type MatchRequestType string

const (
	MatchRequestTypeDirect     MatchRequestType = "DIRECT_MATCH"
	MatchRequestTypeTeamInvite MatchRequestType = "TEAM_INVITE"
)

type MatchDecision string

const (
	MatchDecisionAccept MatchDecision = "accept"
	MatchDecisionReject MatchDecision = "reject"
)

// MatchRequest is a directed, event-scoped proposal from one participant to
// another. Score and ScoreDetails are snapshots taken at creation and never
// updated afterwards. Resolved requests are kept, never deleted.
type MatchRequest struct {
	ID           int32              `json:"id"`
	RequesterID  int32              `json:"requester_id"`
	RecipientID  int32              `json:"recipient_id"`
	EventID      int32              `json:"event_id"`
	TeamID       *int32             `json:"team_id,omitempty"`
	Type         MatchRequestType   `json:"type"`
	Status       MatchRequestStatus `json:"status"`
	Score        float64            `json:"score"`
	ScoreDetails ScoreBreakdown     `json:"score_details"`
	Message      string             `json:"message"`
	CreatedOn    time.Time          `json:"created_on"`
	RespondedOn  *time.Time         `json:"responded_on,omitempty"`
	ExpiresOn    time.Time          `json:"expires_on"`
}

// Resolved reports whether the request has left the PENDING state. All
// non-pending states are terminal.
func (r *MatchRequest) Resolved() bool {
	return r.Status != MatchRequestStatusPending
}

// MutualMatch is a pair of independent accepted requests (A→B and B→A) for
// the same event. The engine never creates the reciprocal request itself.
type MutualMatch struct {
	OtherUserID int32     `json:"other_user_id"`
	EventID     int32     `json:"event_id"`
	MatchedOn   time.Time `json:"matched_on"`
}

// RequestCounts aggregates one direction of a user's request history.
type RequestCounts struct {
	Total    int32 `json:"total"`
	Pending  int32 `json:"pending"`
	Accepted int32 `json:"accepted"`
	Rejected int32 `json:"rejected"`
}

type RequestStats struct {
	Sent               RequestCounts `json:"sent"`
	Received           RequestCounts `json:"received"`
	SentSuccessRate    int32         `json:"sent_success_rate"`
	ReceivedAcceptRate int32         `json:"received_acceptance_rate"`
}
