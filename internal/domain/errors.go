package domain

import "fmt"

// ErrorKind classifies engine errors so the API layer can map them to a
// transport status without inspecting individual codes.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindConflict      ErrorKind = "conflict"
	KindAuthorization ErrorKind = "authorization"
	KindNotFound      ErrorKind = "not_found"
)

type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on Code so callers can use errors.Is against the sentinel values.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	// Match request errors
	ErrSelfRequest = &Error{
		Kind:    KindValidation,
		Code:    "SELF_REQUEST",
		Message: "cannot send a match request to yourself",
	}
	ErrInvalidDecision = &Error{
		Kind:    KindValidation,
		Code:    "INVALID_DECISION",
		Message: "decision must be accept or reject",
	}
	ErrDuplicateActiveRequest = &Error{
		Kind:    KindConflict,
		Code:    "DUPLICATE_ACTIVE_REQUEST",
		Message: "a pending match request to this user already exists for this event",
	}
	ErrRequestResolved = &Error{
		Kind:    KindConflict,
		Code:    "REQUEST_RESOLVED",
		Message: "match request has already been resolved",
	}
	ErrRequestExpired = &Error{
		Kind:    KindConflict,
		Code:    "REQUEST_EXPIRED",
		Message: "match request has expired",
	}
	ErrMatchingDisabled = &Error{
		Kind:    KindConflict,
		Code:    "MATCHING_DISABLED",
		Message: "recipient is not accepting match requests",
	}
	ErrNotRecipient = &Error{
		Kind:    KindAuthorization,
		Code:    "NOT_RECIPIENT",
		Message: "only the recipient can respond to this match request",
	}
	ErrNotRequester = &Error{
		Kind:    KindAuthorization,
		Code:    "NOT_REQUESTER",
		Message: "only the requester can cancel this match request",
	}
	ErrTeamEventMismatch = &Error{
		Kind:    KindValidation,
		Code:    "TEAM_EVENT_MISMATCH",
		Message: "team does not belong to the given event",
	}

	// Team errors
	ErrTeamNotOpen = &Error{
		Kind:    KindConflict,
		Code:    "TEAM_NOT_OPEN",
		Message: "team is not accepting new members",
	}
	ErrTeamFull = &Error{
		Kind:    KindConflict,
		Code:    "TEAM_FULL",
		Message: "team has reached its maximum size",
	}
	ErrAlreadyMember = &Error{
		Kind:    KindConflict,
		Code:    "ALREADY_MEMBER",
		Message: "user is already a member of this team",
	}
	ErrAlreadyOnTeam = &Error{
		Kind:    KindConflict,
		Code:    "ALREADY_ON_TEAM",
		Message: "user already has a team for this event",
	}
	ErrNotMember = &Error{
		Kind:    KindConflict,
		Code:    "NOT_MEMBER",
		Message: "user is not a member of this team",
	}
	ErrNotLeader = &Error{
		Kind:    KindAuthorization,
		Code:    "NOT_LEADER",
		Message: "only the team leader can perform this action",
	}
	ErrCannotRemoveLeader = &Error{
		Kind:    KindValidation,
		Code:    "CANNOT_REMOVE_LEADER",
		Message: "team leader cannot be removed; transfer leadership first",
	}
	ErrCapacityBelowSize = &Error{
		Kind:    KindValidation,
		Code:    "CAPACITY_BELOW_SIZE",
		Message: "max members cannot be less than the current member count",
	}
	ErrInvalidTeamSize = &Error{
		Kind:    KindValidation,
		Code:    "INVALID_TEAM_SIZE",
		Message: "max members is outside the event's team size bounds",
	}

	ErrNotFound = &Error{
		Kind:    KindNotFound,
		Code:    "NOT_FOUND",
		Message: "resource not found",
	}
)

// NewNotFoundError returns a NOT_FOUND error naming the missing resource.
func NewNotFoundError(resource string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
	}
}
