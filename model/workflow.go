package model

import "strings"

// Status describes where a TranslationRequest is in its lifecycle.
type Status string

// Constants defining the various states of a translation request.
const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusCompleted   Status = "completed"
	StatusResubmitted Status = "resubmitted"
)

// Statuses enumerates every valid Status.
var Statuses = []Status{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusCompleted,
	StatusResubmitted,
}

// Role identifies the capacity in which an actor operates on a request. An
// Owner is the user that submitted the request; an Admin may act on any
// request.
type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

// Action is a state-changing operation an actor can attempt on a request.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionComplete Action = "complete"
	ActionModify   Action = "modify"
	ActionResubmit Action = "resubmit"
	ActionDelete   Action = "delete"
)

// Actions enumerates every transition Action.
var Actions = []Action{
	ActionApprove,
	ActionReject,
	ActionComplete,
	ActionModify,
	ActionResubmit,
	ActionDelete,
}

type transition struct {
	current Status
	role    Role
	action  Action
}

// transitions is the single source of truth for which (status, role, action)
// combinations are legal and the status that results from each. Delete maps
// to the empty status; the row is removed rather than moved.
var transitions = map[transition]Status{
	{StatusPending, RoleAdmin, ActionApprove}:    StatusApproved,
	{StatusPending, RoleAdmin, ActionReject}:     StatusRejected,
	{StatusPending, RoleOwner, ActionModify}:     StatusPending,
	{StatusPending, RoleOwner, ActionDelete}:     "",
	{StatusRejected, RoleOwner, ActionResubmit}:  StatusResubmitted,
	{StatusRejected, RoleOwner, ActionModify}:    StatusPending,
	{StatusApproved, RoleAdmin, ActionComplete}:  StatusCompleted,
	{StatusResubmitted, RoleAdmin, ActionApprove}: StatusApproved,
	{StatusResubmitted, RoleAdmin, ActionReject}:  StatusRejected,
}

// Decision is the outcome of evaluating the transition guard.
type Decision struct {
	Allowed bool
	Reason  ErrorCode
}

// CanTransition reports whether role may perform action on a request that is
// currently in the given status. It is a pure function of its inputs.
func CanTransition(current Status, role Role, action Action) Decision {
	if _, ok := transitions[transition{current, role, action}]; ok {
		return Decision{Allowed: true}
	}

	return Decision{Allowed: false, Reason: ErrorInvalidTransition}
}

// CheckAction combines the transition guard with the side-constraints an
// action carries. A reject with an empty or whitespace-only comment is
// denied with MissingComment regardless of status and role, so that callers
// can distinguish a fixable omission from an illegal transition.
func CheckAction(current Status, role Role, action Action, comment string) Decision {
	if action == ActionReject && strings.TrimSpace(comment) == "" {
		return Decision{Allowed: false, Reason: ErrorMissingComment}
	}

	return CanTransition(current, role, action)
}

// TargetStatus returns the status a request lands in after the given action,
// and whether the transition exists at all. The second return is false for
// any combination absent from the transition table.
func TargetStatus(current Status, role Role, action Action) (Status, bool) {
	target, ok := transitions[transition{current, role, action}]
	return target, ok
}
