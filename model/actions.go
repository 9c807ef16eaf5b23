package model

// ViewAction is an affordance a UI can render for a request. It is a
// superset of the transition Actions: downloads never change state but are
// still projected so that surfaces share one source of truth.
type ViewAction string

const (
	ViewActionApprove            ViewAction = "approve"
	ViewActionReject             ViewAction = "reject"
	ViewActionComplete           ViewAction = "complete"
	ViewActionModify             ViewAction = "modify"
	ViewActionResubmit           ViewAction = "resubmit"
	ViewActionDelete             ViewAction = "delete"
	ViewActionDownloadOriginal   ViewAction = "download-original"
	ViewActionDownloadTranslated ViewAction = "download-translated"
)

// ActionSet is the ordered set of affordances for one (status, role) pair.
type ActionSet struct {
	Primary   ViewAction   `json:"primary,omitempty"`
	Secondary []ViewAction `json:"secondary,omitempty"`
}

// candidate orderings determine which allowed action is promoted to Primary.
var ownerActionOrder = []Action{ActionModify, ActionResubmit, ActionDelete}
var adminActionOrder = []Action{ActionApprove, ActionComplete, ActionReject}

// ProjectActions maps a request status and an actor role to the actions a UI
// should expose. It is pure and derived from the same transition table as
// the guard, so affordances and legality can never drift apart.
func ProjectActions(current Status, role Role) ActionSet {
	order := ownerActionOrder
	if role == RoleAdmin {
		order = adminActionOrder
	}

	var allowed []ViewAction
	for _, action := range order {
		if CanTransition(current, role, action).Allowed {
			allowed = append(allowed, ViewAction(action))
		}
	}

	allowed = append(allowed, ViewActionDownloadOriginal)
	if current == StatusCompleted {
		allowed = append(allowed, ViewActionDownloadTranslated)
	}

	set := ActionSet{}
	if _, ok := TargetStatus(current, role, Action(allowed[0])); ok {
		set.Primary = allowed[0]
		set.Secondary = allowed[1:]
	} else {
		// no legal transition; only reads remain
		set.Secondary = allowed
	}

	return set
}
