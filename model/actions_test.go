package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectActions(t *testing.T) {
	t.Run("owner of a pending request", func(t *testing.T) {
		set := ProjectActions(StatusPending, RoleOwner)
		assert.Equal(t, ViewActionModify, set.Primary)
		assert.Equal(t, []ViewAction{ViewActionDelete, ViewActionDownloadOriginal}, set.Secondary)
	})

	t.Run("admin reviewing a pending request", func(t *testing.T) {
		set := ProjectActions(StatusPending, RoleAdmin)
		assert.Equal(t, ViewActionApprove, set.Primary)
		assert.Equal(t, []ViewAction{ViewActionReject, ViewActionDownloadOriginal}, set.Secondary)
	})

	t.Run("admin holding an approved request", func(t *testing.T) {
		set := ProjectActions(StatusApproved, RoleAdmin)
		assert.Equal(t, ViewActionComplete, set.Primary)
		assert.Equal(t, []ViewAction{ViewActionDownloadOriginal}, set.Secondary)
	})

	t.Run("owner of an approved request can only wait", func(t *testing.T) {
		set := ProjectActions(StatusApproved, RoleOwner)
		assert.Empty(t, set.Primary)
		assert.Equal(t, []ViewAction{ViewActionDownloadOriginal}, set.Secondary)
	})

	t.Run("owner of a rejected request", func(t *testing.T) {
		set := ProjectActions(StatusRejected, RoleOwner)
		assert.Equal(t, ViewActionModify, set.Primary)
		assert.Equal(t, []ViewAction{ViewActionResubmit, ViewActionDownloadOriginal}, set.Secondary)
	})

	t.Run("completed requests expose downloads only", func(t *testing.T) {
		for _, role := range []Role{RoleOwner, RoleAdmin} {
			set := ProjectActions(StatusCompleted, role)
			assert.Empty(t, set.Primary)
			assert.Equal(t, []ViewAction{ViewActionDownloadOriginal, ViewActionDownloadTranslated}, set.Secondary)
		}
	})

	t.Run("resubmitted requests are reviewed like pending ones", func(t *testing.T) {
		set := ProjectActions(StatusResubmitted, RoleAdmin)
		assert.Equal(t, ViewActionApprove, set.Primary)
		assert.Equal(t, []ViewAction{ViewActionReject, ViewActionDownloadOriginal}, set.Secondary)

		set = ProjectActions(StatusResubmitted, RoleOwner)
		assert.Empty(t, set.Primary)
		assert.Equal(t, []ViewAction{ViewActionDownloadOriginal}, set.Secondary)
	})
}

// every projected transition affordance must also pass the guard, for every
// status and role
func TestProjectedActionsAreLegal(t *testing.T) {
	isTransition := func(v ViewAction) bool {
		return v != ViewActionDownloadOriginal && v != ViewActionDownloadTranslated
	}

	for _, status := range Statuses {
		for _, role := range []Role{RoleOwner, RoleAdmin} {
			set := ProjectActions(status, role)

			if set.Primary != "" {
				assert.True(t, isTransition(set.Primary), "primary must be a transition")
				assert.True(t, CanTransition(status, role, Action(set.Primary)).Allowed,
					"projected primary %s illegal for %s/%s", set.Primary, status, role)
			}
			for _, v := range set.Secondary {
				if !isTransition(v) {
					continue
				}
				assert.True(t, CanTransition(status, role, Action(v)).Allowed,
					"projected secondary %s illegal for %s/%s", v, status, role)
			}
		}
	}
}
