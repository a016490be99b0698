package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClubRoleOrder(t *testing.T) {
	assert.True(t, ClubRoleMember < ClubRoleModerator)
	assert.True(t, ClubRoleModerator < ClubRoleAdmin)

	assert.True(t, ClubRoleAdmin.AtLeast(ClubRoleModerator))
	assert.True(t, ClubRoleModerator.AtLeast(ClubRoleModerator))
	assert.False(t, ClubRoleMember.AtLeast(ClubRoleModerator))
}

func TestClubRoleValid(t *testing.T) {
	assert.True(t, ClubRoleMember.Valid())
	assert.True(t, ClubRoleAdmin.Valid())
	assert.False(t, ClubRole(0).Valid())
	assert.False(t, ClubRole(9).Valid())
}

func TestClubRoleCanAssign(t *testing.T) {
	// Promote a member to moderator: admin outranks both.
	assert.True(t, ClubRoleAdmin.CanAssign(ClubRoleMember, ClubRoleModerator))
	// Granting one's own rank is off the table, so admins do not multiply.
	assert.False(t, ClubRoleAdmin.CanAssign(ClubRoleMember, ClubRoleAdmin))
	// Peers cannot touch each other.
	assert.False(t, ClubRoleModerator.CanAssign(ClubRoleModerator, ClubRoleMember))
	assert.False(t, ClubRoleMember.CanAssign(ClubRoleMember, ClubRoleMember))
}

func TestParseClubRole(t *testing.T) {
	for _, role := range []ClubRole{ClubRoleMember, ClubRoleModerator, ClubRoleAdmin} {
		parsed, err := ParseClubRole(role.String())
		require.NoError(t, err)
		assert.Equal(t, role, parsed)
	}

	_, err := ParseClubRole("OWNER")
	assert.Error(t, err)
	_, err = ParseClubRole("member")
	assert.Error(t, err)
}

func TestBorrowStatusSets(t *testing.T) {
	assert.True(t, BorrowStatusCompleted.Terminal())
	assert.True(t, BorrowStatusRejected.Terminal())
	assert.False(t, BorrowStatusApproved.Terminal())

	assert.True(t, BorrowStatusPendingApproval.Actionable())
	assert.True(t, BorrowStatusPendingConditionCheck.Actionable())
	assert.False(t, BorrowStatusApproved.Actionable())
	assert.False(t, BorrowStatusCompleted.Actionable())
}
