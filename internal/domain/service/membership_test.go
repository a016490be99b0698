package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclub/lendhub/internal/domain/common/errorz"
	"github.com/openclub/lendhub/internal/domain/entity"
)

func membershipFixture() (*fakeMembershipStorage, *MembershipService) {
	storage := newFakeMembershipStorage()
	return storage, NewMembershipService(storage)
}

func clubUser(id string, role entity.GlobalRole) *entity.User {
	return &entity.User{
		ID:         id,
		Email:      id + "@club.example",
		Name:       "User " + id,
		GlobalRole: role,
	}
}

func TestMembershipAddSelf(t *testing.T) {
	_, svc := membershipFixture()
	user := clubUser("user-1", entity.GlobalRoleUser)

	m, err := svc.Add(context.Background(), user, testClubID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ClubRoleMember, m.Role)
	assert.False(t, m.JoinedAt.IsZero())
}

func TestMembershipAddRequiresAdmin(t *testing.T) {
	storage, svc := membershipFixture()
	moderator := clubUser("mod-1", entity.GlobalRoleUser)
	storage.add(*moderator, testClubID, entity.ClubRoleModerator)
	admin := clubUser("adm-1", entity.GlobalRoleUser)
	storage.add(*admin, testClubID, entity.ClubRoleAdmin)

	ctx := context.Background()
	_, err := svc.Add(ctx, moderator, testClubID, "user-2")
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	_, err = svc.Add(ctx, admin, testClubID, "user-2")
	require.NoError(t, err)

	outsider := clubUser("user-x", entity.GlobalRoleUser)
	_, err = svc.Add(ctx, outsider, testClubID, "user-3")
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	root := clubUser("root", entity.GlobalRoleSuperuser)
	_, err = svc.Add(ctx, root, testClubID, "user-3")
	require.NoError(t, err)
}

func TestMembershipSetRole(t *testing.T) {
	storage, svc := membershipFixture()
	admin := clubUser("adm-1", entity.GlobalRoleUser)
	storage.add(*admin, testClubID, entity.ClubRoleAdmin)
	member := clubUser("user-1", entity.GlobalRoleUser)
	storage.add(*member, testClubID, entity.ClubRoleMember)

	m, err := svc.SetRole(context.Background(), admin, testClubID, member.ID, entity.ClubRoleModerator)
	require.NoError(t, err)
	assert.Equal(t, entity.ClubRoleModerator, m.Role)
}

func TestMembershipSetRoleStrictOutranking(t *testing.T) {
	storage, svc := membershipFixture()
	admin := clubUser("adm-1", entity.GlobalRoleUser)
	storage.add(*admin, testClubID, entity.ClubRoleAdmin)
	moderator := clubUser("mod-1", entity.GlobalRoleUser)
	storage.add(*moderator, testClubID, entity.ClubRoleModerator)
	member := clubUser("user-1", entity.GlobalRoleUser)
	storage.add(*member, testClubID, entity.ClubRoleMember)

	ctx := context.Background()

	// Granting a role equal to one's own fails the strict comparison, so an
	// admin cannot mint another admin.
	_, err := svc.SetRole(ctx, admin, testClubID, member.ID, entity.ClubRoleAdmin)
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	// A moderator outranks neither another moderator nor the moderator role.
	_, err = svc.SetRole(ctx, moderator, testClubID, member.ID, entity.ClubRoleModerator)
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	// Self-escalation is the same check, with the actor as target.
	_, err = svc.SetRole(ctx, moderator, testClubID, moderator.ID, entity.ClubRoleAdmin)
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	// Superusers bypass it and may set any role, admin included.
	root := clubUser("root", entity.GlobalRoleSuperuser)
	m, err := svc.SetRole(ctx, root, testClubID, member.ID, entity.ClubRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.ClubRoleAdmin, m.Role)
}

func TestMembershipSetRoleValidation(t *testing.T) {
	storage, svc := membershipFixture()
	admin := clubUser("adm-1", entity.GlobalRoleUser)
	storage.add(*admin, testClubID, entity.ClubRoleAdmin)

	_, err := svc.SetRole(context.Background(), admin, testClubID, "user-1", entity.ClubRole(9))
	assert.ErrorIs(t, err, errorz.ErrInvalidRole)

	_, err = svc.SetRole(context.Background(), admin, testClubID, "ghost", entity.ClubRoleModerator)
	assert.ErrorIs(t, err, errorz.ErrMembershipNotFound)
}

func TestMembershipRemove(t *testing.T) {
	storage, svc := membershipFixture()
	admin := clubUser("adm-1", entity.GlobalRoleUser)
	storage.add(*admin, testClubID, entity.ClubRoleAdmin)
	moderator := clubUser("mod-1", entity.GlobalRoleUser)
	storage.add(*moderator, testClubID, entity.ClubRoleModerator)
	member := clubUser("user-1", entity.GlobalRoleUser)
	storage.add(*member, testClubID, entity.ClubRoleMember)

	ctx := context.Background()

	// A moderator cannot remove a peer.
	other := clubUser("mod-2", entity.GlobalRoleUser)
	storage.add(*other, testClubID, entity.ClubRoleModerator)
	err := svc.Remove(ctx, moderator, testClubID, other.ID)
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	// Leaving is always allowed.
	require.NoError(t, svc.Remove(ctx, member, testClubID, member.ID))
	_, err = storage.Get(ctx, member.ID, testClubID)
	assert.ErrorIs(t, err, errorz.ErrMembershipNotFound)

	// An admin outranks a moderator.
	require.NoError(t, svc.Remove(ctx, admin, testClubID, moderator.ID))
}

func TestMembershipListMembers(t *testing.T) {
	storage, svc := membershipFixture()
	member := clubUser("user-1", entity.GlobalRoleUser)
	storage.add(*member, testClubID, entity.ClubRoleMember)
	moderator := clubUser("mod-1", entity.GlobalRoleUser)
	storage.add(*moderator, testClubID, entity.ClubRoleModerator)

	ctx := context.Background()

	members, err := svc.ListMembers(ctx, member, testClubID, nil)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	role := entity.ClubRoleModerator
	members, err = svc.ListMembers(ctx, member, testClubID, &role)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, moderator.ID, members[0].UserID)
	assert.Equal(t, moderator.Email, members[0].Email)

	outsider := clubUser("user-x", entity.GlobalRoleUser)
	_, err = svc.ListMembers(ctx, outsider, testClubID, nil)
	assert.ErrorIs(t, err, errorz.ErrForbidden)
}
