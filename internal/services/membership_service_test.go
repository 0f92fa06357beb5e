package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipService_AddByPhone_NoUserCreatesInvite(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUser(t, db, "owner", ownerPhone)
	group := testutil.SeedGroup(t, db, "owner", "Family")
	svc := NewMembershipService(db, NewRolePolicy())

	result, err := svc.AddMemberByIdentifier(context.Background(), "owner", group.ID, Identifier{Phone: "+1 555 000 0003"}, "")
	require.NoError(t, err)
	assert.True(t, result.Invited)
	assert.False(t, result.AlreadyInvited)
	assert.Equal(t, guestPhone, result.Phone)
	assert.Equal(t, models.RoleViewer, result.Role)

	assert.EqualValues(t, 1, countInvites(t, db, group.ID))
	assert.EqualValues(t, 0, countMembers(t, db, group.ID))
}

func TestMembershipService_AddByPhone_RegisteredUserBecomesMember(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUser(t, db, "owner", ownerPhone)
	testutil.SeedUser(t, db, "u2", memberPhone)
	group := testutil.SeedGroup(t, db, "owner", "Family")
	svc := NewMembershipService(db, NewRolePolicy())

	result, err := svc.AddMemberByIdentifier(context.Background(), "owner", group.ID, Identifier{Phone: memberPhone}, "")
	require.NoError(t, err)
	assert.False(t, result.Invited)
	assert.Equal(t, "u2", result.UserID)

	assert.EqualValues(t, 0, countInvites(t, db, group.ID))
	assert.EqualValues(t, 1, countMembers(t, db, group.ID))
	assert.Equal(t, models.RoleViewer, memberRole(t, db, group.ID, "u2"))
}

func TestMembershipService_AddByPhone_RepeatedInviteIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUser(t, db, "owner", ownerPhone)
	group := testutil.SeedGroup(t, db, "owner", "Family")
	svc := NewMembershipService(db, NewRolePolicy())
	ctx := context.Background()

	_, err := svc.AddMemberByIdentifier(ctx, "owner", group.ID, Identifier{Phone: guestPhone}, models.RoleContributor)
	require.NoError(t, err)

	result, err := svc.AddMemberByIdentifier(ctx, "owner", group.ID, Identifier{Phone: guestPhone}, models.RoleViewer)
	require.NoError(t, err)
	assert.True(t, result.AlreadyInvited)

	assert.EqualValues(t, 1, countInvites(t, db, group.ID))
	var invite models.GroupInvite
	require.NoError(t, db.Take(&invite, "group_id = ?", group.ID).Error)
	assert.Equal(t, models.RoleContributor, invite.Role)
}

func TestMembershipService_AddByPhone_SupersedesStaleInvite(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUser(t, db, "owner", ownerPhone)
	group := testutil.SeedGroup(t, db, "owner", "Family")
	require.NoError(t, db.Create(&models.GroupInvite{GroupID: group.ID, InvitedPhoneNum: memberPhone, Role: models.RoleViewer}).Error)
	testutil.SeedUser(t, db, "u2", memberPhone)
	svc := NewMembershipService(db, NewRolePolicy())

	_, err := svc.AddMemberByIdentifier(context.Background(), "owner", group.ID, Identifier{Phone: memberPhone}, models.RoleContributor)
	require.NoError(t, err)

	assert.EqualValues(t, 0, countInvites(t, db, group.ID))
	assert.Equal(t, models.RoleContributor, memberRole(t, db, group.ID, "u2"))
}

func TestMembershipService_AddByUserID(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUser(t, db, "owner", ownerPhone)
	testutil.SeedUser(t, db, "u2", memberPhone)
	group := testutil.SeedGroup(t, db, "owner", "Family")
	svc := NewMembershipService(db, NewRolePolicy())
	ctx := context.Background()

	result, err := svc.AddMemberByIdentifier(ctx, "owner", group.ID, Identifier{UserID: "u2@example.com"}, models.RoleContributor)
	require.NoError(t, err)
	assert.Equal(t, "u2", result.UserID)
	assert.Equal(t, models.RoleContributor, memberRole(t, db, group.ID, "u2"))

	_, err = svc.AddMemberByIdentifier(ctx, "owner", group.ID, Identifier{UserID: "ghost"}, "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualValues(t, 0, countInvites(t, db, group.ID))
}

func TestMembershipService_AddByIdentifier_Rejections(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUser(t, db, "owner", ownerPhone)
	testutil.SeedUser(t, db, "u2", memberPhone)
	group := testutil.SeedGroup(t, db, "owner", "Family")
	svc := NewMembershipService(db, NewRolePolicy())
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   string
		groupID uuid.UUID
		ident   Identifier
		role    models.Role
		want    error
	}{
		{name: "both_fields", actor: "owner", groupID: group.ID, ident: Identifier{UserID: "u2", Phone: memberPhone}, want: ErrValidation},
		{name: "no_fields", actor: "owner", groupID: group.ID, ident: Identifier{}, want: ErrValidation},
		{name: "bad_phone", actor: "owner", groupID: group.ID, ident: Identifier{Phone: "call me"}, want: ErrValidation},
		{name: "owner_role", actor: "owner", groupID: group.ID, ident: Identifier{UserID: "u2"}, role: models.RoleOwner, want: ErrValidation},
		{name: "not_owner", actor: "u2", groupID: group.ID, ident: Identifier{Phone: guestPhone}, want: ErrPermission},
		{name: "missing_group", actor: "owner", groupID: uuid.New(), ident: Identifier{Phone: guestPhone}, want: ErrNotFound},
		{name: "owner_as_member", actor: "owner", groupID: group.ID, ident: Identifier{UserID: "owner"}, want: ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddMemberByIdentifier(ctx, tt.actor, tt.groupID, tt.ident, tt.role)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.EqualValues(t, 0, countMembers(t, db, group.ID))
	assert.EqualValues(t, 0, countInvites(t, db, group.ID))
}

func TestMembershipService_AddMember_DuplicateIsConflict(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUser(t, db, "owner", ownerPhone)
	testutil.SeedUser(t, db, "u2", memberPhone)
	group := testutil.SeedGroup(t, db, "owner", "Family")
	svc := NewMembershipService(db, NewRolePolicy())
	ctx := context.Background()

	member, err := svc.AddMember(ctx, "owner", group.ID, "u2", models.RoleViewer)
	require.NoError(t, err)
	assert.Equal(t, "u2", member.UserID)

	_, err = svc.AddMember(ctx, "owner", group.ID, "u2", models.RoleContributor)
	assert.ErrorIs(t, err, ErrConflict)

	assert.EqualValues(t, 1, countMembers(t, db, group.ID))
	assert.Equal(t, models.RoleViewer, memberRole(t, db, group.ID, "u2"))

	_, err = svc.AddMember(ctx, "owner", group.ID, "ghost", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMembershipService_RemoveMember(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUser(t, db, "owner", ownerPhone)
	testutil.SeedUser(t, db, "u2", memberPhone)
	testutil.SeedUser(t, db, "u3", guestPhone)
	group := testutil.SeedGroup(t, db, "owner", "Family")
	svc := NewMembershipService(db, NewRolePolicy())
	ctx := context.Background()

	_, err := svc.AddMember(ctx, "owner", group.ID, "u2", "")
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, "owner", group.ID, "u3", "")
	require.NoError(t, err)

	// Members cannot remove each other.
	assert.ErrorIs(t, svc.RemoveMember(ctx, "u3", group.ID, "u2"), ErrPermission)
	assert.EqualValues(t, 2, countMembers(t, db, group.ID))

	// Members can always leave.
	require.NoError(t, svc.RemoveMember(ctx, "u3", group.ID, "u3"))
	require.NoError(t, svc.RemoveMember(ctx, "u3", group.ID, "u3"))

	require.NoError(t, svc.RemoveMember(ctx, "owner", group.ID, "u2"))
	require.NoError(t, svc.RemoveMember(ctx, "owner", group.ID, "u2"))
	assert.EqualValues(t, 0, countMembers(t, db, group.ID))

	assert.ErrorIs(t, svc.RemoveMember(ctx, "owner", uuid.New(), "u2"), ErrNotFound)
}

func TestMembershipService_ListMembersOfGroup(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUser(t, db, "owner", ownerPhone)
	testutil.SeedUser(t, db, "u2", memberPhone)
	testutil.SeedUser(t, db, "u3", guestPhone)
	group := testutil.SeedGroup(t, db, "owner", "Family")
	svc := NewMembershipService(db, NewRolePolicy())
	ctx := context.Background()

	_, err := svc.AddMember(ctx, "owner", group.ID, "u2", models.RoleContributor)
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, "owner", group.ID, "u3", "")
	require.NoError(t, err)

	got, members, err := svc.ListMembersOfGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner", got.Owner)
	require.Len(t, members, 2)
	assert.Equal(t, "u2", members[0].UserID)
	assert.Equal(t, models.RoleContributor, members[0].Role)
	assert.Equal(t, "u3", members[1].UserID)
	assert.False(t, members[0].DateAdded.IsZero())

	_, _, err = svc.ListMembersOfGroup(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMembershipService_ListGroupsOfUser(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUser(t, db, "owner", ownerPhone)
	u2 := testutil.SeedUser(t, db, "u2", memberPhone)
	noImage := testutil.SeedUser(t, db, "u3", guestPhone)
	require.NoError(t, db.Model(noImage).Update("profile_image", nil).Error)
	testutil.SeedUser(t, db, "stranger", "+15550000009")

	family := testutil.SeedGroup(t, db, "owner", "Family")
	testutil.SeedGroup(t, db, "u2", "Climbing")
	svc := NewMembershipService(db, NewRolePolicy())
	ctx := context.Background()

	_, err := svc.AddMember(ctx, "owner", family.ID, "u2", "")
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, "owner", family.ID, "u3", "")
	require.NoError(t, err)

	groups, err := svc.ListGroupsOfUser(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Family", groups[0].Name)
	assert.ElementsMatch(t, []string{*u2.ProfileImage, noProfileImage}, groups[0].Members)

	groups, err = svc.ListGroupsOfUser(ctx, "u2")
	require.NoError(t, err)
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	assert.ElementsMatch(t, []string{"Family", "Climbing"}, names)

	groups, err = svc.ListGroupsOfUser(ctx, "stranger")
	require.NoError(t, err)
	assert.Empty(t, groups)
	assert.NotNil(t, groups)
}

func TestMembershipService_AddByIdentifier_BlankPhoneIgnored(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedUser(t, db, "owner", ownerPhone)
	testutil.SeedUser(t, db, "u2", memberPhone)
	group := testutil.SeedGroup(t, db, "owner", "Family")
	svc := NewMembershipService(db, NewRolePolicy())

	result, err := svc.AddMemberByIdentifier(context.Background(), "owner", group.ID, Identifier{UserID: " u2 ", Phone: "  "}, "")
	require.NoError(t, err)
	assert.Equal(t, "u2", result.UserID)
	assert.False(t, result.Invited)
	assert.EqualValues(t, 1, countMembers(t, db, group.ID))
	assert.EqualValues(t, 0, countInvites(t, db, group.ID))
}
