package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/validator"
	"github.com/gofiber/fiber/v2"
)

type GroupMemberHandler struct {
	membershipService *services.MembershipService
	inviteService     *services.InviteService
	validate          *validator.Validator
	responder
}

func NewGroupMemberHandler(
	membershipService *services.MembershipService,
	inviteService *services.InviteService,
	v *validator.Validator,
	legacyStatus bool,
) *GroupMemberHandler {
	return &GroupMemberHandler{
		membershipService: membershipService,
		inviteService:     inviteService,
		validate:          v,
		responder:         responder{legacyStatus: legacyStatus},
	}
}

// AddMember adds a registered user, or invites a phone number that has no
// user yet.
func (h *GroupMemberHandler) AddMember(c *fiber.Ctx) error {
	const msg = "Failed to add user to group."

	actor, err := auth.GetUserID(c)
	if err != nil {
		return h.fail(c, err, "add_member", msg, 0)
	}
	groupID, err := parseUUIDParam(c, "groupId")
	if err != nil {
		return h.fail(c, err, "add_member", msg, fiber.StatusCreated)
	}
	var req dto.CreateGroupMemberRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return h.fail(c, err, "add_member", msg, fiber.StatusCreated)
	}

	result, err := h.membershipService.AddMemberByIdentifier(c.UserContext(), actor, groupID,
		services.Identifier{UserID: req.UserID, Phone: req.Phone}, req.Role)
	if err != nil {
		return h.fail(c, err, "add_member", msg, fiber.StatusCreated)
	}

	message := "Successfully added member to group"
	if result.Invited {
		message = "Successfully invited phone number to group"
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AddMemberResponse{
		Response: success(message),
		Result:   result,
	})
}

func (h *GroupMemberHandler) ListMembers(c *fiber.Ctx) error {
	const msg = "Failed to find members for group."

	groupID, err := parseUUIDParam(c, "groupId")
	if err != nil {
		return h.fail(c, err, "list_members", msg, 0)
	}
	group, members, err := h.membershipService.ListMembersOfGroup(c.UserContext(), groupID)
	if err != nil {
		return h.fail(c, err, "list_members", msg, 0)
	}

	views := make([]dto.MemberView, len(members))
	for i, m := range members {
		views[i] = dto.MemberView{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.DateAdded.UTC().Format(time.RFC3339),
		}
	}
	return c.JSON(dto.MembersResponse{
		Response: success("Successfully found members for group."),
		Owner:    group.Owner,
		Members:  views,
	})
}

func (h *GroupMemberHandler) RemoveMember(c *fiber.Ctx) error {
	const msg = "Failed to remove user from group."

	actor, err := auth.GetUserID(c)
	if err != nil {
		return h.fail(c, err, "remove_member", msg, 0)
	}
	groupID, err := parseUUIDParam(c, "groupId")
	if err != nil {
		return h.fail(c, err, "remove_member", msg, 0)
	}
	if err := h.membershipService.RemoveMember(c.UserContext(), actor, groupID, c.Params("userId")); err != nil {
		return h.fail(c, err, "remove_member", msg, 0)
	}
	return c.JSON(success("Successfully removed member from group"))
}

func (h *GroupMemberHandler) ListInvites(c *fiber.Ctx) error {
	const msg = "Failed to find invites for group."

	actor, err := auth.GetUserID(c)
	if err != nil {
		return h.fail(c, err, "list_invites", msg, 0)
	}
	groupID, err := parseUUIDParam(c, "groupId")
	if err != nil {
		return h.fail(c, err, "list_invites", msg, 0)
	}
	invites, err := h.inviteService.ListInvites(c.UserContext(), actor, groupID)
	if err != nil {
		return h.fail(c, err, "list_invites", msg, 0)
	}
	return c.JSON(dto.InvitesResponse{
		Response: success("Successfully found invites for group."),
		Invites:  invites,
	})
}

func (h *GroupMemberHandler) RevokeInvite(c *fiber.Ctx) error {
	const msg = "Failed to revoke invite."

	actor, err := auth.GetUserID(c)
	if err != nil {
		return h.fail(c, err, "revoke_invite", msg, 0)
	}
	groupID, err := parseUUIDParam(c, "groupId")
	if err != nil {
		return h.fail(c, err, "revoke_invite", msg, 0)
	}
	if err := h.inviteService.RevokeInvite(c.UserContext(), actor, groupID, c.Params("phone")); err != nil {
		return h.fail(c, err, "revoke_invite", msg, 0)
	}
	return c.JSON(success("Successfully revoked invite"))
}
