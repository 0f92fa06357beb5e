package handlers

import (
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/validator"
	"github.com/gofiber/fiber/v2"
)

type GroupHandler struct {
	groupService      *services.GroupService
	sharingService    *services.SharingService
	membershipService *services.MembershipService
	identityService   *services.IdentityService
	validate          *validator.Validator
	responder
}

func NewGroupHandler(
	groupService *services.GroupService,
	sharingService *services.SharingService,
	membershipService *services.MembershipService,
	identityService *services.IdentityService,
	v *validator.Validator,
	legacyStatus bool,
) *GroupHandler {
	return &GroupHandler{
		groupService:      groupService,
		sharingService:    sharingService,
		membershipService: membershipService,
		identityService:   identityService,
		validate:          v,
		responder:         responder{legacyStatus: legacyStatus},
	}
}

func (h *GroupHandler) CreateGroup(c *fiber.Ctx) error {
	const msg = "Failed to create new group."

	actor, err := auth.GetUserID(c)
	if err != nil {
		return h.fail(c, err, "create_group", msg, 0)
	}
	var req dto.CreateGroupRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return h.fail(c, err, "create_group", msg, fiber.StatusInternalServerError)
	}

	group, err := h.groupService.CreateGroup(c.UserContext(), actor, services.CreateGroupInput{
		Name:           req.Name,
		Description:    req.Description,
		EmojiThumbnail: req.EmojiThumbnail,
	})
	if err != nil {
		return h.fail(c, err, "create_group", msg, fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.GroupResponse{
		Response: success("successfully created new group"),
		Group:    group,
	})
}

func (h *GroupHandler) GetGroup(c *fiber.Ctx) error {
	const msg = "Failed to find group."

	groupID, err := parseUUIDParam(c, "groupId")
	if err != nil {
		return h.fail(c, err, "get_group", msg, fiber.StatusNotFound)
	}
	group, err := h.groupService.GetGroup(c.UserContext(), groupID)
	if err != nil {
		return h.fail(c, err, "get_group", msg, fiber.StatusNotFound)
	}
	return c.JSON(dto.GroupResponse{Response: success("Successfully found group."), Group: group})
}

func (h *GroupHandler) DeleteGroup(c *fiber.Ctx) error {
	const msg = "Failed to delete group."

	actor, err := auth.GetUserID(c)
	if err != nil {
		return h.fail(c, err, "delete_group", msg, 0)
	}
	groupID, err := parseUUIDParam(c, "groupId")
	if err != nil {
		return h.fail(c, err, "delete_group", msg, fiber.StatusInternalServerError)
	}
	if err := h.groupService.DeleteGroup(c.UserContext(), actor, groupID); err != nil {
		return h.fail(c, err, "delete_group", msg, fiber.StatusInternalServerError)
	}
	return c.JSON(success("successfully deleted group"))
}

func (h *GroupHandler) ShareAlbum(c *fiber.Ctx) error {
	const msg = "Failed to add album to group."

	actor, err := auth.GetUserID(c)
	if err != nil {
		return h.fail(c, err, "share_album", msg, 0)
	}
	groupID, err := parseUUIDParam(c, "groupId")
	if err != nil {
		return h.fail(c, err, "share_album", msg, fiber.StatusInternalServerError)
	}
	albumID, err := parseUUIDParam(c, "albumId")
	if err != nil {
		return h.fail(c, err, "share_album", msg, fiber.StatusInternalServerError)
	}

	if err := h.sharingService.ShareAlbum(c.UserContext(), actor, albumID, groupID); err != nil {
		return h.fail(c, err, "share_album", msg, fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusCreated).JSON(success("successfully added album(s) to group"))
}

func (h *GroupHandler) UnshareAlbum(c *fiber.Ctx) error {
	const msg = "Failed to remove album from group."

	actor, err := auth.GetUserID(c)
	if err != nil {
		return h.fail(c, err, "unshare_album", msg, 0)
	}
	groupID, err := parseUUIDParam(c, "groupId")
	if err != nil {
		return h.fail(c, err, "unshare_album", msg, fiber.StatusInternalServerError)
	}
	albumID, err := parseUUIDParam(c, "albumId")
	if err != nil {
		return h.fail(c, err, "unshare_album", msg, fiber.StatusInternalServerError)
	}

	if err := h.sharingService.UnshareAlbum(c.UserContext(), actor, albumID, groupID); err != nil {
		return h.fail(c, err, "unshare_album", msg, fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusCreated).JSON(success("successfully removed album(s) from group"))
}

func (h *GroupHandler) AlbumsOfGroup(c *fiber.Ctx) error {
	const msg = "Failed to find albums for group."

	groupID, err := parseUUIDParam(c, "groupId")
	if err != nil {
		return h.fail(c, err, "albums_of_group", msg, fiber.StatusNotFound)
	}
	albums, err := h.sharingService.AlbumsOfGroup(c.UserContext(), groupID)
	if err != nil {
		return h.fail(c, err, "albums_of_group", msg, fiber.StatusNotFound)
	}
	return c.JSON(dto.AlbumsResponse{
		Response: success("Successfully found albums for group."),
		Albums:   albums,
	})
}

func (h *GroupHandler) GroupsOfUser(c *fiber.Ctx) error {
	const msg = "Failed to find groups for user."

	// Older clients address users by email.
	userID, ok, err := h.identityService.ResolveByExternalID(c.UserContext(), c.Params("userId"))
	if err != nil {
		return h.fail(c, err, "groups_of_user", msg, fiber.StatusNotFound)
	}
	if !ok {
		userID = c.Params("userId")
	}
	groups, err := h.membershipService.ListGroupsOfUser(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err, "groups_of_user", msg, fiber.StatusNotFound)
	}
	return c.JSON(dto.GroupsResponse{
		Response: success("Successfully found groups for user."),
		Groups:   groups,
	})
}
