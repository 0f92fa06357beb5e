package handlers

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/validator"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService   *services.UserService
	inviteService *services.InviteService
	validate      *validator.Validator
	responder
}

func NewUserHandler(userService *services.UserService, inviteService *services.InviteService, v *validator.Validator, legacyStatus bool) *UserHandler {
	return &UserHandler{
		userService:   userService,
		inviteService: inviteService,
		validate:      v,
		responder:     responder{legacyStatus: legacyStatus},
	}
}

// CreateUser registers the caller. The body id must match the token subject.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	const msg = "Failed to create new user."

	actor, err := auth.GetUserID(c)
	if err != nil {
		return h.fail(c, err, "create_user", msg, 0)
	}
	var req dto.CreateUserRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return h.fail(c, err, "create_user", msg, fiber.StatusInternalServerError)
	}
	if req.ID != actor {
		return h.fail(c, fmt.Errorf("%w: body id %s does not match caller %s", services.ErrPermission, req.ID, actor), "create_user", msg, fiber.StatusInternalServerError)
	}

	user, resolved, err := h.userService.CreateUser(c.UserContext(), services.CreateUserInput{
		ID:           req.ID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DateOfBirth:  req.DateOfBirth,
		Email:        req.Email,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
		Country:      req.Country,
		State:        req.State,
	})
	if err != nil {
		return h.fail(c, err, "create_user", msg, fiber.StatusInternalServerError)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateUserResponse{
		Response:        success("successfully created new user with id:" + user.ID),
		UserID:          user.ID,
		InvitesResolved: resolved,
	})
}

// ResolveInvites promotes any invites still pending for the caller's phone.
func (h *UserHandler) ResolveInvites(c *fiber.Ctx) error {
	const msg = "Failed to resolve invites."

	actor, err := auth.GetUserID(c)
	if err != nil {
		return h.fail(c, err, "resolve_invites", msg, 0)
	}
	n, err := h.inviteService.ResolveInvitesForUser(c.UserContext(), actor)
	if err != nil {
		return h.fail(c, err, "resolve_invites", msg, 0)
	}
	return c.JSON(dto.ResolveInvitesResponse{
		Response:        success(fmt.Sprintf("resolved %d pending invite(s)", n)),
		InvitesResolved: n,
	})
}
