package dto

import (
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/models"
)

type CreateGroupRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Description    string `json:"description" validate:"max=2000"`
	EmojiThumbnail string `json:"emojiThumbnail" validate:"required,emoji"`
}

type CreateGroupMemberRequest struct {
	Role   models.Role `json:"role,omitempty" validate:"omitempty,oneof=OWNER CONTRIBUTOR VIEWER"`
	UserID string      `json:"userId,omitempty" validate:"omitempty,max=255"`
	Phone  string      `json:"phone,omitempty" validate:"omitempty,phone"`
}

type GroupResponse struct {
	Response
	Group *models.Group `json:"group"`
}

type GroupsResponse struct {
	Response
	Groups any `json:"groups"`
}

type AlbumsResponse struct {
	Response
	Albums []models.Album `json:"albums"`
}

type MemberView struct {
	UserID   string      `json:"userId"`
	Role     models.Role `json:"role"`
	JoinedAt string      `json:"joinedAt"`
}

type MembersResponse struct {
	Response
	Owner   string       `json:"owner"`
	Members []MemberView `json:"members"`
}

type AddMemberResponse struct {
	Response
	Result any `json:"result,omitempty"`
}

type InvitesResponse struct {
	Response
	Invites []models.GroupInvite `json:"invites"`
}
