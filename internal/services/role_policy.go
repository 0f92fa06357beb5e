package services

import (
	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/models"
)

// RolePolicy decides which roles are granted on join and who may change a
// group's membership or shared albums. The owner is implicit in Group.Owner.
type RolePolicy struct{}

func NewRolePolicy() *RolePolicy {
	return &RolePolicy{}
}

func (p *RolePolicy) CanMutateMembership(actorUserID string, group *models.Group) bool {
	return group != nil && actorUserID != "" && actorUserID == group.Owner
}

// CanRemoveSelf is distinct from owner-driven removal: a member may always leave.
func (p *RolePolicy) CanRemoveSelf(actorUserID string, group *models.Group) bool {
	return true
}

func (p *RolePolicy) CanMutateSharing(actorUserID string, group *models.Group) bool {
	return p.CanMutateMembership(actorUserID, group)
}

// AssignableRole returns the role to store for a join request. An empty
// request defaults to VIEWER; OWNER can only be held through Group.Owner.
func (p *RolePolicy) AssignableRole(requested models.Role) (models.Role, error) {
	switch requested {
	case "":
		return models.RoleViewer, nil
	case models.RoleContributor, models.RoleViewer:
		return requested, nil
	case models.RoleOwner:
		return "", invalid("role OWNER cannot be assigned to a member")
	}
	return "", invalid("unknown role %q", requested)
}

func (p *RolePolicy) authorizeMembership(actorUserID string, group *models.Group) error {
	if !p.CanMutateMembership(actorUserID, group) {
		return denied("user %s may not change membership of group %s", actorUserID, group.ID)
	}
	return nil
}

func (p *RolePolicy) authorizeSharing(actorUserID string, group *models.Group) error {
	if !p.CanMutateSharing(actorUserID, group) {
		return denied("user %s may not change albums shared into group %s", actorUserID, group.ID)
	}
	return nil
}
