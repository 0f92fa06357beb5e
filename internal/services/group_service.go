package services

import (
	"context"
	"strings"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateGroupInput struct {
	Name           string
	Description    string
	EmojiThumbnail string
}

// GroupService creates, reads and deletes groups. Deleting a group removes
// its memberships, invites and sharing rows in the same transaction.
type GroupService struct {
	db     *gorm.DB
	policy *RolePolicy
	filter *ContentFilter
}

func NewGroupService(db *gorm.DB, policy *RolePolicy, filter *ContentFilter) *GroupService {
	return &GroupService{db: db, policy: policy, filter: filter}
}

func (s *GroupService) CreateGroup(ctx context.Context, ownerUserID string, in CreateGroupInput) (*models.Group, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("group name is required")
	}
	if reason := s.filter.Check(name); reason != "" {
		return nil, invalid("group name rejected: %s", reason)
	}
	if reason := s.filter.Check(in.Description); reason != "" {
		return nil, invalid("group description rejected: %s", reason)
	}

	db := s.db.WithContext(ctx)
	var owners int64
	if err := db.Model(&models.User{}).Where("id = ?", ownerUserID).Count(&owners).Error; err != nil {
		return nil, storeErr("check owner", err)
	}
	if owners == 0 {
		return nil, notFound("user %s", ownerUserID)
	}

	group := &models.Group{
		Owner:          ownerUserID,
		Name:           name,
		Description:    strings.TrimSpace(in.Description),
		EmojiThumbnail: in.EmojiThumbnail,
	}
	if err := db.Create(group).Error; err != nil {
		return nil, storeErr("create group", err)
	}
	return group, nil
}

func (s *GroupService) GetGroup(ctx context.Context, groupID uuid.UUID) (*models.Group, error) {
	return loadGroup(s.db.WithContext(ctx), groupID, false)
}

// DeleteGroup is owner-only and cascades to every row keyed by the group.
func (s *GroupService) DeleteGroup(ctx context.Context, actorUserID string, groupID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := loadGroup(tx, groupID, true)
		if err != nil {
			return err
		}
		if err := s.policy.authorizeMembership(actorUserID, group); err != nil {
			return err
		}
		for _, dependent := range []any{&models.GroupMember{}, &models.GroupInvite{}, &models.AlbumSharedGroup{}} {
			if err := tx.Where("group_id = ?", groupID).Delete(dependent).Error; err != nil {
				return storeErr("delete group dependents", err)
			}
		}
		return storeErr("delete group", tx.Delete(group).Error)
	})
}
