package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const noProfileImage = "none"

// MembershipService owns the confirmed (group, user, role) relation.
type MembershipService struct {
	db     *gorm.DB
	policy *RolePolicy
}

func NewMembershipService(db *gorm.DB, policy *RolePolicy) *MembershipService {
	return &MembershipService{db: db, policy: policy}
}

// AddResult reports which ledger an add request was written to.
type AddResult struct {
	UserID         string      `json:"userId,omitempty"`
	Phone          string      `json:"phone,omitempty"`
	Role           models.Role `json:"role"`
	Invited        bool        `json:"invited"`
	AlreadyInvited bool        `json:"alreadyInvited,omitempty"`
}

// GroupWithMembers is a group plus the profile images of its members.
type GroupWithMembers struct {
	models.Group
	Members []string `json:"members"`
}

// AddMember inserts a membership for a known user. An existing membership
// for the pair is a ConflictError and is never overwritten.
func (s *MembershipService) AddMember(ctx context.Context, actorUserID string, groupID uuid.UUID, userID string, role models.Role) (member *models.GroupMember, err error) {
	defer func() { observeMembership("add_member", err) }()

	role, err = s.policy.AssignableRole(role)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := loadGroup(tx, groupID, true)
		if err != nil {
			return err
		}
		if err := s.policy.authorizeMembership(actorUserID, group); err != nil {
			return err
		}
		var users int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&users).Error; err != nil {
			return storeErr("check user", err)
		}
		if users == 0 {
			return notFound("user %s", userID)
		}
		member, err = addMember(tx, group, userID, role)
		return err
	})
	return member, err
}

// AddMemberByIdentifier resolves the identifier and writes to exactly one of
// the membership and invitation ledgers, atomically. A phone with no
// registered user becomes a pending invite; an unknown user id is NotFound.
func (s *MembershipService) AddMemberByIdentifier(ctx context.Context, actorUserID string, groupID uuid.UUID, ident Identifier, role models.Role) (result *AddResult, err error) {
	defer func() { observeMembership("add_member_by_identifier", err) }()

	if err = ident.validate(); err != nil {
		return nil, err
	}
	ident = ident.trimmed()
	role, err = s.policy.AssignableRole(role)
	if err != nil {
		return nil, err
	}

	var phone string
	if ident.Phone != "" {
		if phone, err = NormalizePhone(ident.Phone); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if phone != "" {
			if err := lockPhone(tx, phone); err != nil {
				return err
			}
		}
		group, err := loadGroup(tx, groupID, true)
		if err != nil {
			return err
		}
		if err := s.policy.authorizeMembership(actorUserID, group); err != nil {
			return err
		}

		if phone == "" {
			userID, ok, err := resolveByExternalID(tx, ident.UserID)
			if err != nil {
				return err
			}
			if !ok {
				return notFound("user %s", ident.UserID)
			}
			if _, err := addMember(tx, group, userID, role); err != nil {
				return err
			}
			result = &AddResult{UserID: userID, Role: role}
			return nil
		}

		userID, ok, err := resolveByPhone(tx, phone)
		if err != nil {
			return err
		}
		if !ok {
			created, err := createInvite(tx, groupID, phone, role, actorUserID)
			if err != nil {
				return err
			}
			result = &AddResult{Phone: phone, Role: role, Invited: true, AlreadyInvited: !created}
			return nil
		}
		if _, err := addMember(tx, group, userID, role); err != nil {
			return err
		}
		// A stale invite for a now-registered phone is superseded.
		if err := tx.Where("group_id = ? AND invited_phone_num = ?", groupID, phone).Delete(&models.GroupInvite{}).Error; err != nil {
			return storeErr("delete superseded invite", err)
		}
		result = &AddResult{UserID: userID, Phone: phone, Role: role}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveMember deletes a membership. The owner may remove anyone and every
// member may remove themself. Removing an absent membership succeeds.
func (s *MembershipService) RemoveMember(ctx context.Context, actorUserID string, groupID uuid.UUID, userID string) (err error) {
	defer func() { observeMembership("remove_member", err) }()

	db := s.db.WithContext(ctx)
	if actorUserID == "" || actorUserID != userID {
		group, err := loadGroup(db, groupID, false)
		if err != nil {
			return err
		}
		if err := s.policy.authorizeMembership(actorUserID, group); err != nil {
			return err
		}
	} else if !s.policy.CanRemoveSelf(actorUserID, nil) {
		return denied("user %s may not leave group %s", actorUserID, groupID)
	}

	err = db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.GroupMember{}).Error
	return storeErr("remove member", err)
}

// ListMembersOfGroup returns the group and its membership rows in join order.
func (s *MembershipService) ListMembersOfGroup(ctx context.Context, groupID uuid.UUID) (*models.Group, []models.GroupMember, error) {
	db := s.db.WithContext(ctx)
	group, err := loadGroup(db, groupID, false)
	if err != nil {
		return nil, nil, err
	}

	var members []models.GroupMember
	if err := db.Where("group_id = ?", groupID).Order("date_added ASC").Order("user_id ASC").Find(&members).Error; err != nil {
		return nil, nil, storeErr("list members", err)
	}
	return group, members, nil
}

// ListGroupsOfUser returns the groups the user owns or is a member of, each
// with its members' profile images in join order.
func (s *MembershipService) ListGroupsOfUser(ctx context.Context, userID string) ([]GroupWithMembers, error) {
	db := s.db.WithContext(ctx)

	memberOf := db.Model(&models.GroupMember{}).Select("group_id").Where("user_id = ?", userID)
	var groups []models.Group
	if err := db.Where("owner = ? OR id IN (?)", userID, memberOf).Order("created_at ASC").Find(&groups).Error; err != nil {
		return nil, storeErr("list groups of user", err)
	}
	if len(groups) == 0 {
		return []GroupWithMembers{}, nil
	}

	ids := make([]uuid.UUID, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}

	var rows []struct {
		GroupID      uuid.UUID
		ProfileImage *string
	}
	err := db.Table("group_members").
		Select("group_members.group_id, users.profile_image").
		Joins("JOIN users ON users.id = group_members.user_id").
		Where("group_members.group_id IN ?", ids).
		Order("group_members.date_added ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr("list member images", err)
	}

	images := make(map[uuid.UUID][]string, len(groups))
	for _, r := range rows {
		img := noProfileImage
		if r.ProfileImage != nil && *r.ProfileImage != "" {
			img = *r.ProfileImage
		}
		images[r.GroupID] = append(images[r.GroupID], img)
	}

	out := make([]GroupWithMembers, len(groups))
	for i, g := range groups {
		members := images[g.ID]
		if members == nil {
			members = []string{}
		}
		out[i] = GroupWithMembers{Group: g, Members: members}
	}
	return out, nil
}

func addMember(tx *gorm.DB, group *models.Group, userID string, role models.Role) (*models.GroupMember, error) {
	if userID == group.Owner {
		return nil, conflict("user %s owns group %s", userID, group.ID)
	}
	member := &models.GroupMember{GroupID: group.ID, UserID: userID, Role: role}
	created, err := insertIgnore(tx, member)
	if err != nil {
		return nil, storeErr("add member", err)
	}
	if !created {
		return nil, conflict("user %s is already a member of group %s", userID, group.ID)
	}
	return member, nil
}
