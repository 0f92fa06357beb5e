package services

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InviteService is the ledger of pending, phone-keyed memberships.
type InviteService struct {
	db     *gorm.DB
	policy *RolePolicy
}

func NewInviteService(db *gorm.DB, policy *RolePolicy) *InviteService {
	return &InviteService{db: db, policy: policy}
}

// CreateInvite records a pending invite. A repeated call for the same
// (group, phone) leaves the original invite in place and reports created ==
// false. Phones that already belong to a registered user are rejected; add
// those users as members instead.
func (s *InviteService) CreateInvite(ctx context.Context, actorUserID string, groupID uuid.UUID, phone string, role models.Role) (created bool, err error) {
	defer func() { observeMembership("create_invite", err) }()

	phone, err = NormalizePhone(phone)
	if err != nil {
		return false, err
	}
	role, err = s.policy.AssignableRole(role)
	if err != nil {
		return false, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPhone(tx, phone); err != nil {
			return err
		}
		group, err := loadGroup(tx, groupID, true)
		if err != nil {
			return err
		}
		if err := s.policy.authorizeMembership(actorUserID, group); err != nil {
			return err
		}
		if _, ok, err := resolveByPhone(tx, phone); err != nil {
			return err
		} else if ok {
			return conflict("phone %s already belongs to a registered user", phone)
		}
		created, err = createInvite(tx, groupID, phone, role, actorUserID)
		return err
	})
	return created, err
}

// ResolveInvite converts the pending invite for (group, phone) into a
// membership for the user registered with that phone, deletes the invite and
// returns the user's id.
func (s *InviteService) ResolveInvite(ctx context.Context, groupID uuid.UUID, phone string) (userID string, err error) {
	defer func() { observeMembership("resolve_invite", err) }()

	phone, err = NormalizePhone(phone)
	if err != nil {
		return "", err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPhone(tx, phone); err != nil {
			return err
		}
		id, ok, err := resolveByPhone(tx, phone)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("no user registered with phone %s", phone)
		}

		var invite models.GroupInvite
		if err := tx.Take(&invite, "group_id = ? AND invited_phone_num = ?", groupID, phone).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("invite for %s in group %s", phone, groupID)
			}
			return storeErr("load invite", err)
		}
		promoted, err := promoteInvite(tx, &invite, id)
		if err != nil {
			return err
		}
		if !promoted {
			return notFound("group %s", groupID)
		}
		userID = id
		return nil
	})
	if err == nil {
		observeInvitesResolved(1)
	}
	return userID, err
}

// ResolveInvitesForUser promotes every outstanding invite addressed to the
// user's phone and returns how many were consumed.
func (s *InviteService) ResolveInvitesForUser(ctx context.Context, userID string) (n int, err error) {
	defer func() { observeMembership("resolve_user_invites", err) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Take(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("user %s", userID)
			}
			return storeErr("load user", err)
		}
		if err := lockPhone(tx, user.Phone); err != nil {
			return err
		}
		n, err = resolvePendingInvites(tx, &user)
		return err
	})
	if err != nil {
		return 0, err
	}
	observeInvitesResolved(n)
	return n, nil
}

func (s *InviteService) ListInvites(ctx context.Context, actorUserID string, groupID uuid.UUID) ([]models.GroupInvite, error) {
	db := s.db.WithContext(ctx)
	group, err := loadGroup(db, groupID, false)
	if err != nil {
		return nil, err
	}
	if err := s.policy.authorizeMembership(actorUserID, group); err != nil {
		return nil, err
	}

	var invites []models.GroupInvite
	if err := db.Where("group_id = ?", groupID).Order("created_at ASC").Find(&invites).Error; err != nil {
		return nil, storeErr("list invites", err)
	}
	return invites, nil
}

// RevokeInvite deletes a pending invite. Revoking an absent invite succeeds.
func (s *InviteService) RevokeInvite(ctx context.Context, actorUserID string, groupID uuid.UUID, phone string) (err error) {
	defer func() { observeMembership("revoke_invite", err) }()

	phone, err = NormalizePhone(phone)
	if err != nil {
		return err
	}
	db := s.db.WithContext(ctx)
	group, err := loadGroup(db, groupID, false)
	if err != nil {
		return err
	}
	if err := s.policy.authorizeMembership(actorUserID, group); err != nil {
		return err
	}
	err = db.Where("group_id = ? AND invited_phone_num = ?", groupID, phone).Delete(&models.GroupInvite{}).Error
	return storeErr("revoke invite", err)
}

func createInvite(tx *gorm.DB, groupID uuid.UUID, phone string, role models.Role, invitedBy string) (bool, error) {
	created, err := insertIgnore(tx, &models.GroupInvite{
		GroupID:         groupID,
		InvitedPhoneNum: phone,
		Role:            role,
		InvitedBy:       invitedBy,
	})
	if err != nil {
		return false, storeErr("create invite", err)
	}
	return created, nil
}

// resolvePendingInvites runs inside the caller's transaction, which must
// already hold the phone lock for user.Phone. It returns how many invites
// were consumed by a live group.
func resolvePendingInvites(tx *gorm.DB, user *models.User) (int, error) {
	var invites []models.GroupInvite
	if err := tx.Where("invited_phone_num = ?", user.Phone).Find(&invites).Error; err != nil {
		return 0, storeErr("list pending invites", err)
	}
	n := 0
	for i := range invites {
		promoted, err := promoteInvite(tx, &invites[i], user.ID)
		if err != nil {
			return 0, err
		}
		if promoted {
			n++
		}
	}
	return n, nil
}

// promoteInvite turns an invite into a membership and deletes it. The group
// row stays locked until commit, so a concurrent DeleteGroup cannot remove it
// between the check and the insert. An existing membership wins over the
// invite's role and the group owner never gets a member row. An invite whose
// group is gone is dropped and reported as not promoted.
func promoteInvite(tx *gorm.DB, invite *models.GroupInvite, userID string) (bool, error) {
	group, err := loadGroup(tx, invite.GroupID, true)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return false, err
	}
	if group != nil && group.Owner != userID {
		if _, err := insertIgnore(tx, &models.GroupMember{
			GroupID: invite.GroupID,
			UserID:  userID,
			Role:    invite.Role,
		}); err != nil {
			return false, storeErr("promote invite", err)
		}
	}
	err = tx.Where("group_id = ? AND invited_phone_num = ?", invite.GroupID, invite.InvitedPhoneNum).
		Delete(&models.GroupInvite{}).Error
	if err != nil {
		return false, storeErr("delete promoted invite", err)
	}
	return group != nil, nil
}
