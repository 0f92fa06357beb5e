package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	ownerPhone  = "+15550000001"
	memberPhone = "+15550000002"
	guestPhone  = "+15550000003"
)

func countMembers(t *testing.T, db *gorm.DB, groupID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.GroupMember{}).Where("group_id = ?", groupID).Count(&n).Error)
	return n
}

func countInvites(t *testing.T, db *gorm.DB, groupID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.GroupInvite{}).Where("group_id = ?", groupID).Count(&n).Error)
	return n
}

func memberRole(t *testing.T, db *gorm.DB, groupID uuid.UUID, userID string) models.Role {
	t.Helper()
	var m models.GroupMember
	require.NoError(t, db.Take(&m, "group_id = ? AND user_id = ?", groupID, userID).Error)
	return m.Role
}
