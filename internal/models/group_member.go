package models

import (
	"time"

	"github.com/google/uuid"
)

// GroupMember is a confirmed membership. (group_id, user_id) is the primary
// key, so a user can hold at most one membership per group.
type GroupMember struct {
	GroupID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"groupId"`
	UserID    string    `gorm:"size:128;primaryKey;index:idx_group_members_user" json:"userId"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'VIEWER'" json:"role"`
	DateAdded time.Time `gorm:"autoCreateTime;index" json:"dateAdded"`

	Group *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
}
