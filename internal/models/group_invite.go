package models

import (
	"time"

	"github.com/google/uuid"
)

// GroupInvite is a pending membership for a phone number that has no
// registered user yet. At most one invite exists per (group, phone).
type GroupInvite struct {
	GroupID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"groupId"`
	InvitedPhoneNum string    `gorm:"size:20;primaryKey;index:idx_group_invites_phone" json:"invitedPhoneNum"`
	Role            Role      `gorm:"type:varchar(20);not null;default:'VIEWER'" json:"role"`
	InvitedBy       string    `gorm:"size:128" json:"invitedBy"`
	CreatedAt       time.Time `json:"createdAt"`

	Group *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
}
