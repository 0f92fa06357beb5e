package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is a named collection owned by exactly one user. Ownership is not
// stored as a GroupMember row.
type Group struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Owner          string    `gorm:"size:128;not null;index" json:"owner"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	EmojiThumbnail string    `gorm:"size:16" json:"emojiThumbnail"`
	CreatedAt      time.Time `json:"dateCreated"`
	UpdatedAt      time.Time `json:"lastUpdated"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
