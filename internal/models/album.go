package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Album struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Owner        string    `gorm:"size:128;not null;index" json:"owner"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	ThumbnailURL string    `gorm:"size:512" json:"thumbnailUrl"`
	NumImages    *int      `json:"numImages"`
	CreatedAt    time.Time `gorm:"index" json:"dateCreated"`
	UpdatedAt    time.Time `json:"lastUpdated"`
}

func (a *Album) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AlbumSharedGroup joins albums and groups; the pair is the primary key.
type AlbumSharedGroup struct {
	AlbumID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"albumId"`
	GroupID   uuid.UUID `gorm:"type:uuid;primaryKey;index:idx_album_shared_groups_group" json:"groupId"`
	CreatedAt time.Time `json:"createdAt"`

	Album *Album `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE" json:"-"`
	Group *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
}
