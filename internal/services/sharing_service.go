package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SharingService is the many-to-many ledger between albums and groups. It is
// independent of membership: unsharing never touches member rows.
type SharingService struct {
	db     *gorm.DB
	policy *RolePolicy
}

func NewSharingService(db *gorm.DB, policy *RolePolicy) *SharingService {
	return &SharingService{db: db, policy: policy}
}

// ShareAlbum attaches an album to a group. Re-sharing is a no-op success.
func (s *SharingService) ShareAlbum(ctx context.Context, actorUserID string, albumID, groupID uuid.UUID) (err error) {
	defer func() { observeSharing("share_album", err) }()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := loadGroup(tx, groupID, true)
		if err != nil {
			return err
		}
		if err := s.policy.authorizeSharing(actorUserID, group); err != nil {
			return err
		}
		if _, err := loadAlbum(tx, albumID); err != nil {
			return err
		}
		if _, err := insertIgnore(tx, &models.AlbumSharedGroup{AlbumID: albumID, GroupID: groupID}); err != nil {
			return storeErr("share album", err)
		}
		return nil
	})
}

// UnshareAlbum detaches an album from a group. Absence is not an error.
func (s *SharingService) UnshareAlbum(ctx context.Context, actorUserID string, albumID, groupID uuid.UUID) (err error) {
	defer func() { observeSharing("unshare_album", err) }()

	db := s.db.WithContext(ctx)
	group, err := loadGroup(db, groupID, false)
	if err != nil {
		return err
	}
	if err := s.policy.authorizeSharing(actorUserID, group); err != nil {
		return err
	}
	err = db.Where("album_id = ? AND group_id = ?", albumID, groupID).Delete(&models.AlbumSharedGroup{}).Error
	return storeErr("unshare album", err)
}

// AlbumsOfGroup lists the albums shared into a group, oldest album first.
func (s *SharingService) AlbumsOfGroup(ctx context.Context, groupID uuid.UUID) ([]models.Album, error) {
	db := s.db.WithContext(ctx)
	if _, err := loadGroup(db, groupID, false); err != nil {
		return nil, err
	}

	var albums []models.Album
	err := db.Model(&models.Album{}).
		Joins("JOIN album_shared_groups ON album_shared_groups.album_id = albums.id").
		Where("album_shared_groups.group_id = ?", groupID).
		Order("albums.created_at ASC").
		Find(&albums).Error
	if err != nil {
		return nil, storeErr("list group albums", err)
	}
	return albums, nil
}
