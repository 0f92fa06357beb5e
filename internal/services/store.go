package services

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loadGroup fetches a group, optionally taking a row lock for the rest of the
// enclosing transaction. SQLite ignores the locking clause.
func loadGroup(tx *gorm.DB, groupID uuid.UUID, forUpdate bool) (*models.Group, error) {
	var group models.Group
	q := tx
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Take(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("group %s", groupID)
		}
		return nil, storeErr("load group", err)
	}
	return &group, nil
}

func loadAlbum(tx *gorm.DB, albumID uuid.UUID) (*models.Album, error) {
	var album models.Album
	if err := tx.Take(&album, "id = ?", albumID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("album %s", albumID)
		}
		return nil, storeErr("load album", err)
	}
	return &album, nil
}

// lockPhone serialises every transaction that decides between an invite and
// a membership for one phone number, including user registration. Postgres
// uses a transaction-scoped advisory lock; SQLite already serialises writers.
func lockPhone(tx *gorm.DB, phone string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return storeErr("lock phone", tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "phone:"+phone).Error)
}

// insertIgnore inserts value unless its primary key already exists and
// reports whether a row was written.
func insertIgnore(tx *gorm.DB, value any) (bool, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(value)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
