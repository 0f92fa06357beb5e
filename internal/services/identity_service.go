package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/models"
	"gorm.io/gorm"
)

// Identifier names a person either by their identity-provider id (or email)
// or by phone number. Exactly one field must be set.
type Identifier struct {
	UserID string
	Phone  string
}

// trimmed drops surrounding whitespace so a blank field counts as absent.
func (i Identifier) trimmed() Identifier {
	return Identifier{UserID: strings.TrimSpace(i.UserID), Phone: strings.TrimSpace(i.Phone)}
}

func (i Identifier) validate() error {
	i = i.trimmed()
	hasID := i.UserID != ""
	hasPhone := i.Phone != ""
	switch {
	case hasID && hasPhone:
		return invalid("exactly one of userId or phone must be supplied")
	case !hasID && !hasPhone:
		return invalid("userId or phone is required")
	}
	return nil
}

// IdentityService maps caller-supplied identifiers to registered users.
// A miss is reported as found == false, never as an error.
type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

func (s *IdentityService) ResolveByPhone(ctx context.Context, phone string) (string, bool, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return "", false, err
	}
	return resolveByPhone(s.db.WithContext(ctx), normalized)
}

// ResolveByExternalID matches the identity-provider id, or the email address
// which older clients send in the same field.
func (s *IdentityService) ResolveByExternalID(ctx context.Context, id string) (string, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", false, invalid("empty user id")
	}
	return resolveByExternalID(s.db.WithContext(ctx), id)
}

// Resolve tries the single lookup path selected by which field is set.
func (s *IdentityService) Resolve(ctx context.Context, ident Identifier) (string, bool, error) {
	if err := ident.validate(); err != nil {
		return "", false, err
	}
	ident = ident.trimmed()
	if ident.Phone != "" {
		return s.ResolveByPhone(ctx, ident.Phone)
	}
	return s.ResolveByExternalID(ctx, ident.UserID)
}

func resolveByPhone(tx *gorm.DB, phone string) (string, bool, error) {
	var user models.User
	err := tx.Select("id").Where("phone = ?", phone).Take(&user).Error
	return found(user.ID, err, "resolve user by phone")
}

func resolveByExternalID(tx *gorm.DB, id string) (string, bool, error) {
	var user models.User
	err := tx.Select("id").Where("id = ? OR email = ?", id, strings.ToLower(id)).Take(&user).Error
	return found(user.ID, err, "resolve user by id")
}

func found(id string, err error, op string) (string, bool, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storeErr(op, err)
	}
	return id, true, nil
}
