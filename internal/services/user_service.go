package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/models"
	"gorm.io/gorm"
)

type CreateUserInput struct {
	ID           string
	FirstName    string
	LastName     string
	DateOfBirth  string
	Email        string
	Phone        string
	ProfileImage string
	Country      string
	State        string
}

// UserService registers users issued by the identity provider and runs the
// invite-resolution hook for their phone number.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser inserts the user on the FREE tier and, in the same transaction,
// promotes every pending invite addressed to the user's phone. It returns the
// number of invites consumed.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, int, error) {
	phone, err := NormalizePhone(in.Phone)
	if err != nil {
		return nil, 0, err
	}
	if strings.TrimSpace(in.ID) == "" {
		return nil, 0, invalid("user id is required")
	}

	user := &models.User{
		ID:           strings.TrimSpace(in.ID),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		DateOfBirth:  in.DateOfBirth,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        phone,
		Country:      in.Country,
		State:        in.State,
		Subscription: models.SubscriptionFree,
	}
	if in.ProfileImage != "" {
		img := in.ProfileImage
		user.ProfileImage = &img
	}

	var resolved int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPhone(tx, phone); err != nil {
			return err
		}
		var clashes int64
		err := tx.Model(&models.User{}).
			Where("id = ? OR email = ? OR phone = ?", user.ID, user.Email, user.Phone).
			Count(&clashes).Error
		if err != nil {
			return storeErr("check existing user", err)
		}
		if clashes > 0 {
			return conflict("user with id, email or phone already exists")
		}
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("user %s already exists", user.ID)
			}
			return storeErr("create user", err)
		}
		resolved, err = resolvePendingInvites(tx, user)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	observeInvitesResolved(resolved)
	if resolved > 0 {
		slog.Info("pending invites resolved on registration", "user_id", user.ID, "count", resolved)
	}
	return user, resolved, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Take(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user %s", userID)
		}
		return nil, storeErr("load user", err)
	}
	return &user, nil
}
