package models

import (
	"time"
)

// User is owned by the external identity provider; ID is the provider's subject.
type User struct {
	ID           string    `gorm:"size:128;primaryKey" json:"id"`
	FirstName    string    `gorm:"size:100" json:"firstName"`
	LastName     string    `gorm:"size:100" json:"lastName"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:idx_users_email" json:"email"`
	Phone        string    `gorm:"size:20;not null;uniqueIndex:idx_users_phone" json:"phone"`
	DateOfBirth  string    `gorm:"size:10" json:"dateOfBirth"`
	ProfileImage *string   `gorm:"size:512" json:"profileImage"`
	Country      string    `gorm:"size:100" json:"country"`
	State        string    `gorm:"size:100" json:"state"`
	Subscription string    `gorm:"size:20;not null;default:'FREE'" json:"subscription"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
