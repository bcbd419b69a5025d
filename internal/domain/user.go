package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered user
type User struct {
	ID             int32            `json:"id"`
	Email          string           `json:"email"`
	Username       string           `json:"username"`
	Name           string           `json:"name"`
	PasswordHash   string           `json:"-"`
	Age            *int32           `json:"age,omitempty"`
	College        *string          `json:"college,omitempty"`
	Year           *string          `json:"year,omitempty"`
	Course         *string          `json:"course,omitempty"`
	ExpectedIncome *decimal.Decimal `json:"expectedIncome,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Profile holds the display data of a user
type Profile struct {
	UserID     int32      `json:"userId"`
	FullName   string     `json:"fullName"`
	AvatarKey  *string    `json:"-"`
	LastActive *time.Time `json:"lastActive,omitempty"`
}

// UserWithProfile joins a user with its profile for listings
type UserWithProfile struct {
	User
	Profile Profile `json:"profile"`
}

// UserRepository defines the interface for user persistence operations
type UserRepository interface {
	Create(user *User, fullName string) (*User, error)
	GetByID(id int32) (*User, error)
	GetByEmail(email string) (*User, error)
	ListWithProfiles() ([]*UserWithProfile, error)
	UpdatePasswordHash(id int32, hash string) error
}

// ProfileRepository defines the interface for profile persistence operations
type ProfileRepository interface {
	GetByUserID(userID int32) (*Profile, error)
	UpdateFullName(userID int32, fullName string) (*Profile, error)
	UpdateAvatar(userID int32, avatarKey string) (*Profile, error)
	TouchLastActive(userID int32, at time.Time) error
}

// PresenceRepository tracks when users were last seen
type PresenceRepository interface {
	Touch(userID int32, at time.Time) error
	LastSeen(userIDs []int32) (map[int32]time.Time, error)
}
