package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the platform.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents a platform user.
type User struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Mobile             string    `json:"mobile"`
	Company            string    `json:"company"`
	Password           string    `json:"-"`
	Role               Role      `json:"role"`
	AccessFlag         bool      `json:"access_flag"`
	FirstLoginRequired bool      `json:"first_login_required"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UserPublic is User without sensitive fields for API responses.
type UserPublic struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Mobile             string    `json:"mobile"`
	Company            string    `json:"company"`
	Role               Role      `json:"role"`
	AccessFlag         bool      `json:"access_flag"`
	FirstLoginRequired bool      `json:"first_login_required"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToPublic converts User to UserPublic.
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Mobile:             u.Mobile,
		Company:            u.Company,
		Role:               u.Role,
		AccessFlag:         u.AccessFlag,
		FirstLoginRequired: u.FirstLoginRequired,
		CreatedAt:          u.CreatedAt,
	}
}
