package models

import (
	"time"
)

// Role values carried on users and audit entries.
const (
	RoleApplicant = "applicant"
	RoleReviewer  = "reviewer"
)

type User struct {
	UserID            int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Email             string     `gorm:"column:email;unique" json:"email"`
	Password          string     `gorm:"column:password" json:"-"`
	DisplayName       string     `gorm:"column:display_name" json:"display_name"`
	Role              string     `gorm:"column:role" json:"role"`
	ExternalAccountID *string    `gorm:"column:external_account_id" json:"external_account_id,omitempty"`
	OrganizationID    *int       `gorm:"column:organization_id" json:"organization_id,omitempty"`
	CreateAt          *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt          *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt          *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsReviewer reports whether the user carries the reviewer role.
func (u *User) IsReviewer() bool {
	return u.Role == RoleReviewer
}
