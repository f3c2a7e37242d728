package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

// User is an account row in the hosted store.
type User struct {
	gorm.Model   `json:"-"`
	PublicID     string    `gorm:"size:100;uniqueIndex" json:"id"`
	Email        string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null;size:200" json:"-"`
	Birthday     time.Time `json:"birthday"`
	Role         Role      `gorm:"not null;size:10;index" json:"role"`
	Subjects     []string  `gorm:"serializer:json" json:"subjects"`
}

// Opposite returns the role this role matches against.
func (r Role) Opposite() Role {
	if r == RoleMentor {
		return RoleMentee
	}
	return RoleMentor
}
