package models

import (
	"agencydesk-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName   string    `gorm:"not null" json:"fullName"`
	EmployeeID string    `gorm:"uniqueIndex;not null" json:"employeeId"`
	Username   string    `gorm:"uniqueIndex;not null" json:"username"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`

	Role         Role   `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	MobileNumber string `json:"mobileNumber"`
	ProfilePic   string `json:"profilePic"`
	RefreshToken string `json:"-"`

	LastLogin *time.Time `json:"lastLogin"`

	gorm.Model `json:"-"`
}

// Initialize UUID and hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
