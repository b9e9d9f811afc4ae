package models

import (
	"time"

	"roomrent/constants"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:TENANT" json:"role"`
	// OwnerStatus gates whether an owner's rooms can be booked; nil for other roles
	OwnerStatus *string `gorm:"size:16" json:"ownerStatus"`
	Rooms       []Room  `gorm:"foreignKey:OwnerID" json:"-"`
}

// IsApprovedOwner reports whether the user is an owner an admin has approved
func (u *User) IsApprovedOwner() bool {
	return u.Role == constants.RoleOwner && u.OwnerStatus != nil && *u.OwnerStatus == constants.ApprovalApproved
}
