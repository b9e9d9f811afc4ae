package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"roomrent/constants"
)

type Room struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OwnerID     uint            `json:"ownerId" gorm:"index;not null"`
	Owner       *User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description"`
	Address     string          `json:"address"`
	City        string          `json:"city" gorm:"index"`
	State       string          `json:"state"`
	ZipCode     string          `json:"zipCode"`
	MonthlyRent decimal.Decimal `json:"monthlyRent" gorm:"type:decimal(12,2);not null"`
	Bedrooms    int             `json:"bedrooms" gorm:"default:1"`
	Bathrooms   float64         `json:"bathrooms" gorm:"default:1"`
	Area        *float64        `json:"area"`
	Amenities   string          `json:"amenities"`
	Images      datatypes.JSON  `json:"images"`
	// IsAvailable is written only by the booking state machine
	IsAvailable bool      `json:"isAvailable" gorm:"not null"`
	Status      string    `json:"status" gorm:"size:16;not null;default:PENDING"`
	Bookings    []Booking `json:"bookings,omitempty" gorm:"foreignKey:RoomID"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Room) IsApproved() bool {
	return r.Status == constants.ApprovalApproved
}
