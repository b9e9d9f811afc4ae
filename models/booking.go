package models

import (
	"time"

	"github.com/shopspring/decimal"

	"roomrent/constants"
	"roomrent/types"
)

// Booking is a tenant's rent request for a room over a month range
type Booking struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	Reference  string      `json:"reference" gorm:"size:36;uniqueIndex;not null"`
	RoomID     uint        `json:"roomId" gorm:"index;not null"`
	Room       *Room       `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	TenantID   uint        `json:"tenantId" gorm:"index;not null"`
	Tenant     *User       `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	StartMonth types.Month `json:"startMonth" gorm:"size:7;not null"`
	EndMonth   types.Month `json:"endMonth" gorm:"size:7;not null"`
	// TotalAmount is fixed when the booking is admitted and never recomputed
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(14,2);not null"`
	Status      string          `json:"status" gorm:"size:16;index;not null;default:PENDING"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// IsActive reports whether the booking still holds its months
func (b *Booking) IsActive() bool {
	return b.Status == constants.BookingStatusPending || b.Status == constants.BookingStatusConfirmed
}

// Overlaps reports whether the booking shares a month with [start, end]
func (b *Booking) Overlaps(start, end types.Month) bool {
	return types.RangesOverlap(start, end, b.StartMonth, b.EndMonth)
}
