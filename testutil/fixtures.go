package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"roomrent/constants"
	"roomrent/models"
)

// CreateOwner inserts an owner with the given approval status
func CreateOwner(t testing.TB, db *gorm.DB, status string) *models.User {
	t.Helper()
	owner := &models.User{
		Name:         "Owner " + status,
		Email:        uuid.NewString() + "@owner.test",
		PasswordHash: "x",
		Role:         constants.RoleOwner,
		OwnerStatus:  &status,
	}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("create owner: %v", err)
	}
	return owner
}

// CreateTenant inserts a tenant
func CreateTenant(t testing.TB, db *gorm.DB) *models.User {
	t.Helper()
	tenant := &models.User{
		Name:         "Tenant",
		Email:        uuid.NewString() + "@tenant.test",
		PasswordHash: "x",
		Role:         constants.RoleTenant,
	}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("create tenant: %v", err)
	}
	return tenant
}

// CreateRoom inserts an available, approved room for owner
func CreateRoom(t testing.TB, db *gorm.DB, owner *models.User, rent int64) *models.Room {
	t.Helper()
	room := &models.Room{
		OwnerID:     owner.ID,
		Title:       "Room",
		City:        "Kathmandu",
		MonthlyRent: decimal.NewFromInt(rent),
		Bedrooms:    1,
		Bathrooms:   1,
		IsAvailable: true,
		Status:      constants.ApprovalApproved,
	}
	if err := db.Create(room).Error; err != nil {
		t.Fatalf("create room: %v", err)
	}
	return room
}
