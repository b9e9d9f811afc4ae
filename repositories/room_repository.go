package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"roomrent/constants"
	"roomrent/models"
)

// RoomFilter narrows public room listings
type RoomFilter struct {
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Bedrooms *int
}

type RoomRepository interface {
	GetRoomByID(ctx context.Context, id uint) (*models.Room, error)
	// LockRoomByID reads the room and holds a row lock until the transaction ends
	LockRoomByID(ctx context.Context, id uint) (*models.Room, error)
	GetOwnedRoom(ctx context.Context, id, ownerID uint) (*models.Room, error)
	ListPublicRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Room, error)
	ListByStatus(ctx context.Context, status string) ([]models.Room, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	// UpdateRoomDetails writes the listing columns; availability is never part of it
	UpdateRoomDetails(ctx context.Context, id uint, fields map[string]interface{}) error
	UpdateRoomStatus(ctx context.Context, id uint, status string) error
	DeleteRoom(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// AvailabilityWriter is the only path that changes Room.IsAvailable
type AvailabilityWriter interface {
	UpdateRoomAvailability(ctx context.Context, roomID uint, available bool) error
}

// roomDetailColumns are the columns an owner may edit
var roomDetailColumns = map[string]bool{
	"title": true, "description": true, "address": true, "city": true, "state": true,
	"zip_code": true, "monthly_rent": true, "bedrooms": true, "bathrooms": true,
	"area": true, "amenities": true, "images": true,
}

type roomRepository struct {
	db *gorm.DB
}

func (r *roomRepository) GetRoomByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Preload("Owner").First(&room, id).Error; err != nil {
		return nil, notFoundOr(err, "room not found")
	}
	return &room, nil
}

func (r *roomRepository) LockRoomByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error
	if err != nil {
		return nil, notFoundOr(err, "room not found")
	}
	var owner models.User
	if err := r.db.WithContext(ctx).First(&owner, room.OwnerID).Error; err != nil {
		return nil, notFoundOr(err, "room owner not found")
	}
	room.Owner = &owner
	return &room, nil
}

func (r *roomRepository) GetOwnedRoom(ctx context.Context, id, ownerID uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Bookings.Tenant").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&room).Error
	if err != nil {
		return nil, notFoundOr(err, "room not found")
	}
	return &room, nil
}

func (r *roomRepository) ListPublicRooms(ctx context.Context, filter RoomFilter) ([]models.Room, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Joins("JOIN users ON users.id = rooms.owner_id").
		Where("rooms.is_available = ? AND rooms.status = ? AND users.owner_status = ?",
			true, constants.ApprovalApproved, constants.ApprovalApproved).
		Preload("Owner")

	if filter.MinPrice != nil {
		tx = tx.Where("rooms.monthly_rent >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		tx = tx.Where("rooms.monthly_rent <= ?", *filter.MaxPrice)
	}
	if filter.Bedrooms != nil {
		tx = tx.Where("rooms.bedrooms = ?", *filter.Bedrooms)
	}

	var rooms []models.Room
	if err := tx.Order("rooms.created_at DESC").Find(&rooms).Error; err != nil {
		return nil, dbErr(err)
	}
	return rooms, nil
}

func (r *roomRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Bookings.Tenant").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, dbErr(err)
	}
	return rooms, nil
}

func (r *roomRepository) ListByStatus(ctx context.Context, status string) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, dbErr(err)
	}
	return rooms, nil
}

func (r *roomRepository) CreateRoom(ctx context.Context, room *models.Room) error {
	return dbErr(r.db.WithContext(ctx).Create(room).Error)
}

func (r *roomRepository) UpdateRoomDetails(ctx context.Context, id uint, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields))
	for column, value := range fields {
		if roomDetailColumns[column] {
			updates[column] = value
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return dbErr(r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Updates(updates).Error)
}

func (r *roomRepository) UpdateRoomStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return dbErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "room not found")
	}
	return nil
}

func (r *roomRepository) DeleteRoom(ctx context.Context, id uint) error {
	return dbErr(r.db.WithContext(ctx).Delete(&models.Room{}, id).Error)
}

func (r *roomRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).Count(&n).Error
	return n, dbErr(err)
}

type roomAvailability struct {
	db *gorm.DB
}

func (r *roomAvailability) UpdateRoomAvailability(ctx context.Context, roomID uint, available bool) error {
	return dbErr(r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("is_available", available).Error)
}

func (r *roomRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).Where("status = ?", status).Count(&n).Error
	return n, dbErr(err)
}
