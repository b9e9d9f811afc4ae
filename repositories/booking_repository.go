package repositories

import (
	"context"

	"gorm.io/gorm"

	"roomrent/constants"
	"roomrent/models"
	"roomrent/types"
)

type BookingRepository interface {
	GetBookingByID(ctx context.Context, id uint) (*models.Booking, error)
	// GetActiveBookingsForRoom returns PENDING and CONFIRMED bookings of the room.
	// A non-zero excludingID leaves that booking out.
	GetActiveBookingsForRoom(ctx context.Context, roomID uint, excludingID uint) ([]models.Booking, error)
	CountActiveForRoom(ctx context.Context, roomID uint) (int64, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	UpdateBookingStatus(ctx context.Context, id uint, status string) error
	ListByTenant(ctx context.Context, tenantID uint) ([]models.Booking, error)
	// ListConfirmedEndingBefore returns CONFIRMED bookings whose end month is before month
	ListConfirmedEndingBefore(ctx context.Context, month types.Month) ([]models.Booking, error)
	DeleteByRoom(ctx context.Context, roomID uint) error
	Count(ctx context.Context) (int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func (r *bookingRepository) GetBookingByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Preload("Room").First(&booking, id).Error; err != nil {
		return nil, notFoundOr(err, "booking not found")
	}
	return &booking, nil
}

func (r *bookingRepository) GetActiveBookingsForRoom(ctx context.Context, roomID uint, excludingID uint) ([]models.Booking, error) {
	tx := r.db.WithContext(ctx).
		Where("room_id = ? AND status IN ?", roomID, constants.ActiveBookingStatuses)
	if excludingID != 0 {
		tx = tx.Where("id <> ?", excludingID)
	}
	var bookings []models.Booking
	if err := tx.Order("start_month ASC").Find(&bookings).Error; err != nil {
		return nil, dbErr(err)
	}
	return bookings, nil
}

func (r *bookingRepository) CountActiveForRoom(ctx context.Context, roomID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("room_id = ? AND status IN ?", roomID, constants.ActiveBookingStatuses).
		Count(&n).Error
	return n, dbErr(err)
}

func (r *bookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return dbErr(r.db.WithContext(ctx).Create(booking).Error)
}

func (r *bookingRepository) UpdateBookingStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return dbErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "booking not found")
	}
	return nil
}

func (r *bookingRepository) ListByTenant(ctx context.Context, tenantID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Room.Owner").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, dbErr(err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListConfirmedEndingBefore(ctx context.Context, month types.Month) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_month < ?", constants.BookingStatusConfirmed, month).
		Order("id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, dbErr(err)
	}
	return bookings, nil
}

func (r *bookingRepository) DeleteByRoom(ctx context.Context, roomID uint) error {
	return dbErr(r.db.WithContext(ctx).Where("room_id = ?", roomID).Delete(&models.Booking{}).Error)
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Count(&n).Error
	return n, dbErr(err)
}
