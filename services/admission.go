package services

import (
	"github.com/shopspring/decimal"

	"roomrent/constants"
	"roomrent/errors"
	"roomrent/models"
	"roomrent/types"
)

// AdmissionRequest is everything the admission check needs; it does no I/O
type AdmissionRequest struct {
	TenantID   uint
	StartMonth string
	EndMonth   string
	// Room is nil when the requested room does not exist. Its Owner must be loaded.
	Room *models.Room
	// Active holds the room's PENDING and CONFIRMED bookings
	Active []models.Booking
}

// AdmitBooking validates a rent request and prices it.
// On success the returned booking is PENDING and not yet stored.
func AdmitBooking(req AdmissionRequest) (*models.Booking, error) {
	start, err := types.ParseMonth(req.StartMonth)
	if err != nil {
		return nil, errors.Validation("startMonth", "start month must be a YYYY-MM month between 2000 and 2100").
			WithDetail("value", req.StartMonth)
	}
	end, err := types.ParseMonth(req.EndMonth)
	if err != nil {
		return nil, errors.Validation("endMonth", "end month must be a YYYY-MM month between 2000 and 2100").
			WithDetail("value", req.EndMonth)
	}
	if !end.After(start) {
		return nil, errors.Validation("endMonth", "end month must be after start month").
			WithDetail("startMonth", start.String()).
			WithDetail("endMonth", end.String())
	}

	months := types.RentalMonths(start, end)

	room := req.Room
	if room == nil {
		return nil, errors.NotFound("room not found")
	}

	// Overlap is checked before the availability gate, which a confirmed booking closes.
	for i := range req.Active {
		existing := &req.Active[i]
		if existing.IsActive() && existing.Overlaps(start, end) {
			return nil, errors.Conflict("room already rented for overlapping months").
				WithDetail("bookingId", existing.ID).
				WithDetail("startMonth", existing.StartMonth.String()).
				WithDetail("endMonth", existing.EndMonth.String())
		}
	}

	if err := checkBookable(room); err != nil {
		return nil, err
	}

	return &models.Booking{
		RoomID:      room.ID,
		TenantID:    req.TenantID,
		StartMonth:  start,
		EndMonth:    end,
		TotalAmount: room.MonthlyRent.Mul(decimal.NewFromInt(int64(months))),
		Status:      constants.BookingStatusPending,
	}, nil
}

// checkBookable applies the public booking gate: room available and approved, owner approved
func checkBookable(room *models.Room) error {
	if !room.IsAvailable {
		return errors.Unavailable("room is not available").WithDetail("roomId", room.ID)
	}
	if !room.IsApproved() {
		return errors.Unavailable("room is not approved for booking").WithDetail("roomId", room.ID)
	}
	if room.Owner == nil || !room.Owner.IsApprovedOwner() {
		return errors.Unavailable("room owner is not approved").WithDetail("roomId", room.ID)
	}
	return nil
}
