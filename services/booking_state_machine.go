package services

import (
	"context"

	"roomrent/constants"
	"roomrent/models"
	"roomrent/repositories"
)

// bookingStateMachine moves a booking along the status graph and keeps the
// room's availability flag in step. It is the only caller of the store's
// AvailabilityWriter.
type bookingStateMachine struct{}

// apply must run inside tx's transaction with the room lock held
func (bookingStateMachine) apply(ctx context.Context, tx *repositories.Store, booking *models.Booking, target string) error {
	next, err := models.NextStatus(booking.Status, target)
	if err != nil {
		return err
	}

	if err := tx.Bookings().UpdateBookingStatus(ctx, booking.ID, next); err != nil {
		return err
	}

	availability := tx.Availability()
	switch next {
	case constants.BookingStatusConfirmed:
		if err := availability.UpdateRoomAvailability(ctx, booking.RoomID, false); err != nil {
			return err
		}
	case constants.BookingStatusCancelled, constants.BookingStatusCompleted:
		others, err := tx.Bookings().GetActiveBookingsForRoom(ctx, booking.RoomID, booking.ID)
		if err != nil {
			return err
		}
		// another active booking still holds the room
		if len(others) == 0 {
			if err := availability.UpdateRoomAvailability(ctx, booking.RoomID, true); err != nil {
				return err
			}
		}
	}

	booking.Status = next
	return nil
}
