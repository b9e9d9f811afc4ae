package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roomrent/constants"
	"roomrent/errors"
	"roomrent/types"
)

func TestNextStatusAllowedTransitions(t *testing.T) {
	allowed := [][2]string{
		{constants.BookingStatusPending, constants.BookingStatusConfirmed},
		{constants.BookingStatusPending, constants.BookingStatusCancelled},
		{constants.BookingStatusConfirmed, constants.BookingStatusCancelled},
		{constants.BookingStatusConfirmed, constants.BookingStatusCompleted},
	}
	for _, tr := range allowed {
		next, err := NextStatus(tr[0], tr[1])
		assert.NoError(t, err, "%s -> %s", tr[0], tr[1])
		assert.Equal(t, tr[1], next)
	}
}

func TestNextStatusInvalidTransitions(t *testing.T) {
	invalid := [][2]string{
		{constants.BookingStatusPending, constants.BookingStatusCompleted},
		{constants.BookingStatusPending, constants.BookingStatusPending},
		{constants.BookingStatusConfirmed, constants.BookingStatusConfirmed},
		{constants.BookingStatusConfirmed, constants.BookingStatusPending},
	}
	for _, tr := range invalid {
		_, err := NextStatus(tr[0], tr[1])
		assert.True(t, errors.Is(err, errors.ErrInvalidTransition), "%s -> %s", tr[0], tr[1])
	}
}

func TestNextStatusFromTerminalIsInvalidState(t *testing.T) {
	for _, from := range []string{constants.BookingStatusCancelled, constants.BookingStatusCompleted} {
		for _, to := range []string{
			constants.BookingStatusPending,
			constants.BookingStatusConfirmed,
			constants.BookingStatusCancelled,
			constants.BookingStatusCompleted,
		} {
			_, err := NextStatus(from, to)
			assert.True(t, errors.Is(err, errors.ErrInvalidState), "%s -> %s", from, to)
		}
	}
}

func TestCancelCancelledMessage(t *testing.T) {
	_, err := GetBookingState(constants.BookingStatusCancelled).Cancel()

	appErr := errors.GetAppError(err)
	if assert.NotNil(t, appErr) {
		assert.Equal(t, "cannot cancel a booking that is already CANCELLED", appErr.Message)
	}
}

func TestNextStatusUnknownTarget(t *testing.T) {
	_, err := NextStatus(constants.BookingStatusPending, "ARCHIVED")
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestBookingOverlapsAndIsActive(t *testing.T) {
	b := Booking{
		StartMonth: types.MustParseMonth("2024-01"),
		EndMonth:   types.MustParseMonth("2024-03"),
		Status:     constants.BookingStatusConfirmed,
	}

	assert.True(t, b.IsActive())
	assert.True(t, b.Overlaps(types.MustParseMonth("2024-02"), types.MustParseMonth("2024-04")))
	assert.False(t, b.Overlaps(types.MustParseMonth("2024-04"), types.MustParseMonth("2024-06")))

	b.Status = constants.BookingStatusCompleted
	assert.False(t, b.IsActive())
}
