package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrent/constants"
	"roomrent/errors"
	"roomrent/models"
	"roomrent/types"
)

func bookableRoom(rent int64) *models.Room {
	approved := constants.ApprovalApproved
	return &models.Room{
		ID:          1,
		OwnerID:     10,
		Owner:       &models.User{ID: 10, Role: constants.RoleOwner, OwnerStatus: &approved},
		MonthlyRent: decimal.NewFromInt(rent),
		IsAvailable: true,
		Status:      constants.ApprovalApproved,
	}
}

func activeBooking(id uint, start, end, status string) models.Booking {
	return models.Booking{
		ID:         id,
		RoomID:     1,
		StartMonth: types.MustParseMonth(start),
		EndMonth:   types.MustParseMonth(end),
		Status:     status,
	}
}

func TestAdmitBookingPricesThreeMonths(t *testing.T) {
	booking, err := AdmitBooking(AdmissionRequest{
		TenantID:   5,
		StartMonth: "2024-01",
		EndMonth:   "2024-04",
		Room:       bookableRoom(5000),
	})
	require.NoError(t, err)

	assert.True(t, booking.TotalAmount.Equal(decimal.NewFromInt(15000)), booking.TotalAmount.String())
	assert.Equal(t, constants.BookingStatusPending, booking.Status)
	assert.Equal(t, uint(5), booking.TenantID)
	assert.Equal(t, uint(1), booking.RoomID)
}

func TestAdmitBookingCrossYear(t *testing.T) {
	booking, err := AdmitBooking(AdmissionRequest{StartMonth: "2023-11", EndMonth: "2024-02", Room: bookableRoom(1000)})
	require.NoError(t, err)
	assert.Equal(t, "3000", booking.TotalAmount.String())
}

func TestAdmitBookingValidation(t *testing.T) {
	cases := []struct {
		name, start, end, field string
	}{
		{"same month", "2024-03", "2024-03", "endMonth"},
		{"end before start", "2024-05", "2024-03", "endMonth"},
		{"bad start", "2024-13", "2025-01", "startMonth"},
		{"bad end", "2024-01", "24-02", "endMonth"},
		{"year out of range", "1999-12", "2000-02", "startMonth"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AdmitBooking(AdmissionRequest{StartMonth: tc.start, EndMonth: tc.end, Room: bookableRoom(1000)})

			assert.True(t, errors.Is(err, errors.ErrValidation))
			assert.Equal(t, tc.field, errors.GetAppError(err).Field)
		})
	}
}

func TestAdmitBookingValidatesBeforeRoomLookup(t *testing.T) {
	_, err := AdmitBooking(AdmissionRequest{StartMonth: "2024-03", EndMonth: "2024-03"})
	assert.True(t, errors.Is(err, errors.ErrValidation))

	_, err = AdmitBooking(AdmissionRequest{StartMonth: "2024-03", EndMonth: "2024-04"})
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestAdmitBookingUnavailableRooms(t *testing.T) {
	pending := constants.ApprovalPending

	notAvailable := bookableRoom(1000)
	notAvailable.IsAvailable = false

	notApproved := bookableRoom(1000)
	notApproved.Status = constants.ApprovalPending

	ownerPending := bookableRoom(1000)
	ownerPending.Owner.OwnerStatus = &pending

	noOwner := bookableRoom(1000)
	noOwner.Owner = nil

	for name, room := range map[string]*models.Room{
		"not available":  notAvailable,
		"not approved":   notApproved,
		"owner pending":  ownerPending,
		"owner unloaded": noOwner,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := AdmitBooking(AdmissionRequest{StartMonth: "2024-01", EndMonth: "2024-02", Room: room})
			assert.True(t, errors.Is(err, errors.ErrUnavailable))
		})
	}
}

func TestAdmitBookingOverlapConflict(t *testing.T) {
	room := bookableRoom(1000)
	room.IsAvailable = false
	active := []models.Booking{activeBooking(7, "2024-01", "2024-03", constants.BookingStatusConfirmed)}

	for _, r := range [][2]string{
		{"2024-01", "2024-03"},
		{"2024-02", "2024-04"},
		{"2023-10", "2024-01"},
		{"2024-03", "2024-06"},
	} {
		_, err := AdmitBooking(AdmissionRequest{StartMonth: r[0], EndMonth: r[1], Room: room, Active: active})

		require.True(t, errors.Is(err, errors.ErrConflict), "%s..%s", r[0], r[1])
		appErr := errors.GetAppError(err)
		assert.Equal(t, "room already rented for overlapping months", appErr.Message)
		assert.Equal(t, uint(7), appErr.Details["bookingId"])
		assert.Equal(t, "2024-01", appErr.Details["startMonth"])
		assert.Equal(t, "2024-03", appErr.Details["endMonth"])
	}
}

func TestAdmitBookingAdjacentRangeAllowed(t *testing.T) {
	active := []models.Booking{activeBooking(7, "2024-01", "2024-03", constants.BookingStatusPending)}

	_, err := AdmitBooking(AdmissionRequest{StartMonth: "2024-04", EndMonth: "2024-06", Room: bookableRoom(1000), Active: active})
	assert.NoError(t, err)
}

func TestAdmitBookingIgnoresInactive(t *testing.T) {
	active := []models.Booking{
		activeBooking(7, "2024-01", "2024-03", constants.BookingStatusCancelled),
		activeBooking(8, "2024-01", "2024-03", constants.BookingStatusCompleted),
	}

	_, err := AdmitBooking(AdmissionRequest{StartMonth: "2024-02", EndMonth: "2024-04", Room: bookableRoom(1000), Active: active})
	assert.NoError(t, err)
}
