package services

import (
	"roomrent/constants"
	"roomrent/errors"
	"roomrent/models"
)

// Actor is the caller of a booking transition
type Actor struct {
	ID   uint
	Role string
}

// SystemActor is used by scheduled jobs
var SystemActor = Actor{Role: constants.RoleSystem}

// Authorizer decides whether actor may move booking to target
type Authorizer interface {
	AuthorizeTransition(actor Actor, booking *models.Booking, room *models.Room, target string) error
}

// RoleAuthorizer lets the room owner confirm, cancel or complete, the booking's
// tenant cancel, and the system actor complete
type RoleAuthorizer struct{}

func NewRoleAuthorizer() *RoleAuthorizer {
	return &RoleAuthorizer{}
}

func (RoleAuthorizer) AuthorizeTransition(actor Actor, booking *models.Booking, room *models.Room, target string) error {
	switch {
	case actor.Role == constants.RoleSystem:
		if target == constants.BookingStatusCompleted {
			return nil
		}
	case actor.Role == constants.RoleOwner && room != nil && room.OwnerID == actor.ID:
		switch target {
		case constants.BookingStatusConfirmed, constants.BookingStatusCancelled, constants.BookingStatusCompleted:
			return nil
		}
	case actor.Role == constants.RoleTenant && booking.TenantID == actor.ID:
		if target == constants.BookingStatusCancelled {
			return nil
		}
	}
	return errors.Forbidden("not allowed to change this booking").
		WithDetail("bookingId", booking.ID).
		WithDetail("status", target)
}
