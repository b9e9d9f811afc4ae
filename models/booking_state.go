package models

import (
	"roomrent/constants"
	"roomrent/errors"
)

// BookingState is the behaviour of a booking in one status.
// Each method returns the status the booking moves to.
type BookingState interface {
	Confirm() (string, error)
	Cancel() (string, error)
	Complete() (string, error)
}

// PendingState waits for the owner's decision
type PendingState struct{}

func (s *PendingState) Confirm() (string, error) {
	return constants.BookingStatusConfirmed, nil
}

func (s *PendingState) Cancel() (string, error) {
	return constants.BookingStatusCancelled, nil
}

func (s *PendingState) Complete() (string, error) {
	return "", errors.InvalidTransition(constants.BookingStatusPending, constants.BookingStatusCompleted)
}

// ConfirmedState holds the room
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm() (string, error) {
	return "", errors.InvalidTransition(constants.BookingStatusConfirmed, constants.BookingStatusConfirmed)
}

func (s *ConfirmedState) Cancel() (string, error) {
	return constants.BookingStatusCancelled, nil
}

func (s *ConfirmedState) Complete() (string, error) {
	return constants.BookingStatusCompleted, nil
}

// terminalState rejects every transition
type terminalState struct {
	status string
}

func (s *terminalState) fail(verb string) (string, error) {
	return "", errors.InvalidState("cannot " + verb + " a booking that is already " + s.status).
		WithDetail("status", s.status)
}

func (s *terminalState) Confirm() (string, error) { return s.fail("confirm") }

func (s *terminalState) Cancel() (string, error) { return s.fail("cancel") }

func (s *terminalState) Complete() (string, error) { return s.fail("complete") }

// GetBookingState returns the state for a booking status
func GetBookingState(status string) BookingState {
	switch status {
	case constants.BookingStatusPending:
		return &PendingState{}
	case constants.BookingStatusConfirmed:
		return &ConfirmedState{}
	default:
		return &terminalState{status: status}
	}
}

// NextStatus validates moving a booking from its current status to target
func NextStatus(current, target string) (string, error) {
	state := GetBookingState(current)
	switch target {
	case constants.BookingStatusConfirmed:
		return state.Confirm()
	case constants.BookingStatusCancelled:
		return state.Cancel()
	case constants.BookingStatusCompleted:
		return state.Complete()
	case constants.BookingStatusPending:
		if current == constants.BookingStatusCancelled || current == constants.BookingStatusCompleted {
			return (&terminalState{status: current}).fail("reopen")
		}
		return "", errors.InvalidTransition(current, target)
	default:
		return "", errors.Validation("status", "unknown booking status "+target)
	}
}
