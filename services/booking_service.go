package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"roomrent/constants"
	"roomrent/errors"
	"roomrent/models"
	"roomrent/repositories"
	"roomrent/services/logger"
	"roomrent/services/notification"
	"roomrent/types"
)

// BookingService admits rent requests and drives booking status changes.
// Both paths hold the room's lock and run in one transaction.
type BookingService struct {
	store      *repositories.Store
	locker     RoomLocker
	authorizer Authorizer
	notifier   notification.Service
	cache      RoomCache
	logger     logger.Logger
	machine    bookingStateMachine
}

type BookingServiceOptions struct {
	Store      *repositories.Store
	Locker     RoomLocker
	Authorizer Authorizer
	Notifier   notification.Service
	Cache      RoomCache
	Logger     logger.Logger
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	s := &BookingService{
		store:      opts.Store,
		locker:     opts.Locker,
		authorizer: opts.Authorizer,
		notifier:   opts.Notifier,
		cache:      opts.Cache,
		logger:     opts.Logger,
	}
	if s.locker == nil {
		s.locker = NewLocalRoomLocker()
	}
	if s.authorizer == nil {
		s.authorizer = NewRoleAuthorizer()
	}
	if s.notifier == nil {
		s.notifier = notification.Nop{}
	}
	if s.cache == nil {
		s.cache = NopRoomCache{}
	}
	if s.logger == nil {
		s.logger = logger.Nop{}
	}
	return s
}

// SubmitBooking creates a PENDING booking for tenantID on roomID over [startMonth, endMonth]
func (s *BookingService) SubmitBooking(ctx context.Context, tenantID, roomID uint, startMonth, endMonth string) (*models.Booking, error) {
	unlock, err := s.locker.Lock(ctx, roomID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var booking *models.Booking
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		room, err := tx.Rooms().LockRoomByID(ctx, roomID)
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return err
		}

		var active []models.Booking
		if room != nil {
			active, err = tx.Bookings().GetActiveBookingsForRoom(ctx, room.ID, 0)
			if err != nil {
				return err
			}
		}

		booking, err = AdmitBooking(AdmissionRequest{
			TenantID:   tenantID,
			StartMonth: startMonth,
			EndMonth:   endMonth,
			Room:       room,
			Active:     active,
		})
		if err != nil {
			return err
		}

		booking.Reference = uuid.NewString()
		if err := tx.Bookings().CreateBooking(ctx, booking); err != nil {
			return err
		}
		booking.Room = room
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking %s submitted: room=%d tenant=%d %s..%s total=%s",
		booking.Reference, roomID, tenantID, booking.StartMonth, booking.EndMonth, booking.TotalAmount.StringFixed(2))
	s.notify(notification.EventBookingSubmitted, booking, ownerOf(booking))
	return booking, nil
}

// TransitionBooking moves bookingID to newStatus on behalf of actor
func (s *BookingService) TransitionBooking(ctx context.Context, bookingID uint, actor Actor, newStatus string) (*models.Booking, error) {
	if !constants.IsBookingStatus(newStatus) {
		return nil, errors.Validation("status", "unknown booking status").WithDetail("value", newStatus)
	}

	current, err := s.store.Bookings().GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, current.RoomID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var booking *models.Booking
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		room, err := tx.Rooms().LockRoomByID(ctx, current.RoomID)
		if err != nil {
			return err
		}
		// status may have moved while we waited for the lock
		fresh, err := tx.Bookings().GetBookingByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if err := s.authorizer.AuthorizeTransition(actor, fresh, room, newStatus); err != nil {
			return err
		}
		if err := s.machine.apply(ctx, tx, fresh, newStatus); err != nil {
			return err
		}

		booking, err = tx.Bookings().GetBookingByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.Room != nil {
			booking.Room.Owner = room.Owner
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking %s -> %s by %s %d", booking.Reference, booking.Status, actor.Role, actor.ID)
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Error("invalidate room cache: %v", err)
	}
	s.notify(notification.EventBookingStatusChanged, booking, ownerOf(booking), booking.TenantID)
	return booking, nil
}

// CancelByTenant cancels one of tenantID's own bookings
func (s *BookingService) CancelByTenant(ctx context.Context, tenantID, bookingID uint) (*models.Booking, error) {
	return s.TransitionBooking(ctx, bookingID, Actor{ID: tenantID, Role: constants.RoleTenant}, constants.BookingStatusCancelled)
}

func (s *BookingService) ListForTenant(ctx context.Context, tenantID uint) ([]models.Booking, error) {
	return s.store.Bookings().ListByTenant(ctx, tenantID)
}

// CompleteFinished completes every CONFIRMED booking whose last month is before now's month.
// A failing booking is logged and skipped; the count of completed bookings is returned.
func (s *BookingService) CompleteFinished(ctx context.Context, now time.Time) (int, error) {
	due, err := s.store.Bookings().ListConfirmedEndingBefore(ctx, types.MonthOf(now))
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, b := range due {
		if _, err := s.TransitionBooking(ctx, b.ID, SystemActor, constants.BookingStatusCompleted); err != nil {
			s.logger.Error("complete booking %d: %v", b.ID, err)
			continue
		}
		completed++
	}
	return completed, nil
}

func (s *BookingService) notify(eventType string, booking *models.Booking, userIDs ...uint) {
	msg, err := notification.NewMessageBuilder(eventType).
		Booking(booking.ID, booking.Reference, booking.RoomID).
		Status(booking.Status).
		Period(booking.StartMonth.String(), booking.EndMonth.String()).
		Amount(booking.TotalAmount.StringFixed(2)).
		Build()
	if err != nil {
		s.logger.Error("build %s message: %v", eventType, err)
		return
	}
	if err := s.notifier.SendToUsers(msg, userIDs...); err != nil {
		s.logger.Error("send %s for booking %d: %v", eventType, booking.ID, err)
	}
}

func ownerOf(booking *models.Booking) uint {
	if booking.Room == nil {
		return 0
	}
	return booking.Room.OwnerID
}
