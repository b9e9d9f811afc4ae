package repositories

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"roomrent/errors"
)

// Store groups the repositories that share one database handle.
// Inside Transaction every repository returned by the tx Store runs in that transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Rooms() RoomRepository {
	return &roomRepository{db: s.db}
}

func (s *Store) Bookings() BookingRepository {
	return &bookingRepository{db: s.db}
}

func (s *Store) Users() UserRepository {
	return &userRepository{db: s.db}
}

// Availability returns the writer for Room.IsAvailable. Only the booking state
// machine holds one; room and admin services work through RoomRepository.
func (s *Store) Availability() AvailabilityWriter {
	return &roomAvailability{db: s.db}
}

// Transaction runs fn inside a database transaction
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// notFoundOr maps gorm.ErrRecordNotFound to a NOT_FOUND AppError and anything else to DB_ERROR
func notFoundOr(err error, message string) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFound(message)
	}
	return errors.DBError(err)
}

func dbErr(err error) error {
	if err == nil {
		return nil
	}
	return errors.DBError(err)
}
