package services

import (
	"context"

	"roomrent/constants"
	"roomrent/dto"
	"roomrent/models"
	"roomrent/repositories"
	"roomrent/services/logger"
)

// AdminService approves owners and rooms. Approval changes which rooms are
// public, so every decision drops the listing cache.
type AdminService struct {
	store  *repositories.Store
	cache  RoomCache
	logger logger.Logger
}

type AdminServiceOptions struct {
	Store  *repositories.Store
	Cache  RoomCache
	Logger logger.Logger
}

func NewAdminService(opts AdminServiceOptions) *AdminService {
	s := &AdminService{store: opts.Store, cache: opts.Cache, logger: opts.Logger}
	if s.cache == nil {
		s.cache = NopRoomCache{}
	}
	if s.logger == nil {
		s.logger = logger.Nop{}
	}
	return s
}

func (s *AdminService) ListPendingOwners(ctx context.Context) ([]dto.PendingOwnerResponse, error) {
	users, err := s.store.Users().ListPendingOwners(ctx)
	if err != nil {
		return nil, err
	}
	owners := make([]dto.PendingOwnerResponse, 0, len(users))
	for _, u := range users {
		owners = append(owners, dto.PendingOwnerResponse{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt})
	}
	return owners, nil
}

func (s *AdminService) ApproveOwner(ctx context.Context, ownerID uint) (*models.User, error) {
	return s.setOwnerStatus(ctx, ownerID, constants.ApprovalApproved)
}

func (s *AdminService) RejectOwner(ctx context.Context, ownerID uint) (*models.User, error) {
	return s.setOwnerStatus(ctx, ownerID, constants.ApprovalRejected)
}

func (s *AdminService) setOwnerStatus(ctx context.Context, ownerID uint, status string) (*models.User, error) {
	if err := s.store.Users().UpdateOwnerStatus(ctx, ownerID, status); err != nil {
		return nil, err
	}
	s.logger.Info("owner %d set to %s", ownerID, status)
	s.invalidate(ctx)
	return s.store.Users().GetUserByID(ctx, ownerID)
}

func (s *AdminService) ListPendingRooms(ctx context.Context) ([]models.Room, error) {
	return s.store.Rooms().ListByStatus(ctx, constants.ApprovalPending)
}

func (s *AdminService) ApproveRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	return s.setRoomStatus(ctx, roomID, constants.ApprovalApproved)
}

func (s *AdminService) RejectRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	return s.setRoomStatus(ctx, roomID, constants.ApprovalRejected)
}

func (s *AdminService) setRoomStatus(ctx context.Context, roomID uint, status string) (*models.Room, error) {
	if err := s.store.Rooms().UpdateRoomStatus(ctx, roomID, status); err != nil {
		return nil, err
	}
	s.logger.Info("room %d set to %s", roomID, status)
	s.invalidate(ctx)
	return s.store.Rooms().GetRoomByID(ctx, roomID)
}

func (s *AdminService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	var (
		stats dto.StatsResponse
		err   error
	)
	if stats.TotalUsers, err = s.store.Users().Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalRooms, err = s.store.Rooms().Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalBookings, err = s.store.Bookings().Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingOwners, err = s.store.Users().CountPendingOwners(ctx); err != nil {
		return nil, err
	}
	if stats.PendingRooms, err = s.store.Rooms().CountByStatus(ctx, constants.ApprovalPending); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *AdminService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Error("invalidate room cache: %v", err)
	}
}
