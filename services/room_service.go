package services

import (
	"context"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"roomrent/constants"
	"roomrent/dto"
	"roomrent/errors"
	"roomrent/models"
	"roomrent/repositories"
	"roomrent/services/logger"
)

// RoomService covers owner room management and public browsing.
// It never writes availability.
type RoomService struct {
	store  *repositories.Store
	locker RoomLocker
	cache  RoomCache
	logger logger.Logger
}

type RoomServiceOptions struct {
	Store  *repositories.Store
	Locker RoomLocker
	Cache  RoomCache
	Logger logger.Logger
}

func NewRoomService(opts RoomServiceOptions) *RoomService {
	s := &RoomService{
		store:  opts.Store,
		locker: opts.Locker,
		cache:  opts.Cache,
		logger: opts.Logger,
	}
	if s.locker == nil {
		s.locker = NewLocalRoomLocker()
	}
	if s.cache == nil {
		s.cache = NopRoomCache{}
	}
	if s.logger == nil {
		s.logger = logger.Nop{}
	}
	return s
}

// SearchPublicRooms lists bookable rooms. When a city filter matches nothing the
// response suggests the closest listed city.
func (s *RoomService) SearchPublicRooms(ctx context.Context, q dto.RoomSearchQuery) (*dto.RoomSearchResponse, error) {
	filter, err := parseRoomFilter(q)
	if err != nil {
		return nil, err
	}

	rooms, cacheKey, ok := s.cache.GetPublicRooms(ctx, filter)
	if !ok {
		rooms, err = s.store.Rooms().ListPublicRooms(ctx, filter)
		if err != nil {
			return nil, err
		}
		s.cache.SetPublicRooms(ctx, cacheKey, rooms)
	}

	res := &dto.RoomSearchResponse{Rooms: filterByCity(rooms, q.City)}
	if len(res.Rooms) == 0 && strings.TrimSpace(q.City) != "" {
		res.Suggestion = suggestCity(q.City, rooms)
	}
	if res.Rooms == nil {
		res.Rooms = []models.Room{}
	}
	return res, nil
}

func parseRoomFilter(q dto.RoomSearchQuery) (repositories.RoomFilter, error) {
	filter := repositories.RoomFilter{Bedrooms: q.Bedrooms}
	if q.MinPrice != "" {
		v, err := decimal.NewFromString(q.MinPrice)
		if err != nil {
			return filter, errors.Validation("minPrice", "minPrice must be a number")
		}
		filter.MinPrice = &v
	}
	if q.MaxPrice != "" {
		v, err := decimal.NewFromString(q.MaxPrice)
		if err != nil {
			return filter, errors.Validation("maxPrice", "maxPrice must be a number")
		}
		filter.MaxPrice = &v
	}
	return filter, nil
}

// GetPublicRoom returns the room only while it is bookable
func (s *RoomService) GetPublicRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	room, err := s.store.Rooms().GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if checkBookable(room) != nil {
		return nil, errors.NotFound("room not found")
	}
	return room, nil
}

// CreateRoom lists a new room for ownerID. It starts PENDING approval and available.
func (s *RoomService) CreateRoom(ctx context.Context, ownerID uint, req *dto.CreateRoomRequest) (*models.Room, error) {
	images, err := encodeImages(req.Images)
	if err != nil {
		return nil, err
	}

	room := &models.Room{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Address:     req.Address,
		City:        strings.TrimSpace(req.City),
		State:       req.State,
		ZipCode:     req.ZipCode,
		MonthlyRent: *req.MonthlyRent,
		Bedrooms:    1,
		Bathrooms:   1,
		Area:        req.Area,
		Amenities:   req.Amenities,
		Images:      images,
		IsAvailable: true,
		Status:      constants.ApprovalPending,
	}
	if req.Bedrooms != nil {
		room.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		room.Bathrooms = *req.Bathrooms
	}

	if err := s.store.Rooms().CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	s.logger.Info("room %d created by owner %d", room.ID, ownerID)
	return room, nil
}

func (s *RoomService) ListOwnerRooms(ctx context.Context, ownerID uint) ([]models.Room, error) {
	return s.store.Rooms().ListByOwner(ctx, ownerID)
}

func (s *RoomService) GetOwnerRoom(ctx context.Context, ownerID, roomID uint) (*models.Room, error) {
	return s.store.Rooms().GetOwnedRoom(ctx, roomID, ownerID)
}

// UpdateRoom edits listing details. The snapshot on existing bookings is untouched.
func (s *RoomService) UpdateRoom(ctx context.Context, ownerID, roomID uint, req *dto.UpdateRoomRequest) (*models.Room, error) {
	if _, err := s.store.Rooms().GetOwnedRoom(ctx, roomID, ownerID); err != nil {
		return nil, err
	}

	fields, err := roomUpdateFields(req)
	if err != nil {
		return nil, err
	}
	if err := s.store.Rooms().UpdateRoomDetails(ctx, roomID, fields); err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Error("invalidate room cache: %v", err)
	}
	return s.store.Rooms().GetOwnedRoom(ctx, roomID, ownerID)
}

// DeleteRoom removes a room with its booking history. Rooms with active bookings stay.
func (s *RoomService) DeleteRoom(ctx context.Context, ownerID, roomID uint) error {
	unlock, err := s.locker.Lock(ctx, roomID)
	if err != nil {
		return err
	}
	defer unlock()

	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Rooms().GetOwnedRoom(ctx, roomID, ownerID); err != nil {
			return err
		}
		active, err := tx.Bookings().CountActiveForRoom(ctx, roomID)
		if err != nil {
			return err
		}
		if active > 0 {
			return errors.Conflict("room has active bookings").
				WithDetail("roomId", roomID).
				WithDetail("activeBookings", active)
		}
		if err := tx.Bookings().DeleteByRoom(ctx, roomID); err != nil {
			return err
		}
		return tx.Rooms().DeleteRoom(ctx, roomID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("room %d deleted by owner %d", roomID, ownerID)
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Error("invalidate room cache: %v", err)
	}
	return nil
}

func roomUpdateFields(req *dto.UpdateRoomRequest) (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	setString := func(column string, v *string) {
		if v != nil {
			fields[column] = strings.TrimSpace(*v)
		}
	}
	setString("title", req.Title)
	setString("description", req.Description)
	setString("address", req.Address)
	setString("city", req.City)
	setString("state", req.State)
	setString("zip_code", req.ZipCode)
	setString("amenities", req.Amenities)

	if req.MonthlyRent != nil {
		fields["monthly_rent"] = *req.MonthlyRent
	}
	if req.Bedrooms != nil {
		fields["bedrooms"] = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		fields["bathrooms"] = *req.Bathrooms
	}
	if req.Area != nil {
		fields["area"] = *req.Area
	}
	if req.Images != nil {
		images, err := encodeImages(req.Images)
		if err != nil {
			return nil, err
		}
		fields["images"] = images
	}
	return fields, nil
}

func encodeImages(images []string) (datatypes.JSON, error) {
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return nil, errors.Validation("images", "images must be a list of names")
	}
	return datatypes.JSON(b), nil
}
