package controllers

import (
	"github.com/gin-gonic/gin"

	"roomrent/dto"
	"roomrent/middleware"
	"roomrent/response"
	"roomrent/services"
	"roomrent/validator"
)

type OwnerController struct {
	rooms    *services.RoomService
	bookings *services.BookingService
}

func NewOwnerController(rooms *services.RoomService, bookings *services.BookingService) *OwnerController {
	return &OwnerController{rooms: rooms, bookings: bookings}
}

func (o *OwnerController) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.FromBindError(err))
		return
	}
	if err := validator.ValidateRoom(&req); err != nil {
		response.FromError(c, err)
		return
	}

	room, err := o.rooms.CreateRoom(c.Request.Context(), middleware.CurrentActor(c).ID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, room)
}

func (o *OwnerController) GetMyRooms(c *gin.Context) {
	rooms, err := o.rooms.ListOwnerRooms(c.Request.Context(), middleware.CurrentActor(c).ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rooms)
}

func (o *OwnerController) GetRoom(c *gin.Context) {
	roomID, err := idParam(c, "roomId")
	if err != nil {
		response.FromError(c, err)
		return
	}

	room, err := o.rooms.GetOwnerRoom(c.Request.Context(), middleware.CurrentActor(c).ID, roomID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

func (o *OwnerController) UpdateRoom(c *gin.Context) {
	roomID, err := idParam(c, "roomId")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.FromBindError(err))
		return
	}
	if err := validator.ValidateRoomUpdate(&req); err != nil {
		response.FromError(c, err)
		return
	}

	room, err := o.rooms.UpdateRoom(c.Request.Context(), middleware.CurrentActor(c).ID, roomID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

func (o *OwnerController) DeleteRoom(c *gin.Context) {
	roomID, err := idParam(c, "roomId")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := o.rooms.DeleteRoom(c.Request.Context(), middleware.CurrentActor(c).ID, roomID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "room deleted"})
}

func (o *OwnerController) UpdateBookingStatus(c *gin.Context) {
	bookingID, err := idParam(c, "bookingId")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req dto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.FromBindError(err))
		return
	}

	booking, err := o.bookings.TransitionBooking(c.Request.Context(), bookingID, middleware.CurrentActor(c), req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}
