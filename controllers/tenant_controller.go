package controllers

import (
	"github.com/gin-gonic/gin"

	"roomrent/dto"
	"roomrent/middleware"
	"roomrent/response"
	"roomrent/services"
	"roomrent/validator"
)

type TenantController struct {
	rooms    *services.RoomService
	bookings *services.BookingService
}

func NewTenantController(rooms *services.RoomService, bookings *services.BookingService) *TenantController {
	return &TenantController{rooms: rooms, bookings: bookings}
}

func (t *TenantController) GetRooms(c *gin.Context) {
	var q dto.RoomSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, validator.FromBindError(err))
		return
	}

	res, err := t.rooms.SearchPublicRooms(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, res)
}

func (t *TenantController) GetRoom(c *gin.Context) {
	roomID, err := idParam(c, "roomId")
	if err != nil {
		response.FromError(c, err)
		return
	}

	room, err := t.rooms.GetPublicRoom(c.Request.Context(), roomID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

func (t *TenantController) BookRoom(c *gin.Context) {
	var req dto.SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.FromBindError(err))
		return
	}

	actor := middleware.CurrentActor(c)
	booking, err := t.bookings.SubmitBooking(c.Request.Context(), actor.ID, req.RoomID, req.StartMonth, req.EndMonth)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, booking)
}

func (t *TenantController) GetMyBookings(c *gin.Context) {
	bookings, err := t.bookings.ListForTenant(c.Request.Context(), middleware.CurrentActor(c).ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, bookings)
}

func (t *TenantController) CancelBooking(c *gin.Context) {
	bookingID, err := idParam(c, "bookingId")
	if err != nil {
		response.FromError(c, err)
		return
	}

	booking, err := t.bookings.CancelByTenant(c.Request.Context(), middleware.CurrentActor(c).ID, bookingID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, booking)
}
