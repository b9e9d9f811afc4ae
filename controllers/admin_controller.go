package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"roomrent/models"
	"roomrent/response"
	"roomrent/services"
)

type AdminController struct {
	admin *services.AdminService
}

func NewAdminController(admin *services.AdminService) *AdminController {
	return &AdminController{admin: admin}
}

func (a *AdminController) GetPendingOwners(c *gin.Context) {
	owners, err := a.admin.ListPendingOwners(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, owners)
}

func (a *AdminController) ApproveOwner(c *gin.Context) {
	a.ownerDecision(c, a.admin.ApproveOwner)
}

func (a *AdminController) RejectOwner(c *gin.Context) {
	a.ownerDecision(c, a.admin.RejectOwner)
}

func (a *AdminController) GetPendingRooms(c *gin.Context) {
	rooms, err := a.admin.ListPendingRooms(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rooms)
}

func (a *AdminController) ApproveRoom(c *gin.Context) {
	roomID, err := idParam(c, "roomId")
	if err != nil {
		response.FromError(c, err)
		return
	}
	room, err := a.admin.ApproveRoom(c.Request.Context(), roomID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

func (a *AdminController) RejectRoom(c *gin.Context) {
	roomID, err := idParam(c, "roomId")
	if err != nil {
		response.FromError(c, err)
		return
	}
	room, err := a.admin.RejectRoom(c.Request.Context(), roomID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

func (a *AdminController) GetStats(c *gin.Context) {
	stats, err := a.admin.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, stats)
}

func (a *AdminController) ownerDecision(c *gin.Context, decide func(context.Context, uint) (*models.User, error)) {
	ownerID, err := idParam(c, "ownerId")
	if err != nil {
		response.FromError(c, err)
		return
	}
	owner, err := decide(c.Request.Context(), ownerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, owner)
}
