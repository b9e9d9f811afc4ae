package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"roomrent/constants"
	"roomrent/controllers"
	middlewares "roomrent/middleware"
	"roomrent/repositories"
	"roomrent/services"
	"roomrent/services/logger"
	"roomrent/services/notification"
)

// Deps is everything the HTTP layer needs
type Deps struct {
	Store        *repositories.Store
	Tokens       *services.TokenService
	Auth         *services.AuthService
	Rooms        *services.RoomService
	Bookings     *services.BookingService
	Admin        *services.AdminService
	Melody       *melody.Melody
	Logger       logger.Logger
	CookieSecure bool
}

func SetupRoutes(router *gin.Engine, d Deps) {
	if d.Logger == nil {
		d.Logger = logger.Nop{}
	}
	router.Use(middlewares.RequestIDMiddleware(), middlewares.ErrorHandler())

	authController := controllers.NewAuthController(d.Auth, tokenTTL(d.Tokens), d.CookieSecure)
	tenantController := controllers.NewTenantController(d.Rooms, d.Bookings)
	ownerController := controllers.NewOwnerController(d.Rooms, d.Bookings)
	adminController := controllers.NewAdminController(d.Admin)
	healthController := controllers.NewHealthController(d.Store, d.Logger)

	requireAuth := middlewares.AuthMiddleware(d.Tokens)
	users := d.Store.Users()

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/health", healthController.Health)

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/signin", authController.Signin)
	auth.POST("/signout", authController.Signout)

	admin := api.Group("/admin", requireAuth, middlewares.RoleMiddleware(users, constants.RoleAdmin))
	admin.GET("/pending-owners", adminController.GetPendingOwners)
	admin.POST("/approve-owner/:ownerId", adminController.ApproveOwner)
	admin.POST("/reject-owner/:ownerId", adminController.RejectOwner)
	admin.GET("/pending-rooms", adminController.GetPendingRooms)
	admin.POST("/approve-room/:roomId", adminController.ApproveRoom)
	admin.POST("/reject-room/:roomId", adminController.RejectRoom)
	admin.GET("/stats", adminController.GetStats)

	owner := api.Group("/owner", requireAuth, middlewares.RoleMiddleware(users, constants.RoleOwner))
	owner.POST("/rooms", ownerController.CreateRoom)
	owner.GET("/rooms", ownerController.GetMyRooms)
	owner.GET("/rooms/:roomId", ownerController.GetRoom)
	owner.PUT("/rooms/:roomId", ownerController.UpdateRoom)
	owner.DELETE("/rooms/:roomId", ownerController.DeleteRoom)
	owner.PUT("/bookings/:bookingId/status", ownerController.UpdateBookingStatus)

	tenant := api.Group("/tenant", requireAuth)
	tenant.GET("/rooms", tenantController.GetRooms)
	tenant.GET("/rooms/:roomId", tenantController.GetRoom)

	tenantOnly := tenant.Group("", middlewares.RoleMiddleware(users, constants.RoleTenant))
	tenantOnly.POST("/bookings", tenantController.BookRoom)
	tenantOnly.GET("/bookings", tenantController.GetMyBookings)
	tenantOnly.POST("/bookings/:bookingId/cancel", tenantController.CancelBooking)

	if d.Melody != nil {
		router.GET("/ws", requireAuth, func(c *gin.Context) {
			keys := map[string]interface{}{notification.SessionUserKey: c.GetUint(middlewares.ContextUserID)}
			if err := d.Melody.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
				d.Logger.Error("websocket upgrade: %v", err)
			}
		})
	}
}

func tokenTTL(tokens *services.TokenService) time.Duration {
	if tokens == nil {
		return 0
	}
	return tokens.TTL()
}
