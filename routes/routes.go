package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vph-backend/config"
	"vph-backend/controllers"
	"vph-backend/middleware"
	"vph-backend/models"
)

// SetupRouter wires controllers behind the access evaluator. The gating
// mirrors the dashboard's navigation: dashboard and reports admit any
// authenticated staff, each department area requires its role, staff
// administration is manager-only, and manager passes everything.
func SetupRouter(
	cfg *config.Config,
	db *gorm.DB,
	log *zap.Logger,
	authC *controllers.AuthController,
	roomC *controllers.RoomController,
	bookingC *controllers.BookingController,
	guestC *controllers.GuestController,
	staffC *controllers.StaffController,
	reportC *controllers.ReportController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	origins := cfg.CORSOrigins
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.Authenticate(db, cfg.JWTSecret))

	auth := api.Group("/auth")
	{
		auth.POST("/login", authC.Login)
		auth.GET("/me", middleware.RequireRoles(), authC.Me)
	}

	// Dashboard and reports: any authenticated staff.
	dashboard := api.Group("", middleware.RequireRoles())
	{
		dashboard.GET("/dashboard", reportC.GetDashboard)
		dashboard.GET("/reports/revenue", reportC.GetRevenue)
		dashboard.GET("/reports/recent-bookings", reportC.GetRecentBookings)
	}

	// Reception: rooms, bookings, guests.
	reception := api.Group("", middleware.RequireRoles(models.RoleReception))
	{
		rooms := reception.Group("/rooms")
		{
			rooms.GET("", roomC.GetRooms)
			rooms.GET("/summary", reportC.GetRoomSummary)
			rooms.GET("/:id", roomC.GetRoom)
			rooms.POST("", roomC.CreateRoom)
			rooms.PATCH("/:id", roomC.UpdateRoom)
			rooms.PATCH("/:id/status", roomC.SetRoomStatus)
		}

		bookings := reception.Group("/bookings")
		{
			bookings.GET("", bookingC.GetBookings)
			bookings.GET("/:id", bookingC.GetBooking)
			bookings.POST("/reserve", bookingC.CreateReservation)
			bookings.POST("/check-in", bookingC.WalkInCheckIn)
			bookings.POST("/:id/checkout", bookingC.Checkout)
			bookings.POST("/:id/cancel", bookingC.Cancel)
			bookings.POST("/:id/payments", bookingC.RecordPayment)
		}

		guests := reception.Group("/guests")
		{
			guests.GET("", guestC.GetGuests)
			guests.GET("/:id", guestC.GetGuest)
			guests.PATCH("/:id", guestC.UpdateGuest)
		}
	}

	// Restaurant and bar staff look up in-house guests for room charges.
	inhouse := api.Group("", middleware.RequireRoles(models.RoleRestaurant, models.RoleBar))
	{
		inhouse.GET("/inhouse", bookingC.GetInHouse)
	}

	// Inventory staff track room readiness (cleaning backlog, turnover)
	// without the reception surface.
	inventory := api.Group("", middleware.RequireRoles(models.RoleInventory))
	{
		inventory.GET("/inventory/room-summary", reportC.GetRoomSummary)
	}

	// Accounts covers the corporate and financial views.
	accounts := api.Group("", middleware.RequireRoles(models.RoleAccounts))
	{
		accounts.GET("/accounts/revenue", reportC.GetRevenue)
		accounts.GET("/corporate/guests", guestC.GetCorporateGuests)
	}

	// Staff administration: manager only.
	staff := api.Group("/staff", middleware.RequireRoles(models.RoleManager))
	{
		staff.GET("", staffC.GetStaff)
		staff.POST("", staffC.CreateStaff)
		staff.PATCH("/:id", staffC.UpdateProfile)
		staff.PUT("/:id/roles", staffC.ReplaceRoles)
	}

	return r
}
