package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/melvink/api/internal/container"
	"github.com/melvink/api/internal/handlers"
	"github.com/melvink/api/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(200, gin.H{
				"status":  "OK",
				"service": "melvink-api",
			})
		})

		// auth
		v1.POST("/signup", handlers.RegisterHandler(c.AuthService, c.Config))
		v1.POST("/login", handlers.LoginHandler(c.AuthService, c.Config))
		v1.POST("/logout", handlers.LogoutHandler(c.AuthService, c.Config))
		v1.GET("/session", handlers.SessionHandler(c.AuthService))

		// public content
		v1.GET("/content/faq", handlers.FAQHandler(c.ContentService))
		v1.GET("/content/booking", handlers.BookingContentHandler(c.ContentService))
		v1.GET("/content/designs", handlers.SeedDesignsHandler(c.ContentService))

		// public schedule and gallery
		v1.GET("/schedule/calendar", handlers.CalendarHandler(c.Calendar))
		v1.GET("/designs", handlers.ListDesignsHandler(c.DesignService))
		v1.GET("/designs/search", handlers.SearchDesignsHandler(c.DesignService))
		v1.GET("/designs/:id", handlers.GetDesignByIDHandler(c.DesignService))
		v1.GET("/gallery", handlers.GalleryHandler(c.DesignService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(c.AuthService, c.Config, c.Logger))
	{
		protected.POST("/bookings", handlers.CreateBookingHandler(c.BookingService, c.ClientService))
		protected.GET("/bookings/mine", handlers.MyBookingsHandler(c.BookingService))
		protected.POST("/bookings/:id/cancel", handlers.CancelBookingHandler(c.BookingService))
		protected.POST("/bookings/:id/modification", handlers.RequestModificationHandler(c.BookingService))
		protected.GET("/gallery/mine", handlers.MyGalleryHandler(c.DesignService))
		protected.POST("/schedule/selected-date", handlers.PutSelectedDateHandler(c.HandoffService))
		protected.GET("/schedule/selected-date", handlers.ConsumeSelectedDateHandler(c.HandoffService))
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.AdminOnly(c.Config))
	{
		admin.GET("/bookings", handlers.GetAllBookingsHandler(c.BookingService))
		admin.GET("/bookings/upcoming", handlers.UpcomingBookingsHandler(c.BookingService))
		admin.GET("/bookings/by-date", handlers.GetBookingsByDateHandler(c.BookingService))
		admin.GET("/bookings/time-slots", handlers.AvailableTimeSlotsHandler(c.BookingService))
		admin.GET("/bookings/status/:status", handlers.GetBookingsByStatusHandler(c.BookingService))
		admin.GET("/bookings/:id", handlers.GetBookingByIDHandler(c.BookingService))
		admin.GET("/bookings/:id/audit", handlers.BookingAuditTrailHandler(c.BookingService))
		admin.PATCH("/bookings/:id/status", handlers.UpdateBookingStatusHandler(c.BookingService))
		admin.POST("/bookings/:id/confirm", handlers.ConfirmBookingHandler(c.BookingService))
		admin.DELETE("/bookings/:id/images/:index", handlers.RemoveReferenceImageHandler(c.BookingService))

		admin.GET("/clients", handlers.ListClientsHandler(c.ClientService))
		admin.GET("/clients/:id", handlers.GetClientByIDHandler(c.ClientService))
		admin.GET("/clients/:id/bookings", handlers.GetClientBookingsHandler(c.ClientService))
		admin.PATCH("/clients/:id/preferences", handlers.UpdateClientPreferencesHandler(c.ClientService))

		admin.POST("/designs", handlers.CreateDesignHandler(c.DesignService))
		admin.PATCH("/designs/:id/availability", handlers.UpdateDesignAvailabilityHandler(c.DesignService))
		admin.DELETE("/designs/:id", handlers.DeleteDesignHandler(c.DesignService))
	}

	return r
}
