package api

import (
	stdhttp "net/http"

	intconfig "tourdesk/internal/config"
	"tourdesk/internal/domain"
	h "tourdesk/internal/http/handlers"
	"tourdesk/internal/http/middleware"
	"tourdesk/internal/utils"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, hs *h.Handlers) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Log.Warnf("failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":      "route not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	if env.UploadDir != "" {
		r.Static("/uploads", env.UploadDir)
	}

	api := r.Group("/api")
	{
		api.GET("/health", hs.Health)
		api.GET("/db-check", hs.DBCheck)
		api.GET("/routes", hs.Routes)

		// Auth
		api.POST("/auth/login", hs.Login)

		// Public surface used by the booking site
		public := api.Group("/public")
		public.GET("/tours", hs.ListActiveTours)
		public.POST("/bookings", hs.CreateBooking)
		public.POST("/drivers/register", hs.RegisterDriver)
		public.POST("/promos/validate", hs.ValidatePromo)

		admin := api.Group("", middleware.RequireAuth(hs.Auth))
		managers := middleware.RequireRoles(domain.RoleOwner, domain.RoleAdmin)

		admin.GET("/auth/me", hs.Me)

		// Bookings
		bookings := admin.Group("/bookings")
		bookings.GET("", hs.ListBookings)
		bookings.POST("", hs.CreateBooking)
		bookings.GET("/:id", hs.GetBooking)
		bookings.PATCH("/:id", hs.UpdateBooking)
		bookings.PUT("/:id/status", hs.UpdateBookingStatus)
		bookings.PUT("/:id/driver", hs.AssignBookingDriver)
		bookings.GET("/:id/voucher", hs.BookingVoucher)
		bookings.DELETE("/:id", managers, hs.DeleteBooking)

		// Drivers
		drivers := admin.Group("/drivers")
		drivers.GET("", hs.ListDrivers)
		drivers.POST("", hs.CreateDriver)
		drivers.GET("/:id", hs.GetDriver)
		drivers.PATCH("/:id", hs.UpdateDriver)
		drivers.PUT("/:id/status", hs.UpdateDriverStatus)
		drivers.POST("/:id/settle", managers, hs.SettleDriverDebt)
		drivers.POST("/:id/documents/:kind", hs.UploadDriverDocument)
		drivers.DELETE("/:id", managers, hs.DeleteDriver)

		// Tours
		tours := admin.Group("/tours")
		tours.GET("", hs.ListTours)
		tours.POST("", hs.CreateTour)
		tours.GET("/:id", hs.GetTour)
		tours.PATCH("/:id", hs.UpdateTour)
		tours.POST("/:id/image", hs.UploadTourImage)
		tours.DELETE("/:id", managers, hs.DeleteTour)

		// Promo codes
		promos := admin.Group("/promos")
		promos.GET("", hs.ListPromos)
		promos.POST("", managers, hs.CreatePromo)
		promos.PATCH("/:id", managers, hs.UpdatePromo)
		promos.DELETE("/:id", managers, hs.DeletePromo)
		promos.POST("/validate", hs.ValidatePromo)

		// Settings
		admin.GET("/settings", hs.GetSettings)
		admin.PUT("/settings", managers, hs.UpdateSettings)

		// SMS
		admin.POST("/sms/send", hs.SendSMS)
		admin.GET("/sms/logs", hs.ListSMSLogs)

		// Analytics
		admin.GET("/analytics/summary", hs.AnalyticsSummary)
		admin.GET("/analytics/report", hs.AnalyticsReport)

		// Backup
		admin.GET("/backup", managers, hs.ExportBackup)
	}

	h.SetRouter(r)
	return r
}
