package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-agenda/internal/audit"
	"github.com/BruksfildServices01/shop-agenda/internal/cache"
	"github.com/BruksfildServices01/shop-agenda/internal/config"
	"github.com/BruksfildServices01/shop-agenda/internal/handlers"
	infraRepo "github.com/BruksfildServices01/shop-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/shop-agenda/internal/metrics"
	"github.com/BruksfildServices01/shop-agenda/internal/middleware"
	ucBooking "github.com/BruksfildServices01/shop-agenda/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	metrics.Register()

	bookingRepo := infraRepo.NewBookingGormRepository(db, cfg.StorageTimeout)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// rdb == nil desliga o cache (Availability nil-safe).
	availabilityCache := cache.NewAvailability(rdb, cfg.AvailabilityTTL)

	// ======================================================
	// USE CASES (BOOKINGS)
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, availabilityCache)

	tryBookUC := ucBooking.NewTryBook(bookingRepo, auditDispatcher, availabilityCache)

	acceptUC := ucBooking.NewAcceptBooking(bookingRepo, auditDispatcher, availabilityCache)
	rejectUC := ucBooking.NewRejectBooking(bookingRepo, auditDispatcher, availabilityCache)
	completeUC := ucBooking.NewCompleteBooking(bookingRepo, auditDispatcher)
	cancelUC := ucBooking.NewCancelBooking(bookingRepo, auditDispatcher, availabilityCache)

	listByDateUC := ucBooking.NewListBookingsByDate(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(db, availabilityUC, tryBookUC)

	bookingHandler := handlers.NewBookingHandler(
		acceptUC,
		rejectUC,
		completeUC,
		cancelUC,
		listByDateUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// OBSERVABILIDADE
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/staff", publicHandler.ListStaff)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// API PRIVADA (STAFF)
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/schedule", scheduleHandler.Get)
			secured.PUT("/schedule", scheduleHandler.Update)

			secured.GET("/schedule/exceptions", scheduleHandler.ListExceptions)
			secured.POST("/schedule/exceptions", scheduleHandler.UpsertException)
			secured.DELETE("/schedule/exceptions/:date", scheduleHandler.DeleteException)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.GET("/bookings", bookingHandler.ListByDate)
			secured.PATCH("/bookings/:id/accept", bookingHandler.Accept)
			secured.PATCH("/bookings/:id/reject", bookingHandler.Reject)
			secured.PATCH("/bookings/:id/complete", bookingHandler.Complete)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
