package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/limits"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	quota := limits.New()

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	publicLimiter := middleware.NewRateLimiter(rdb, cfg.PublicRateLimit)

	// ======================================================
	// 🧠 USE CASES — BOOKING
	// ======================================================
	getSlotsUC := ucBooking.NewGetSlots(bookingRepo)

	createReservationUC := ucBooking.NewCreateReservation(
		bookingRepo,
		quota,
		auditDispatcher,
	)

	confirmUC := ucBooking.NewConfirmReservation(bookingRepo, auditDispatcher)
	cancelUC := ucBooking.NewCancelReservation(bookingRepo, auditDispatcher)
	completeUC := ucBooking.NewCompleteReservation(bookingRepo, auditDispatcher)
	listByDateUC := ucBooking.NewListByDate(bookingRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	businessHandler := handlers.NewBusinessHandler(db)

	professionalHandler := handlers.NewProfessionalHandler(db, bookingRepo, quota)
	serviceHandler := handlers.NewServiceHandler(db, bookingRepo, quota)
	customerHandler := handlers.NewCustomerHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		listByDateUC,
		confirmUC,
		cancelUC,
		completeUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, getSlotsUC, createReservationUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA (rate limited)
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(publicLimiter.Middleware())
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/slots", publicHandler.ListSlots)
			publicAPI.POST("/:slug/reservations", publicHandler.CreateReservation)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/business", businessHandler.GetMeBusiness)
			secured.PATCH("/me/business", businessHandler.UpdateMeBusiness)

			secured.GET("/me/professionals", professionalHandler.List)
			secured.POST("/me/professionals", professionalHandler.Create)
			secured.PATCH("/me/professionals/:id", professionalHandler.Update)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/customers", customerHandler.List)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
