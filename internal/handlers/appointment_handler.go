package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db       *gorm.DB
	listUC   *ucBooking.ListByDate
	confirm  *ucBooking.ConfirmReservation
	cancel   *ucBooking.CancelReservation
	complete *ucBooking.CompleteReservation
}

func NewAppointmentHandler(
	db *gorm.DB,
	listUC *ucBooking.ListByDate,
	confirm *ucBooking.ConfirmReservation,
	cancel *ucBooking.CancelReservation,
	complete *ucBooking.CompleteReservation,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:       db,
		listUC:   listUC,
		confirm:  confirm,
		cancel:   cancel,
		complete: complete,
	}
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	dateStr := c.Query("date")
	professionalIDStr := c.Query("professional_id")
	if dateStr == "" || professionalIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e profissional obrigatórios.")
		return
	}

	professionalID, err := strconv.ParseUint(professionalIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		httperr.Internal(c, "business_not_found", "Negócio não encontrado.")
		return
	}

	date, err := parseDateInBusiness(&biz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	apps, err := h.listUC.Execute(
		c.Request.Context(),
		businessID,
		uint(professionalID),
		date,
	)
	if err != nil {
		mapReservationError(c, err)
		return
	}

	httpresp.List(c, apps)
}

// ======================================================
// STATE TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, func(businessID, userID, apID uint) (*models.Appointment, error) {
		return h.confirm.Execute(c.Request.Context(), businessID, userID, apID)
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(businessID, userID, apID uint) (*models.Appointment, error) {
		return h.cancel.Execute(c.Request.Context(), businessID, userID, apID)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(businessID, userID, apID uint) (*models.Appointment, error) {
		return h.complete.Execute(c.Request.Context(), businessID, userID, apID)
	})
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	run func(businessID, userID, apID uint) (*models.Appointment, error),
) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	apID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return
	}

	ap, err := run(businessID, userID, uint(apID))
	if err != nil {
		mapReservationError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
