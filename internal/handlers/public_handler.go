package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type SlotsUseCase interface {
	Execute(ctx context.Context, in domain.SlotsInput) ([]domain.TimeSlot, error)
}

type ReserveUseCase interface {
	Execute(ctx context.Context, in domain.ReservationInput) (*models.Appointment, error)
}

type PublicHandler struct {
	db      *gorm.DB
	slots   SlotsUseCase
	reserve ReserveUseCase
}

func NewPublicHandler(db *gorm.DB, slots SlotsUseCase, reserve ReserveUseCase) *PublicHandler {
	return &PublicHandler{
		db:      db,
		slots:   slots,
		reserve: reserve,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateReservationRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:mm

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	Notes         string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES / PROFESSIONALS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var biz models.Business
	if err := h.db.Where("slug = ?", slug).First(&biz).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Negócio não encontrado.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("business_id = ? AND active = true", biz.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	var professionals []models.Professional
	if err := h.db.
		Where("business_id = ? AND active = true", biz.ID).
		Order("id ASC").
		Find(&professionals).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business":      biz,
		"services":      services,
		"professionals": professionals,
	})
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListSlots(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")
	professionalIDStr := c.Query("professional_id")

	if dateStr == "" || serviceIDStr == "" || professionalIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data, serviço e profissional obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	professionalID, err := strconv.ParseUint(professionalIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	var biz models.Business
	if err := h.db.Where("slug = ?", slug).First(&biz).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Negócio não encontrado.")
		return
	}

	date, err := parseDateInBusiness(&biz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.slots.Execute(
		c.Request.Context(),
		domain.SlotsInput{
			BusinessID:     biz.ID,
			ProfessionalID: uint(professionalID),
			ServiceID:      uint(serviceID),
			Date:           date,
		},
	)

	if err != nil {
		mapReservationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE RESERVATION
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateReservation(c *gin.Context) {
	slug := c.Param("slug")

	var biz models.Business
	if err := h.db.Where("slug = ?", slug).First(&biz).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Negócio não encontrado.")
		return
	}

	var req PublicCreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.reserve.Execute(
		c.Request.Context(),
		domain.ReservationInput{
			BusinessID:     biz.ID,
			ProfessionalID: req.ProfessionalID,
			ServiceID:      req.ServiceID,
			CustomerName:   req.CustomerName,
			CustomerPhone:  req.CustomerPhone,
			CustomerEmail:  req.CustomerEmail,
			Date:           req.Date,
			Time:           req.Time,
			Notes:          req.Notes,
		},
	)

	if err != nil {
		mapReservationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}
