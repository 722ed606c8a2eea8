package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type BusinessHandler struct {
	db *gorm.DB
}

func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

// --------- Requests ---------

type UpdateBusinessRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`

	OpensAt         *string `json:"opens_at,omitempty"`  // HH:MM
	ClosesAt        *string `json:"closes_at,omitempty"` // HH:MM
	MinAdvanceHours *int    `json:"min_advance_hours,omitempty"`
	Timezone        *string `json:"timezone,omitempty"`
}

// --------- Handlers ---------

func (h *BusinessHandler) GetMeBusiness(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Negócio não encontrado.")
		return
	}

	httpresp.OK(c, biz)
}

func (h *BusinessHandler) UpdateMeBusiness(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Negócio não encontrado.")
		return
	}

	if req.Name != nil {
		biz.Name = *req.Name
	}
	if req.Phone != nil {
		biz.Phone = *req.Phone
	}
	if req.Address != nil {
		biz.Address = *req.Address
	}

	opens := biz.OpensAt
	closes := biz.ClosesAt
	if req.OpensAt != nil {
		opens = *req.OpensAt
	}
	if req.ClosesAt != nil {
		closes = *req.ClosesAt
	}

	// abertura/fechamento válidos e na ordem certa
	if req.OpensAt != nil || req.ClosesAt != nil {
		openT, err1 := time.Parse("15:04", opens)
		closeT, err2 := time.Parse("15:04", closes)
		if err1 != nil || err2 != nil || !openT.Before(closeT) {
			httperr.BadRequest(c, "invalid_business_hours", "Janela de atendimento inválida.")
			return
		}
		biz.OpensAt = opens
		biz.ClosesAt = closes
	}

	if req.MinAdvanceHours != nil {
		if *req.MinAdvanceHours < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima inválida.")
			return
		}
		biz.MinAdvanceHours = *req.MinAdvanceHours
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		biz.Timezone = *req.Timezone
	}

	if err := h.db.Save(&biz).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Erro ao atualizar negócio.")
		return
	}

	httpresp.OK(c, biz)
}
