package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/plan"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/limits"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ProfessionalHandler struct {
	db    *gorm.DB
	repo  domain.Repository
	quota *limits.Enforcer
}

func NewProfessionalHandler(db *gorm.DB, repo domain.Repository, quota *limits.Enforcer) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, repo: repo, quota: quota}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateProfessionalRequest struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ProfessionalHandler) List(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var professionals []models.Professional
	if err := h.db.
		Where("business_id = ?", businessID).
		Order("id ASC").
		Find(&professionals).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, professionals)
}

// Create conta e insere na mesma transação — duas criações
// concorrentes não podem estourar o teto do plano juntas.
func (h *ProfessionalHandler) Create(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	biz, err := h.repo.GetBusinessByID(c.Request.Context(), businessID)
	if err != nil {
		httperr.Internal(c, "business_not_found", "Negócio não encontrado.")
		return
	}

	prof := &models.Professional{
		BusinessID: businessID,
		Name:       req.Name,
		Active:     true,
	}

	err = h.repo.InTransaction(c.Request.Context(), func(txRepo domain.Repository) error {
		if err := h.quota.Check(
			c.Request.Context(), txRepo, biz,
			plan.ResourceProfessional, timezone.Now(),
		); err != nil {
			return err
		}
		return txRepo.CreateProfessional(c.Request.Context(), prof)
	})

	if err != nil {
		mapReservationError(c, err)
		return
	}

	httpresp.Created(c, prof)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var prof models.Professional
	if err := h.db.
		Where("id = ? AND business_id = ?", c.Param("id"), businessID).
		First(&prof).Error; err != nil {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	if req.Name != nil {
		prof.Name = *req.Name
	}
	if req.Active != nil {
		// desativar não apaga histórico: agendamentos existentes
		// permanecem, o profissional só deixa de ser ofertável
		prof.Active = *req.Active
	}

	if err := h.db.Save(&prof).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
		return
	}

	httpresp.OK(c, prof)
}
