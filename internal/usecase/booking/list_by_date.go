package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListByDate struct {
	repo domain.Repository
}

func NewListByDate(repo domain.Repository) *ListByDate {
	return &ListByDate{repo: repo}
}

// Agenda do profissional para um dia (visão da equipe)
func (uc *ListByDate) Execute(
	ctx context.Context,
	businessID uint,
	professionalID uint,
	date time.Time,
) ([]models.Appointment, error) {

	if _, err := uc.repo.GetProfessional(ctx, businessID, professionalID); err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	dayStart := time.Date(
		date.Year(), date.Month(), date.Day(),
		0, 0, 0, 0,
		date.Location(),
	)
	dayEnd := dayStart.AddDate(0, 0, 1)

	return uc.repo.ListAppointmentsForDay(ctx, professionalID, dayStart, dayEnd)
}
