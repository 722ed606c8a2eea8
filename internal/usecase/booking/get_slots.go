package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type GetSlots struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetSlots(repo domain.Repository) *GetSlots {
	return &GetSlots{
		repo: repo,
		now:  timezone.Now,
	}
}

// resolveHours monta a janela de atendimento do negócio para a data pedida
func resolveHours(biz *models.Business, date time.Time) (domain.BusinessHours, error) {
	loc := date.Location()

	parseHM := func(hm string) (time.Time, error) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), nil
	}

	open, err := parseHM(biz.OpensAt)
	if err != nil {
		return domain.BusinessHours{}, httperr.ErrBusiness("invalid_business_hours")
	}

	closeAt, err := parseHM(biz.ClosesAt)
	if err != nil {
		return domain.BusinessHours{}, httperr.ErrBusiness("invalid_business_hours")
	}

	return domain.BusinessHours{Open: open, Close: closeAt}, nil
}

// Execute gera a grade de horários do profissional para a data:
// passos de 30 minutos a partir da abertura, nenhum slot atravessa o
// fechamento, slots aquém da antecedência mínima são OMITIDOS (não
// marcados como indisponíveis) e cada slot restante é checado contra
// os agendamentos vivos. A grade é recalculada a cada chamada.
func (uc *GetSlots) Execute(
	ctx context.Context,
	in domain.SlotsInput,
) ([]domain.TimeSlot, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, httperr.ErrBusiness("business_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	professional, err := uc.repo.GetProfessional(ctx, in.BusinessID, in.ProfessionalID)
	if err != nil || !professional.Active {
		// profissional inativo nunca entrega grade silenciosa
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	hours, err := resolveHours(biz, in.Date)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(service.DurationMin) * time.Minute
	if duration <= 0 {
		return nil, httperr.ErrBusiness("invalid_service_duration")
	}

	// janela menor que a duração → grade vazia, não é erro
	if hours.Close.Sub(hours.Open) < duration {
		return []domain.TimeSlot{}, nil
	}

	// antecedência mínima: corte duro relativo a agora
	now := uc.now().In(in.Date.Location())
	minStart := now.Add(time.Duration(biz.MinAdvanceHours) * time.Hour)

	// único ponto de verdade para conflito: o repositório devolve os
	// agendamentos vivos do dia e o predicado canônico decide slot a slot
	busy, err := uc.repo.FindOverlapping(
		ctx,
		in.ProfessionalID,
		hours.Open,
		hours.Close,
	)
	if err != nil {
		return nil, err
	}

	slots := []domain.TimeSlot{}

	for cur := hours.Open; !cur.Add(duration).After(hours.Close); cur = cur.Add(domain.SlotGranularity) {

		if cur.Before(minStart) {
			continue
		}

		candidate := domain.NewInterval(cur, duration)

		slots = append(slots, domain.TimeSlot{
			Time:      cur.Format("15:04"),
			Available: !domain.Conflicts(candidate, busy),
		})
	}

	return slots, nil
}
