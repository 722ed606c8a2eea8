package limits

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/plan"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Enforcer aplica os tetos do plano do negócio sobre as contagens vivas.
// A checagem de agendamentos DEVE rodar dentro da mesma transação que o
// insert correspondente — por isso Check recebe o Repository (possivelmente
// já escopado à transação) em vez de guardar um.
type Enforcer struct{}

func New() *Enforcer {
	return &Enforcer{}
}

// MonthWindow devolve [início do mês, início do mês seguinte) no fuso de t.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// Check conta o recurso para o negócio e aplica allowed ⇔ current < limit.
// Devolve *plan.LimitError quando o teto foi atingido.
func (e *Enforcer) Check(
	ctx context.Context,
	repo booking.Repository,
	biz *models.Business,
	resource plan.Resource,
	now time.Time,
) error {

	var (
		current int64
		err     error
	)

	switch resource {
	case plan.ResourceProfessional:
		current, err = repo.CountProfessionals(ctx, biz.ID)

	case plan.ResourceService:
		current, err = repo.CountServices(ctx, biz.ID)

	case plan.ResourceAppointment:
		// janela de cobrança = mês calendário corrente
		start, end := MonthWindow(now)
		current, err = repo.CountAppointmentsInPeriod(ctx, biz.ID, start, end)
	}

	if err != nil {
		return err
	}

	return plan.Check(biz.PlanTier, resource, current)
}
