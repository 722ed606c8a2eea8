package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/plan"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/limits"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// USE CASE
// ======================================================

type Auditor interface {
	Dispatch(audit.Event)
}

type CreateReservation struct {
	repo  domain.Repository
	quota *limits.Enforcer
	audit Auditor
	now   func() time.Time
}

func NewCreateReservation(
	repo domain.Repository,
	quota *limits.Enforcer,
	auditor Auditor,
) *CreateReservation {
	return &CreateReservation{
		repo:  repo,
		quota: quota,
		audit: auditor,
		now:   timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute compromete uma reserva seguindo o protocolo: resolver entidades,
// validar antecedência, e então — numa única transação serializável —
// checar a cota mensal, resolver o cliente, reverificar sobreposição com
// lock e inserir. Perdeu a corrida? Uma única nova tentativa; perdeu de
// novo, slot_conflict.
func (uc *CreateReservation) Execute(
	ctx context.Context,
	in domain.ReservationInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Entrada
	// --------------------------------------------------
	if in.CustomerName == "" || !validators.IsPhoneValid(in.CustomerPhone) {
		return nil, httperr.ErrBusiness("invalid_request")
	}
	if in.CustomerEmail != "" && !validators.IsEmailValid(in.CustomerEmail) {
		return nil, httperr.ErrBusiness("invalid_request")
	}

	// --------------------------------------------------
	// 2️⃣ Negócio / serviço / profissional
	// --------------------------------------------------
	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, httperr.ErrBusiness("business_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil || !service.Active || service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	professional, err := uc.repo.GetProfessional(ctx, in.BusinessID, in.ProfessionalID)
	if err != nil || !professional.Active {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	// --------------------------------------------------
	// 3️⃣ Intervalo candidato no fuso do negócio
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(biz.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	candidate := domain.NewInterval(
		start,
		time.Duration(service.DurationMin)*time.Minute,
	)

	// --------------------------------------------------
	// 4️⃣ Antecedência mínima
	// --------------------------------------------------
	now := uc.now().In(timezone.Location(biz.Timezone))
	minAllowed := now.Add(time.Duration(biz.MinAdvanceHours) * time.Hour)
	if candidate.Start.Before(minAllowed) {
		return nil, &LeadTimeError{RequiredHours: biz.MinAdvanceHours}
	}

	// --------------------------------------------------
	// 5️⃣ Dentro da janela de atendimento
	// --------------------------------------------------
	hours, err := resolveHours(biz, candidate.Start)
	if err != nil {
		return nil, err
	}
	if candidate.Start.Before(hours.Open) || candidate.End.After(hours.Close) {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	// --------------------------------------------------
	// 6️⃣ Unidade atômica: cota → cliente → conflito → insert
	// --------------------------------------------------
	var created *models.Appointment

	commit := func(txRepo domain.Repository) error {

		// cota mensal dentro da mesma transação do insert — duas
		// criações concorrentes não estouram o teto juntas
		if err := uc.quota.Check(
			ctx, txRepo, biz, plan.ResourceAppointment, now,
		); err != nil {
			return err
		}

		customer, err := txRepo.ResolveCustomer(
			ctx,
			in.BusinessID,
			in.CustomerName,
			validators.NormalizePhone(in.CustomerPhone),
			in.CustomerEmail,
		)
		if err != nil {
			return err
		}

		conflicts, err := txRepo.FindOverlapping(
			ctx,
			in.ProfessionalID,
			candidate.Start,
			candidate.End,
		)
		if err != nil {
			return err
		}
		if domain.Conflicts(candidate, conflicts) {
			return httperr.ErrBusiness("slot_conflict")
		}

		ap := &models.Appointment{
			Reference:      uuid.NewString(),
			BusinessID:     in.BusinessID,
			ProfessionalID: in.ProfessionalID,
			ServiceID:      service.ID,
			CustomerID:     customer.ID,
			StartTime:      candidate.Start,
			EndTime:        candidate.End,
			Status:         string(domain.InitialStatus()),
			Notes:          in.Notes,
		}
		ap.Customer = *customer

		if err := txRepo.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		created = ap
		return nil
	}

	err = uc.repo.InTransaction(ctx, commit)

	// retry único, e só para conflito de transação — recusas de
	// validação e de cota nunca são retentadas
	if errors.Is(err, domain.ErrTxConflict) {
		log.Info().
			Uint("professional_id", in.ProfessionalID).
			Time("start", candidate.Start).
			Msg("reservation lost serialization race, retrying once")

		err = uc.repo.InTransaction(ctx, commit)
		if errors.Is(err, domain.ErrTxConflict) {
			err = httperr.ErrBusiness("slot_conflict")
		}
	}

	if err != nil {
		if httperr.IsBusiness(err, "slot_conflict") {
			uc.audit.Dispatch(audit.Event{
				BusinessID: in.BusinessID,
				Action:     "reservation_conflict",
				Entity:     "appointment",
				Metadata: map[string]any{
					"professional_id": in.ProfessionalID,
					"start":           candidate.Start,
					"end":             candidate.End,
				},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 7️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		Action:     "reservation_created",
		Entity:     "appointment",
		EntityID:   &created.ID,
	})

	return created, nil
}
