package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/plan"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// mapReservationError traduz as cinco recusas modeladas do motor de
// reservas para HTTP. Qualquer outra falha é não modelada: loga e 500.
//
//	invalid_request      → 400
//	*_not_found          → 404
//	lead_time_violation  → 422
//	plan_limit_reached   → 403 (+ uso/teto/upgrade)
//	slot_conflict        → 409
func mapReservationError(c *gin.Context, err error) {

	var limitErr *plan.LimitError
	if errors.As(err, &limitErr) {
		httperr.PlanLimitReached(c, httperr.LimitPayload{
			Message:       "Limite do plano atingido.",
			Resource:      string(limitErr.Resource),
			Current:       limitErr.Current,
			Limit:         limitErr.Limit,
			SuggestedPlan: string(limitErr.SuggestedTier),
		})
		return
	}

	var leadErr *ucBooking.LeadTimeError
	if errors.As(err, &leadErr) {
		c.JSON(422, gin.H{
			"error_code":          "lead_time_violation",
			"message":             "Horário exige antecedência mínima.",
			"required_lead_hours": leadErr.RequiredHours,
		})
		return
	}

	code, ok := httperr.BusinessCode(err)
	if !ok {
		log.Error().Err(err).Msg("unmodeled reservation failure")
		httperr.Internal(c, "reservation_failed", "Erro ao criar reserva.")
		return
	}

	switch code {
	case "invalid_request", "invalid_date_or_time":
		httperr.BadRequest(c, code, "Dados inválidos.")

	case "business_not_found", "service_not_found",
		"professional_not_found", "appointment_not_found":
		httperr.NotFound(c, code, "Recurso não encontrado.")

	case "outside_business_hours":
		httperr.Unprocessable(c, code, "Fora do horário de atendimento.")

	case "slot_conflict":
		httperr.Conflict(c, code, "Horário acabou de ser reservado. Escolha outro.")

	case "invalid_state":
		httperr.Unprocessable(c, code, "Transição de status inválida.")

	default:
		httperr.BadRequest(c, code, "Não foi possível processar a reserva.")
	}
}
