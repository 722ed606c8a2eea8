package booking

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Intervalo ocupado pelo agendamento
func IntervalOf(ap *models.Appointment) Interval {
	return Interval{Start: ap.StartTime, End: ap.EndTime}
}

// Conflicts aplica o predicado canônico contra os agendamentos
// retornados pelo repositório (já filtrados de cancelados).
func Conflicts(candidate Interval, existing []models.Appointment) bool {
	for _, ap := range existing {
		if !Status(ap.Status).Occupies() {
			continue
		}
		if candidate.Overlaps(IntervalOf(&ap)) {
			return true
		}
	}
	return false
}
