package booking

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Apenas agendamentos cancelados liberam o horário.
// Concluídos continuam ocupando o intervalo no histórico.
func (s Status) Occupies() bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

// CanConfirm: pending → confirmed
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel: pending|confirmed → cancelled
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: confirmed → completed
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// Status inicial de toda reserva aceita
func InitialStatus() Status {
	return StatusPending
}
