package booking

import "time"

// Granularidade fixa da grade de horários
const SlotGranularity = 30 * time.Minute

type SlotsInput struct {
	BusinessID     uint
	ProfessionalID uint
	ServiceID      uint
	Date           time.Time
}

type TimeSlot struct {
	Time      string `json:"time"` // HH:MM
	Available bool   `json:"available"`
}

type ReservationInput struct {
	BusinessID     uint
	ProfessionalID uint
	ServiceID      uint

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string
}

// BusinessHours é a janela de atendimento do dia, já resolvida
// para a data pedida no fuso do negócio.
type BusinessHours struct {
	Open  time.Time
	Close time.Time
}
