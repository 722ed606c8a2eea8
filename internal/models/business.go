package models

import "time"

// Business é o tenant: todo o resto pende dele.
type Business struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:100;not null" json:"name"`

	// Identificador público usado nas rotas /api/public/:slug
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	// Janela de atendimento diária, em HH:MM no fuso do negócio
	OpensAt  string `gorm:"size:5;default:'08:00'" json:"opens_at"`
	ClosesAt string `gorm:"size:5;default:'18:00'" json:"closes_at"`

	// Antecedência mínima exigida para reservar, em horas
	MinAdvanceHours int `gorm:"default:0" json:"min_advance_hours"`

	PlanTier string `gorm:"size:20;default:'free'" json:"plan_tier"`

	Timezone string `gorm:"size:50;default:'America/Sao_Paulo'" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
