package models

import "time"

// Customer é identificado por (negócio, telefone normalizado): a mesma
// pessoa reservando de novo cai no mesmo registro, nunca num duplicado.
type Customer struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	BusinessID uint     `gorm:"uniqueIndex:uq_customer_phone,priority:1;not null" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;uniqueIndex:uq_customer_phone,priority:2;not null" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
