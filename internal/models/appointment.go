package models

import "time"

// Appointment guarda apenas as chaves estrangeiras; nomes são resolvidos
// na borda de resposta.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"not null;index" json:"customer_id"`
	BarberID   uint `gorm:"not null;index:idx_appointments_barber_date" json:"barber_id"`
	ServiceID  uint `gorm:"not null" json:"service_id"`

	Date      time.Time `gorm:"type:date;not null;index:idx_appointments_barber_date" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`

	Status string `gorm:"size:20;not null;default:'confirmed';index" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
