package models

import "time"

type WaitingListEntry struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"not null;index" json:"customer_id"`
	BarberID   uint `gorm:"not null;index:idx_waiting_list_queue" json:"barber_id"`
	ServiceID  uint `gorm:"not null;index:idx_waiting_list_queue" json:"service_id"`

	RequestedDate time.Time `gorm:"type:date;not null;index:idx_waiting_list_queue" json:"requested_date"`
	EnqueuedAt    time.Time `gorm:"not null;index:idx_waiting_list_queue" json:"enqueued_at"`

	Status string `gorm:"size:20;not null;default:'waiting'" json:"status"`

	AppointmentID *uint      `json:"appointment_id"`
	ResolvedAt    *time.Time `json:"resolved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WaitingListEntry) TableName() string {
	return "waiting_list"
}
