package dto

import "time"

type AppointmentDTO struct {
	ID          uint   `json:"id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	DurationMin int    `json:"duration_min"`
	Status      string `json:"status"`

	CustomerID   uint   `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	BarberID     uint   `json:"barber_id"`
	BarberName   string `json:"barber_name"`
	ServiceID    uint   `json:"service_id"`
	ServiceName  string `json:"service_name"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}
