package waitinglist

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusConfirmed Status = "confirmed"
	StatusExpired   Status = "expired"
)

// IsTerminal: confirmed and expired entries never return to the queue.
func IsTerminal(s Status) bool {
	return s == StatusConfirmed || s == StatusExpired
}

func NewEntry(customerID, barberID, serviceID uint, date, now time.Time) *models.WaitingListEntry {
	return &models.WaitingListEntry{
		CustomerID:    customerID,
		BarberID:      barberID,
		ServiceID:     serviceID,
		RequestedDate: timezone.DateOnly(date),
		EnqueuedAt:    now,
		Status:        string(StatusWaiting),
	}
}

func Confirm(e *models.WaitingListEntry, appointmentID uint, now time.Time) {
	e.Status = string(StatusConfirmed)
	e.AppointmentID = &appointmentID
	e.ResolvedAt = &now
}

func Expire(e *models.WaitingListEntry, now time.Time) {
	e.Status = string(StatusExpired)
	e.ResolvedAt = &now
}
