package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ===============================
// Domain Actions
// ===============================

func NewConfirmed(
	customerID uint,
	barberID uint,
	serviceID uint,
	date time.Time,
	start timezone.Clock,
) *models.Appointment {
	return &models.Appointment{
		CustomerID: customerID,
		BarberID:   barberID,
		ServiceID:  serviceID,
		Date:       timezone.DateOnly(date),
		StartTime:  start.String(),
		Status:     string(InitialStatus()),
	}
}

// Cancel não tem guarda de estado: cancelar de novo apenas regrava o status.
// Reports whether the appointment was cancelled before this call.
func Cancel(ap *models.Appointment, now time.Time) (alreadyCancelled bool) {
	alreadyCancelled = IsCancelled(Status(ap.Status))

	ap.Status = string(StatusCancelled)
	if ap.CancelledAt == nil {
		ap.CancelledAt = &now
	}
	return alreadyCancelled
}

func MoveTo(
	ap *models.Appointment,
	barberID uint,
	serviceID uint,
	date time.Time,
	start timezone.Clock,
) {
	ap.BarberID = barberID
	ap.ServiceID = serviceID
	ap.Date = timezone.DateOnly(date)
	ap.StartTime = start.String()
}
