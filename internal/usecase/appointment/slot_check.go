package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// SlotChecker answers whether [start, start+duration) can be booked.
type SlotChecker struct {
	d Deps
}

func NewSlotChecker(d Deps) *SlotChecker {
	return &SlotChecker{d: d.withDefaults()}
}

type SlotQuery struct {
	BarberID  uint
	ServiceID uint
	Date      time.Time
	Start     timezone.Clock

	// ExcludeAppointmentID ignora a própria linha num reagendamento.
	ExcludeAppointmentID uint
}

func (sc *SlotChecker) IsAvailable(ctx context.Context, q SlotQuery) (bool, error) {
	svc, err := sc.d.Directory.GetService(ctx, q.ServiceID)
	if err != nil {
		return false, err
	}

	day, err := sc.d.Calendar.HoursFor(ctx, q.Date)
	if err != nil {
		return false, err
	}
	if !day.Bookable() {
		return false, nil
	}

	booked, err := sc.d.Appointments.ListBookedIntervals(ctx, q.BarberID, q.Date)
	if err != nil {
		return false, err
	}

	return domain.SlotFree(day, q.Start, svc.DurationMin, booked, q.ExcludeAppointmentID), nil
}
