package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type UpdateAppointmentInput struct {
	BarberID  uint
	ServiceID uint
	Date      time.Time
	StartTime timezone.Clock

	ActorID *uint
}

type UpdateAppointment struct {
	d     Deps
	slots *SlotChecker
}

func NewUpdateAppointment(d Deps) *UpdateAppointment {
	d = d.withDefaults()
	return &UpdateAppointment{
		d:     d,
		slots: NewSlotChecker(d),
	}
}

// Execute reagenda no lugar. O status não muda.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	var (
		ap         *models.Appointment
		prevBarber uint
		prevDate   time.Time
	)

	err := uc.d.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		ap, err = uc.d.Appointments.GetByID(ctx, appointmentID)
		if err != nil {
			return err
		}
		if _, err := uc.d.Directory.GetBarber(ctx, in.BarberID); err != nil {
			return err
		}
		if _, err := uc.d.Directory.GetService(ctx, in.ServiceID); err != nil {
			return err
		}
		if err := directory.EnsureOffered(ctx, uc.d.Directory, in.BarberID, in.ServiceID); err != nil {
			return err
		}

		if err := uc.d.Appointments.LockBarber(ctx, in.BarberID); err != nil {
			return err
		}

		ok, err := uc.slots.IsAvailable(ctx, SlotQuery{
			BarberID:             in.BarberID,
			ServiceID:            in.ServiceID,
			Date:                 in.Date,
			Start:                in.StartTime,
			ExcludeAppointmentID: ap.ID,
		})
		if err != nil {
			return err
		}
		if !ok {
			return httperr.SlotUnavailableError{
				Date: timezone.FormatDate(in.Date),
				Time: in.StartTime.String(),
			}
		}

		prevBarber, prevDate = ap.BarberID, ap.Date
		domain.MoveTo(ap, in.BarberID, in.ServiceID, in.Date, in.StartTime)

		return uc.d.Appointments.Update(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	for _, key := range []struct {
		barber uint
		date   time.Time
	}{{prevBarber, prevDate}, {ap.BarberID, ap.Date}} {
		if err := uc.d.Cache.DeleteBarberDate(ctx, key.barber, key.date); err != nil {
			uc.d.Log.Warn("availability cache invalidation failed", "err", err)
		}
	}

	uc.d.Audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   audit.ActionAppointmentUpdated,
		Entity:   "appointment",
		EntityID: audit.IDPtr(ap.ID),
		Metadata: map[string]any{
			"barber_id":  ap.BarberID,
			"service_id": ap.ServiceID,
			"date":       timezone.FormatDate(ap.Date),
			"start_time": ap.StartTime,
		},
	})
	uc.d.Metrics.AppointmentWritten("update")

	return ap, nil
}
