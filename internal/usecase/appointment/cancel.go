package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CancelResult struct {
	Appointment  *models.Appointment
	Reassignment Reassignment
}

type CancelAppointment struct {
	d        Deps
	reassign *ReassignSlot
}

func NewCancelAppointment(d Deps) *CancelAppointment {
	d = d.withDefaults()
	return &CancelAppointment{
		d:        d,
		reassign: NewReassignSlot(d),
	}
}

// Execute cancela e, depois do commit, tenta repassar a vaga. Falha no
// repasse não desfaz o cancelamento.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID *uint,
) (*CancelResult, error) {

	var (
		ap               *models.Appointment
		alreadyCancelled bool
	)

	err := uc.d.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		ap, err = uc.d.Appointments.GetByID(ctx, appointmentID)
		if err != nil {
			return err
		}

		if err := uc.d.Appointments.LockBarber(ctx, ap.BarberID); err != nil {
			return err
		}

		alreadyCancelled = domain.Cancel(ap, uc.d.Now())
		return uc.d.Appointments.Update(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	res := &CancelResult{Appointment: ap}

	if alreadyCancelled {
		res.Reassignment = Reassignment{Outcome: ReassignmentSkipped}
		return res, nil
	}

	if err := uc.d.Cache.DeleteBarberDate(ctx, ap.BarberID, ap.Date); err != nil {
		uc.d.Log.Warn("availability cache invalidation failed", "err", err)
	}

	uc.d.Audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   audit.ActionAppointmentCancelled,
		Entity:   "appointment",
		EntityID: audit.IDPtr(ap.ID),
	})
	uc.d.Metrics.AppointmentWritten("cancel")
	uc.d.Log.Info("appointment cancelled", "appointment_id", ap.ID)

	res.Reassignment = uc.reassign.Execute(ctx, *ap)
	return res, nil
}
