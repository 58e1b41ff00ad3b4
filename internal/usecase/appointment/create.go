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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CustomerID uint
	BarberID   uint
	ServiceID  uint
	Date       time.Time
	StartTime  timezone.Clock

	// ActorID é quem fez a requisição, para auditoria.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	d     Deps
	slots *SlotChecker
}

func NewCreateAppointment(d Deps) *CreateAppointment {
	d = d.withDefaults()
	return &CreateAppointment{
		d:     d,
		slots: NewSlotChecker(d),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	var ap *models.Appointment
	err := uc.d.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		ap, err = uc.insert(ctx, in)
		return err
	})
	if err != nil {
		if httperr.IsSlotUnavailable(err) {
			uc.d.Log.Info("slot unavailable",
				"barber_id", in.BarberID,
				"date", timezone.FormatDate(in.Date),
				"start", in.StartTime.String(),
			)
		}
		return nil, err
	}

	// --------------------------------------------------
	// Pós-commit: cache, auditoria, métricas
	// --------------------------------------------------
	if err := uc.d.Cache.DeleteBarberDate(ctx, ap.BarberID, ap.Date); err != nil {
		uc.d.Log.Warn("availability cache invalidation failed", "err", err)
	}

	uc.d.Audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: audit.IDPtr(ap.ID),
	})
	uc.d.Metrics.AppointmentWritten("create")

	uc.d.Log.Info("appointment created",
		"appointment_id", ap.ID,
		"barber_id", ap.BarberID,
		"date", timezone.FormatDate(ap.Date),
		"start", ap.StartTime,
	)
	return ap, nil
}

// insert must run inside a unit of work; reassignment reuses it in its own.
func (uc *CreateAppointment) insert(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Cliente, barbeiro e serviço
	// --------------------------------------------------
	if _, err := uc.d.Directory.GetCustomer(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	if _, err := uc.d.Directory.GetBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}
	if _, err := uc.d.Directory.GetService(ctx, in.ServiceID); err != nil {
		return nil, err
	}
	if err := directory.EnsureOffered(ctx, uc.d.Directory, in.BarberID, in.ServiceID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Trava a agenda do barbeiro
	// --------------------------------------------------
	if err := uc.d.Appointments.LockBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Ocupação
	// --------------------------------------------------
	ok, err := uc.slots.IsAvailable(ctx, SlotQuery{
		BarberID:  in.BarberID,
		ServiceID: in.ServiceID,
		Date:      in.Date,
		Start:     in.StartTime,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.SlotUnavailableError{
			Date: timezone.FormatDate(in.Date),
			Time: in.StartTime.String(),
		}
	}

	// --------------------------------------------------
	// 4️⃣ Persistência
	// --------------------------------------------------
	ap := domain.NewConfirmed(in.CustomerID, in.BarberID, in.ServiceID, in.Date, in.StartTime)
	if err := uc.d.Appointments.Create(ctx, ap); err != nil {
		return nil, err
	}

	return ap, nil
}
