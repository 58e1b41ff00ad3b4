package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
	"github.com/BruksfildServices01/barber-booking/internal/domain/waitinglist"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ReassignmentOutcome string

const (
	ReassignmentNone     ReassignmentOutcome = "none"
	ReassignmentAssigned ReassignmentOutcome = "assigned"
	ReassignmentExpired  ReassignmentOutcome = "expired"
	ReassignmentFailed   ReassignmentOutcome = "failed"
	// ReassignmentSkipped: the appointment was already cancelled before.
	ReassignmentSkipped ReassignmentOutcome = "skipped"
)

// Reassignment é o resultado da tentativa de repassar a vaga liberada.
// Err só é preenchido quando Outcome é failed e contém um httperr.ReassignmentError.
type Reassignment struct {
	Outcome     ReassignmentOutcome      `json:"status"`
	Entry       *models.WaitingListEntry `json:"waiting_list_entry,omitempty"`
	Appointment *models.Appointment      `json:"appointment,omitempty"`
	Err         error                    `json:"-"`
}

// ======================================================
// USE CASE
// ======================================================

type ReassignSlot struct {
	d      Deps
	create *CreateAppointment
}

func NewReassignSlot(d Deps) *ReassignSlot {
	d = d.withDefaults()
	return &ReassignSlot{
		d:      d,
		create: NewCreateAppointment(d),
	}
}

// Execute promove a primeira entrada em espera para a vaga de freed.
// Nunca devolve erro: falhas vêm dentro do resultado.
func (uc *ReassignSlot) Execute(ctx context.Context, freed models.Appointment) Reassignment {
	res := uc.run(ctx, freed)
	uc.d.Metrics.Reassignment(string(res.Outcome))
	return res
}

func (uc *ReassignSlot) run(ctx context.Context, freed models.Appointment) Reassignment {
	start, err := timezone.ParseClock(freed.StartTime)
	if err != nil {
		return uc.failed(0, err)
	}

	var (
		entryID  uint
		entry    *models.WaitingListEntry
		promoted *models.Appointment
	)

	// --------------------------------------------------
	// 1️⃣ Cabeça da fila + criação, numa só transação
	// --------------------------------------------------
	err = uc.d.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.d.Appointments.LockBarber(ctx, freed.BarberID); err != nil {
			return err
		}

		queue, err := uc.d.WaitingList.ListWaiting(ctx, freed.BarberID, freed.ServiceID, freed.Date)
		if err != nil {
			return err
		}
		if len(queue) == 0 {
			return nil
		}

		head := queue[0]
		entryID = head.ID

		ap, err := uc.create.insert(ctx, CreateAppointmentInput{
			CustomerID: head.CustomerID,
			BarberID:   head.BarberID,
			ServiceID:  head.ServiceID,
			Date:       freed.Date,
			StartTime:  start,
		})
		if err != nil {
			return err
		}

		waitinglist.Confirm(&head, ap.ID, uc.d.Now())
		if err := uc.d.WaitingList.Update(ctx, &head); err != nil {
			return err
		}

		entry, promoted = &head, ap
		return nil
	})

	switch {
	case err == nil && entryID == 0:
		return Reassignment{Outcome: ReassignmentNone}

	case err == nil:
		uc.afterAssigned(ctx, entry, promoted)
		return Reassignment{
			Outcome:     ReassignmentAssigned,
			Entry:       entry,
			Appointment: promoted,
		}

	// --------------------------------------------------
	// 2️⃣ Vaga já não serve: entrada expira
	// --------------------------------------------------
	case httperr.IsSlotUnavailable(err),
		httperr.IsBusiness(err, directory.CodeServiceNotOffered):
		return uc.expire(ctx, entryID)

	default:
		return uc.failed(entryID, err)
	}
}

func (uc *ReassignSlot) expire(ctx context.Context, entryID uint) Reassignment {
	var entry *models.WaitingListEntry

	err := uc.d.Tx.WithinTx(ctx, func(ctx context.Context) error {
		e, err := uc.d.WaitingList.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if waitinglist.Status(e.Status) == waitinglist.StatusWaiting {
			waitinglist.Expire(e, uc.d.Now())
			if err := uc.d.WaitingList.Update(ctx, e); err != nil {
				return err
			}
		}
		entry = e
		return nil
	})
	if err != nil {
		return uc.failed(entryID, err)
	}

	uc.d.Audit.Dispatch(audit.Event{
		Action:   audit.ActionWaitingListExpired,
		Entity:   "waiting_list_entry",
		EntityID: audit.IDPtr(entry.ID),
	})
	uc.d.Log.Info("waiting list entry expired", "entry_id", entry.ID)

	return Reassignment{Outcome: ReassignmentExpired, Entry: entry}
}

func (uc *ReassignSlot) afterAssigned(ctx context.Context, entry *models.WaitingListEntry, ap *models.Appointment) {
	if err := uc.d.Cache.DeleteBarberDate(ctx, ap.BarberID, ap.Date); err != nil {
		uc.d.Log.Warn("availability cache invalidation failed", "err", err)
	}

	uc.d.Audit.Dispatch(audit.Event{
		UserID:   audit.IDPtr(entry.CustomerID),
		Action:   audit.ActionAppointmentReassigned,
		Entity:   "appointment",
		EntityID: audit.IDPtr(ap.ID),
		Metadata: map[string]any{"waiting_list_entry_id": entry.ID},
	})
	uc.d.Metrics.AppointmentWritten("reassign")

	uc.d.Log.Info("slot reassigned",
		"entry_id", entry.ID,
		"appointment_id", ap.ID,
		"customer_id", entry.CustomerID,
	)
}

func (uc *ReassignSlot) failed(entryID uint, cause error) Reassignment {
	err := httperr.ReassignmentError{WaitingListEntryID: entryID, Err: cause}
	uc.d.Log.Error("reassignment failed", "entry_id", entryID, "err", cause)
	return Reassignment{Outcome: ReassignmentFailed, Err: err}
}
