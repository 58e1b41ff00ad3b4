package waitinglist

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/waitinglist"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type EnqueueInput struct {
	CustomerID uint
	BarberID   uint
	ServiceID  uint
	Date       time.Time

	ActorID *uint
}

type EnqueueResult struct {
	Entry    *models.WaitingListEntry `json:"entry"`
	Position int                      `json:"position"`
}

type EnqueueEntry struct {
	d Deps
}

func NewEnqueueEntry(d Deps) *EnqueueEntry {
	return &EnqueueEntry{d: d.withDefaults()}
}

func (uc *EnqueueEntry) Execute(ctx context.Context, in EnqueueInput) (*EnqueueResult, error) {
	var res EnqueueResult

	err := uc.d.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.d.Directory.GetCustomer(ctx, in.CustomerID); err != nil {
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

		entry := domain.NewEntry(in.CustomerID, in.BarberID, in.ServiceID, in.Date, uc.d.Now())
		if err := uc.d.WaitingList.Create(ctx, entry); err != nil {
			return err
		}

		queue, err := uc.d.WaitingList.ListWaiting(ctx, entry.BarberID, entry.ServiceID, entry.RequestedDate)
		if err != nil {
			return err
		}

		res = EnqueueResult{Entry: entry, Position: position(queue, entry.ID)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.d.Audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   audit.ActionWaitingListEnqueued,
		Entity:   "waiting_list_entry",
		EntityID: audit.IDPtr(res.Entry.ID),
	})

	uc.d.Log.Info("waiting list entry created",
		"entry_id", res.Entry.ID,
		"barber_id", in.BarberID,
		"date", timezone.FormatDate(in.Date),
		"position", res.Position,
	)
	return &res, nil
}
