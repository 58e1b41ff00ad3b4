package waitinglist

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/waitinglist"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CancelEntry struct {
	d Deps
}

func NewCancelEntry(d Deps) *CancelEntry {
	return &CancelEntry{d: d.withDefaults()}
}

// Execute remove uma entrada ainda em espera.
func (uc *CancelEntry) Execute(ctx context.Context, id uint) (*models.WaitingListEntry, error) {
	var removed *models.WaitingListEntry

	err := uc.d.Tx.WithinTx(ctx, func(ctx context.Context) error {
		e, err := uc.d.WaitingList.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if domain.IsTerminal(domain.Status(e.Status)) {
			return httperr.ErrBusiness("invalid_state")
		}
		if err := uc.d.WaitingList.Delete(ctx, id); err != nil {
			return err
		}
		removed = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.d.Log.Info("waiting list entry withdrawn", "entry_id", id)
	return removed, nil
}
