package waitinglist

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/waitinglist"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type GetPosition struct {
	d Deps
}

func NewGetPosition(d Deps) *GetPosition {
	return &GetPosition{d: d.withDefaults()}
}

// Execute devolve a posição 1-based. Entradas resolvidas não têm posição.
func (uc *GetPosition) Execute(ctx context.Context, id uint) (int, error) {
	e, err := uc.d.WaitingList.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if domain.Status(e.Status) != domain.StatusWaiting {
		return 0, httperr.NotFoundOf("waiting_list_entry", id)
	}

	queue, err := uc.d.WaitingList.ListWaiting(ctx, e.BarberID, e.ServiceID, e.RequestedDate)
	if err != nil {
		return 0, err
	}

	pos := position(queue, id)
	if pos == 0 {
		return 0, httperr.NotFoundOf("waiting_list_entry", id)
	}
	return pos, nil
}
