package waitinglist

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ListEntries struct {
	d Deps
}

func NewListEntries(d Deps) *ListEntries {
	return &ListEntries{d: d.withDefaults()}
}

func (uc *ListEntries) ByCustomer(ctx context.Context, customerID uint) ([]models.WaitingListEntry, error) {
	return uc.d.WaitingList.ListByCustomer(ctx, customerID)
}

// ActiveByBarber lista só as entradas em espera, em ordem de chegada.
func (uc *ListEntries) ActiveByBarber(ctx context.Context, barberID uint, date time.Time) ([]models.WaitingListEntry, error) {
	return uc.d.WaitingList.ListActiveByBarber(ctx, barberID, date)
}

func (uc *ListEntries) Get(ctx context.Context, id uint) (*models.WaitingListEntry, error) {
	return uc.d.WaitingList.GetByID(ctx, id)
}
