package memory

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/waitinglist"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type WaitingListRepository struct {
	s *Store
}

func (s *Store) WaitingList() *WaitingListRepository {
	return &WaitingListRepository{s: s}
}

func (r *WaitingListRepository) Create(ctx context.Context, e *models.WaitingListEntry) error {
	defer r.s.lockWrite(ctx)()

	e.ID = r.s.id()
	e.RequestedDate = timezone.DateOnly(e.RequestedDate)
	r.s.stamp(&e.CreatedAt, &e.UpdatedAt)
	r.s.data.waiting[e.ID] = *e
	return nil
}

func (r *WaitingListRepository) Update(ctx context.Context, e *models.WaitingListEntry) error {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.data.waiting[e.ID]; !ok {
		return httperr.NotFoundOf("waiting_list_entry", e.ID)
	}
	r.s.stamp(&e.CreatedAt, &e.UpdatedAt)
	r.s.data.waiting[e.ID] = *e
	return nil
}

func (r *WaitingListRepository) Delete(ctx context.Context, id uint) error {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.data.waiting[id]; !ok {
		return httperr.NotFoundOf("waiting_list_entry", id)
	}
	delete(r.s.data.waiting, id)
	return nil
}

func (r *WaitingListRepository) GetByID(_ context.Context, id uint) (*models.WaitingListEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.data.waiting[id]
	if !ok {
		return nil, httperr.NotFoundOf("waiting_list_entry", id)
	}
	return &e, nil
}

func (r *WaitingListRepository) ListWaiting(
	_ context.Context,
	barberID uint,
	serviceID uint,
	date time.Time,
) ([]models.WaitingListEntry, error) {
	day := timezone.DateOnly(date)
	return r.filter(func(e models.WaitingListEntry) bool {
		return e.BarberID == barberID &&
			e.ServiceID == serviceID &&
			e.RequestedDate.Equal(day) &&
			e.Status == string(waitinglist.StatusWaiting)
	}), nil
}

func (r *WaitingListRepository) ListByCustomer(_ context.Context, customerID uint) ([]models.WaitingListEntry, error) {
	return r.filter(func(e models.WaitingListEntry) bool { return e.CustomerID == customerID }), nil
}

func (r *WaitingListRepository) ListActiveByBarber(
	_ context.Context,
	barberID uint,
	date time.Time,
) ([]models.WaitingListEntry, error) {
	day := timezone.DateOnly(date)
	return r.filter(func(e models.WaitingListEntry) bool {
		return e.BarberID == barberID &&
			e.RequestedDate.Equal(day) &&
			e.Status == string(waitinglist.StatusWaiting)
	}), nil
}

// filter returns matches in FIFO order.
func (r *WaitingListRepository) filter(keep func(models.WaitingListEntry) bool) []models.WaitingListEntry {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.WaitingListEntry
	for _, e := range r.s.data.waiting {
		if keep(e) {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].EnqueuedAt.Equal(out[j].EnqueuedAt) {
			return out[i].EnqueuedAt.Before(out[j].EnqueuedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

var _ waitinglist.Repository = (*WaitingListRepository)(nil)
