package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
)

type GetAvailability struct {
	d Deps
}

func NewGetAvailability(d Deps) *GetAvailability {
	return &GetAvailability{d: d.withDefaults()}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.AvailableSlot, error) {

	if cached, ok, err := uc.d.Cache.Get(ctx, in); err != nil {
		uc.d.Log.Warn("availability cache read failed", "err", err)
	} else if ok {
		return cached, nil
	}

	version, verErr := uc.d.Cache.Version(ctx, in.BarberID, in.Date)
	if verErr != nil {
		uc.d.Log.Warn("availability cache version read failed", "err", verErr)
	}

	day, err := uc.d.Calendar.HoursFor(ctx, in.Date)
	if err != nil {
		return nil, err
	}

	svc, err := uc.d.Directory.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if err := directory.EnsureOffered(ctx, uc.d.Directory, in.BarberID, in.ServiceID); err != nil {
		return nil, err
	}

	slots := []domain.AvailableSlot{}

	if day.Bookable() && svc.DurationMin > 0 {
		booked, err := uc.d.Appointments.ListBookedIntervals(ctx, in.BarberID, in.Date)
		if err != nil {
			return nil, err
		}

		for _, start := range domain.GenerateSlotStarts(day.Opening, day.Closing, svc.DurationMin) {
			slots = append(slots, domain.AvailableSlot{
				Start:     start,
				End:       start.AddMinutes(svc.DurationMin),
				Available: domain.SlotFree(day, start, svc.DurationMin, booked, 0),
			})
		}
		domain.SortSlots(slots)
	}

	// sem versão não há como detectar invalidação concorrente
	if verErr == nil {
		if err := uc.d.Cache.Set(ctx, in, version, slots); err != nil {
			uc.d.Log.Warn("availability cache write failed", "err", err)
		}
	}

	return slots, nil
}
