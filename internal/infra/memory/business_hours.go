package memory

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/barber-booking/internal/domain/businesshours"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BusinessHoursRepository struct {
	s *Store
}

func (s *Store) BusinessHours() *BusinessHoursRepository {
	return &BusinessHoursRepository{s: s}
}

func (r *BusinessHoursRepository) ListAll(_ context.Context) ([]models.BusinessHours, error) {
	return r.filter(func(models.BusinessHours) bool { return true }), nil
}

func (r *BusinessHoursRepository) ListByWeekday(_ context.Context, weekday int) ([]models.BusinessHours, error) {
	return r.filter(func(rec models.BusinessHours) bool { return rec.Weekday == weekday }), nil
}

func (r *BusinessHoursRepository) Save(ctx context.Context, rec *models.BusinessHours) error {
	defer r.s.lockWrite(ctx)()

	if rec.ID == 0 {
		rec.ID = r.s.id()
	}
	r.s.stamp(&rec.CreatedAt, &rec.UpdatedAt)
	r.s.data.hours[rec.ID] = *rec
	return nil
}

func (r *BusinessHoursRepository) InsertMissing(ctx context.Context, recs []models.BusinessHours) error {
	defer r.s.lockWrite(ctx)()

	present := map[int]bool{}
	for _, rec := range r.s.data.hours {
		present[rec.Weekday] = true
	}

	for _, rec := range recs {
		if present[rec.Weekday] {
			continue
		}
		rec.ID = r.s.id()
		r.s.stamp(&rec.CreatedAt, &rec.UpdatedAt)
		r.s.data.hours[rec.ID] = rec
		present[rec.Weekday] = true
	}
	return nil
}

func (r *BusinessHoursRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	defer r.s.lockWrite(ctx)()

	for _, id := range ids {
		delete(r.s.data.hours, id)
	}
	return nil
}

func (r *BusinessHoursRepository) filter(keep func(models.BusinessHours) bool) []models.BusinessHours {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.BusinessHours
	for _, rec := range r.s.data.hours {
		if keep(rec) {
			out = append(out, rec)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Weekday != out[j].Weekday {
			return out[i].Weekday < out[j].Weekday
		}
		return out[i].ID < out[j].ID
	})
	return out
}

var _ businesshours.Repository = (*BusinessHoursRepository)(nil)
