package memory

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AuditRepository struct {
	s *Store
}

func (s *Store) Audit() *AuditRepository {
	return &AuditRepository{s: s}
}

// Insert bypasses the unit-of-work snapshot, like the async writer it serves.
func (r *AuditRepository) Insert(_ context.Context, log *models.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	log.ID = uint(len(r.s.audits) + 1)
	if log.CreatedAt.IsZero() {
		log.CreatedAt = r.s.now()
	}
	r.s.audits = append(r.s.audits, *log)
	return nil
}

func (r *AuditRepository) List(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []models.AuditLog
	for _, l := range r.s.audits {
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if f.From != nil && l.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !l.CreatedAt.Before(*f.To) {
			continue
		}
		matched = append(matched, l)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

var _ audit.Store = (*AuditRepository)(nil)
