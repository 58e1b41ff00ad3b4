package businesshours

import (
	"context"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/businesshours"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// CONTRACTS
// ======================================================

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

// AvailabilityInvalidator drops every cached slot list after a calendar change.
type AvailabilityInvalidator interface {
	DeleteAll(ctx context.Context) error
}

// ======================================================
// USE CASE
// ======================================================

type Calendar struct {
	repo  domain.Repository
	tx    TxManager
	audit Auditor
	cache AvailabilityInvalidator
	log   *slog.Logger
}

func NewCalendar(
	repo domain.Repository,
	tx TxManager,
	audit Auditor,
	cache AvailabilityInvalidator,
	log *slog.Logger,
) *Calendar {
	return &Calendar{
		repo:  repo,
		tx:    tx,
		audit: audit,
		cache: cache,
		log:   log,
	}
}

// HoursFor resolve o expediente do dia da semana de date. Duplicatas são
// removidas na leitura; calendário vazio recebe o padrão.
func (c *Calendar) HoursFor(ctx context.Context, date time.Time) (domain.DayHours, error) {
	weekday := int(date.Weekday())

	recs, err := c.repo.ListByWeekday(ctx, weekday)
	if err != nil {
		return domain.DayHours{}, err
	}

	if len(recs) == 0 {
		seeded, err := c.seedIfEmpty(ctx)
		if err != nil {
			return domain.DayHours{}, err
		}
		if seeded {
			if recs, err = c.repo.ListByWeekday(ctx, weekday); err != nil {
				return domain.DayHours{}, err
			}
		}
	}

	if len(recs) == 0 {
		return domain.Closed(date.Weekday()), nil
	}

	kept, dups := domain.Reconcile(recs)
	if err := c.dropDuplicates(ctx, dups); err != nil {
		return domain.DayHours{}, err
	}

	return domain.FromRecord(kept[0]), nil
}

// List devolve os sete dias (ou o que existir) ordenados por dia da semana.
func (c *Calendar) List(ctx context.Context) ([]models.BusinessHours, error) {
	if _, err := c.seedIfEmpty(ctx); err != nil {
		return nil, err
	}
	return c.reconciled(ctx)
}

// SetHours valida tudo antes de gravar; a gravação é uma única transação.
func (c *Calendar) SetHours(
	ctx context.Context,
	userID *uint,
	settings []domain.DaySetting,
) ([]models.BusinessHours, error) {

	// --------------------------------------------------
	// Validação
	// --------------------------------------------------
	normalized := make([]domain.DaySetting, 0, len(settings))
	seen := map[int]bool{}
	for _, s := range settings {
		n, err := s.Normalize()
		if err != nil {
			return nil, err
		}
		if seen[n.Weekday] {
			return nil, httperr.ValidationError{Field: "weekday", Reason: "duplicated weekday"}
		}
		seen[n.Weekday] = true
		normalized = append(normalized, n)
	}

	// --------------------------------------------------
	// Persistência
	// --------------------------------------------------
	var out []models.BusinessHours
	err := c.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, s := range normalized {
			recs, err := c.repo.ListByWeekday(ctx, s.Weekday)
			if err != nil {
				return err
			}

			var rec models.BusinessHours
			if len(recs) > 0 {
				kept, dups := domain.Reconcile(recs)
				if err := c.dropDuplicates(ctx, dups); err != nil {
					return err
				}
				rec = kept[0]
			}

			s.ApplyTo(&rec)
			if err := c.repo.Save(ctx, &rec); err != nil {
				return err
			}
		}

		var err error
		out, err = c.reconciled(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := c.cache.DeleteAll(ctx); err != nil {
		c.log.Warn("availability cache flush failed", "err", err)
	}

	c.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   audit.ActionBusinessHoursUpdated,
		Entity:   "business_hours",
		Metadata: normalized,
	})

	c.log.Info("business hours updated", "days", len(normalized))
	return out, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (c *Calendar) seedIfEmpty(ctx context.Context) (bool, error) {
	all, err := c.repo.ListAll(ctx)
	if err != nil {
		return false, err
	}
	if len(all) > 0 {
		return false, nil
	}

	if err := c.repo.InsertMissing(ctx, domain.Defaults()); err != nil {
		return false, err
	}
	c.log.Info("default business hours created")
	return true, nil
}

func (c *Calendar) reconciled(ctx context.Context) ([]models.BusinessHours, error) {
	all, err := c.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	kept, dups := domain.Reconcile(all)
	if err := c.dropDuplicates(ctx, dups); err != nil {
		return nil, err
	}
	return kept, nil
}

func (c *Calendar) dropDuplicates(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := c.repo.DeleteByIDs(ctx, ids); err != nil {
		return err
	}
	c.log.Warn("duplicate business hours removed", "ids", ids)
	return nil
}
