package catalog

import (
	"context"
	"log/slog"
	"sort"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
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

// AvailabilityInvalidator derruba as grades em cache; um serviço removido
// do barbeiro não pode continuar aparecendo como disponível.
type AvailabilityInvalidator interface {
	DeleteAll(ctx context.Context) error
}

// ======================================================
// USE CASE
// ======================================================

type BarberServices struct {
	dir   directory.Repository
	tx    TxManager
	audit Auditor
	cache AvailabilityInvalidator
	log   *slog.Logger
}

func NewBarberServices(
	dir directory.Repository,
	tx TxManager,
	audit Auditor,
	cache AvailabilityInvalidator,
	log *slog.Logger,
) *BarberServices {
	return &BarberServices{
		dir:   dir,
		tx:    tx,
		audit: audit,
		cache: cache,
		log:   log,
	}
}

func (uc *BarberServices) List(ctx context.Context, barberID uint) ([]models.Service, error) {
	if _, err := uc.dir.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}
	return uc.dir.ListBarberServices(ctx, barberID)
}

// Replace troca todo o conjunto de serviços do barbeiro. Lista vazia remove
// os vínculos e o barbeiro volta a atender qualquer serviço.
func (uc *BarberServices) Replace(
	ctx context.Context,
	userID *uint,
	barberID uint,
	serviceIDs []uint,
) ([]models.Service, error) {

	ids := dedupe(serviceIDs)

	var out []models.Service
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := uc.dir.GetBarber(ctx, barberID); err != nil {
			return err
		}
		for _, id := range ids {
			if _, err := uc.dir.GetService(ctx, id); err != nil {
				return err
			}
		}

		if err := uc.dir.ReplaceBarberServices(ctx, barberID, ids); err != nil {
			return err
		}

		var err error
		out, err = uc.dir.ListBarberServices(ctx, barberID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := uc.cache.DeleteAll(ctx); err != nil {
		uc.log.Warn("availability cache flush failed", "err", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   audit.ActionBarberServicesUpdated,
		Entity:   "barber",
		EntityID: audit.IDPtr(barberID),
		Metadata: map[string]any{"service_ids": ids},
	})

	uc.log.Info("barber services updated", "barber_id", barberID, "services", len(ids))
	return out, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
