package appointment

import (
	"context"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/businesshours"
	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
	"github.com/BruksfildServices01/barber-booking/internal/domain/waitinglist"
)

// ======================================================
// CONTRACTS
// ======================================================

type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type HoursProvider interface {
	HoursFor(ctx context.Context, date time.Time) (businesshours.DayHours, error)
}

// AvailabilityCache is advisory: a miss or an error falls back to the store.
// Version is read before the grid is computed; Set drops the write when an
// invalidation for the same barber/day happened in between.
type AvailabilityCache interface {
	Get(ctx context.Context, in domain.AvailabilityInput) ([]domain.AvailableSlot, bool, error)
	Version(ctx context.Context, barberID uint, date time.Time) (string, error)
	Set(ctx context.Context, in domain.AvailabilityInput, version string, slots []domain.AvailableSlot) error
	DeleteBarberDate(ctx context.Context, barberID uint, date time.Time) error
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

type Recorder interface {
	AppointmentWritten(operation string)
	Reassignment(outcome string)
}

// ======================================================
// DEPENDENCIES
// ======================================================

type Deps struct {
	Appointments domain.Repository
	WaitingList  waitinglist.Repository
	Directory    directory.Repository
	Calendar     HoursProvider
	Tx           TxManager

	Cache   AvailabilityCache
	Audit   Auditor
	Metrics Recorder
	Log     *slog.Logger
	Now     func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Cache == nil {
		d.Cache = noopCache{}
	}
	if d.Audit == nil {
		d.Audit = noopAuditor{}
	}
	if d.Metrics == nil {
		d.Metrics = noopRecorder{}
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

type noopCache struct{}

func (noopCache) Get(context.Context, domain.AvailabilityInput) ([]domain.AvailableSlot, bool, error) {
	return nil, false, nil
}
func (noopCache) Version(context.Context, uint, time.Time) (string, error) { return "", nil }
func (noopCache) Set(context.Context, domain.AvailabilityInput, string, []domain.AvailableSlot) error {
	return nil
}
func (noopCache) DeleteBarberDate(context.Context, uint, time.Time) error { return nil }

type noopAuditor struct{}

func (noopAuditor) Dispatch(audit.Event) {}

type noopRecorder struct{}

func (noopRecorder) AppointmentWritten(string) {}
func (noopRecorder) Reassignment(string)       {}
