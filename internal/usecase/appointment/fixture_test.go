package appointment

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/waitinglist"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	bhusecase "github.com/BruksfildServices01/barber-booking/internal/usecase/businesshours"
)

var (
	fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	monday   = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
)

func at(s string) timezone.Clock { return timezone.MustParseClock(s) }

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingAuditor) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingAuditor) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type recordingMetrics struct {
	mu       sync.Mutex
	writes   map[string]int
	outcomes map[string]int
}

func (m *recordingMetrics) AppointmentWritten(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes[op]++
}

func (m *recordingMetrics) Reassignment(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[outcome]++
}

type noopFlusher struct{}

func (noopFlusher) DeleteAll(context.Context) error { return nil }

type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *memory.Store
	deps  Deps

	calendar *bhusecase.Calendar
	audit    *recordingAuditor
	metrics  *recordingMetrics

	barber  models.Barber
	haircut models.Service
	beard   models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore().WithClock(func() time.Time { return fixedNow })
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		t:       t,
		ctx:     context.Background(),
		store:   store,
		audit:   &recordingAuditor{},
		metrics: &recordingMetrics{writes: map[string]int{}, outcomes: map[string]int{}},
	}
	f.calendar = bhusecase.NewCalendar(store.BusinessHours(), store, f.audit, noopFlusher{}, log)

	f.deps = Deps{
		Appointments: store.Appointments(),
		WaitingList:  store.WaitingList(),
		Directory:    store.Directory(),
		Calendar:     f.calendar,
		Tx:           store,
		Audit:        f.audit,
		Metrics:      f.metrics,
		Log:          log,
		Now:          func() time.Time { return fixedNow },
	}

	dir := store.Directory()
	f.barber = models.Barber{Name: "Rafa", Active: true}
	require.NoError(t, dir.CreateBarber(f.ctx, &f.barber))
	f.haircut = models.Service{Name: "Corte", DurationMin: 30, Active: true}
	require.NoError(t, dir.CreateService(f.ctx, &f.haircut))
	f.beard = models.Service{Name: "Barba e corte", DurationMin: 60, Active: true}
	require.NoError(t, dir.CreateService(f.ctx, &f.beard))

	return f
}

func (f *fixture) customer(name string) models.User {
	f.t.Helper()
	u := models.User{Name: name, Email: name + "@example.com", Role: models.RoleCustomer}
	require.NoError(f.t, f.store.Directory().CreateUser(f.ctx, &u))
	return u
}

func (f *fixture) book(customer models.User, svc models.Service, date time.Time, start string) *models.Appointment {
	f.t.Helper()
	ap, err := NewCreateAppointment(f.deps).Execute(f.ctx, CreateAppointmentInput{
		CustomerID: customer.ID,
		BarberID:   f.barber.ID,
		ServiceID:  svc.ID,
		Date:       date,
		StartTime:  at(start),
	})
	require.NoError(f.t, err)
	return ap
}

func (f *fixture) enqueue(customer models.User, svc models.Service, date, enqueuedAt time.Time) models.WaitingListEntry {
	f.t.Helper()
	e := waitinglist.NewEntry(customer.ID, f.barber.ID, svc.ID, date, enqueuedAt)
	require.NoError(f.t, f.store.WaitingList().Create(f.ctx, e))
	return *e
}

func (f *fixture) entry(id uint) *models.WaitingListEntry {
	f.t.Helper()
	e, err := f.store.WaitingList().GetByID(f.ctx, id)
	require.NoError(f.t, err)
	return e
}

func (f *fixture) availability(svc models.Service, date time.Time) []domain.AvailableSlot {
	f.t.Helper()
	slots, err := NewGetAvailability(f.deps).Execute(f.ctx, domain.AvailabilityInput{
		BarberID:  f.barber.ID,
		ServiceID: svc.ID,
		Date:      date,
	})
	require.NoError(f.t, err)
	return slots
}
