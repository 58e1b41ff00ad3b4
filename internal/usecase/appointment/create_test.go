package appointment

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func TestCreateAppointment_Confirmed(t *testing.T) {
	f := newFixture(t)
	ana := f.customer("ana")

	ap := f.book(ana, f.haircut, monday, "10:00")

	assert.NotZero(t, ap.ID)
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
	assert.Equal(t, "10:00", ap.StartTime)
	assert.Equal(t, monday, ap.Date)

	assert.Equal(t, []string{audit.ActionAppointmentCreated}, f.audit.actions())
	assert.Equal(t, 1, f.metrics.writes["create"])
}

func TestCreateAppointment_BackToBack(t *testing.T) {
	f := newFixture(t)
	ana := f.customer("ana")

	f.book(ana, f.haircut, monday, "10:00")
	f.book(ana, f.haircut, monday, "10:30")
	f.book(ana, f.haircut, monday, "09:30")
}

func TestCreateAppointment_Conflicts(t *testing.T) {
	f := newFixture(t)
	ana := f.customer("ana")
	f.book(ana, f.beard, monday, "10:00")

	cases := []struct {
		name  string
		start string
	}{
		{"same start", "10:00"},
		{"inside", "10:30"},
		{"overlapping start", "09:45"},
		{"before opening", "08:30"},
		{"past closing", "18:45"},
	}

	uc := NewCreateAppointment(f.deps)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(f.ctx, CreateAppointmentInput{
				CustomerID: ana.ID,
				BarberID:   f.barber.ID,
				ServiceID:  f.haircut.ID,
				Date:       monday,
				StartTime:  at(tc.start),
			})
			var su httperr.SlotUnavailableError
			require.ErrorAs(t, err, &su)
			assert.Equal(t, "2026-10-19", su.Date)
			assert.Equal(t, tc.start, su.Time)
		})
	}
}

func TestCreateAppointment_ClosedDay(t *testing.T) {
	f := newFixture(t)

	_, err := NewCreateAppointment(f.deps).Execute(f.ctx, CreateAppointmentInput{
		CustomerID: f.customer("ana").ID,
		BarberID:   f.barber.ID,
		ServiceID:  f.haircut.ID,
		Date:       sunday,
		StartTime:  at("10:00"),
	})
	assert.True(t, httperr.IsSlotUnavailable(err))
}

func TestCreateAppointment_NotFound(t *testing.T) {
	f := newFixture(t)
	ana := f.customer("ana")

	cases := []struct {
		entity string
		in     CreateAppointmentInput
	}{
		{"customer", CreateAppointmentInput{CustomerID: 999, BarberID: f.barber.ID, ServiceID: f.haircut.ID}},
		{"barber", CreateAppointmentInput{CustomerID: ana.ID, BarberID: 999, ServiceID: f.haircut.ID}},
		{"service", CreateAppointmentInput{CustomerID: ana.ID, BarberID: f.barber.ID, ServiceID: 999}},
	}

	uc := NewCreateAppointment(f.deps)
	for _, tc := range cases {
		t.Run(tc.entity, func(t *testing.T) {
			tc.in.Date, tc.in.StartTime = monday, at("10:00")
			_, err := uc.Execute(f.ctx, tc.in)

			var nf httperr.NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, tc.entity, nf.Entity)
		})
	}

	all, err := f.store.Appointments().ListAll(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateAppointment_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateAppointment(f.deps)

	const workers = 12
	customers := make([]uint, workers)
	for i := range customers {
		customers[i] = f.customer(string(rune('a'+i)) + "cliente").ID
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(customerID uint) {
			defer wg.Done()
			_, err := uc.Execute(f.ctx, CreateAppointmentInput{
				CustomerID: customerID,
				BarberID:   f.barber.ID,
				ServiceID:  f.haircut.ID,
				Date:       monday,
				StartTime:  at("15:00"),
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case httperr.IsSlotUnavailable(err):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(customers[i])
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	booked, err := f.store.Appointments().ListBookedIntervals(f.ctx, f.barber.ID, monday)
	require.NoError(t, err)
	assert.Len(t, booked, 1)
}

func TestCreateAppointment_ServiceNotOffered(t *testing.T) {
	f := newFixture(t)
	ana := f.customer("ana")
	require.NoError(t, f.store.WithinTx(f.ctx, func(ctx context.Context) error {
		return f.store.Directory().ReplaceBarberServices(ctx, f.barber.ID, []uint{f.haircut.ID})
	}))

	_, err := NewCreateAppointment(f.deps).Execute(f.ctx, CreateAppointmentInput{
		CustomerID: ana.ID,
		BarberID:   f.barber.ID,
		ServiceID:  f.beard.ID,
		Date:       monday,
		StartTime:  at("10:00"),
	})
	assert.True(t, httperr.IsBusiness(err, directory.CodeServiceNotOffered))

	ap := f.book(ana, f.haircut, monday, "10:00")
	assert.Equal(t, f.haircut.ID, ap.ServiceID)
}
