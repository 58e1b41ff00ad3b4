package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	bh "github.com/BruksfildServices01/barber-booking/internal/domain/businesshours"
	"github.com/BruksfildServices01/barber-booking/internal/domain/waitinglist"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestCancel_NoQueue(t *testing.T) {
	f := newFixture(t)
	ap := f.book(f.customer("ana"), f.haircut, monday, "10:00")

	res, err := NewCancelAppointment(f.deps).Execute(f.ctx, ap.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), res.Appointment.Status)
	require.NotNil(t, res.Appointment.CancelledAt)
	assert.Equal(t, ReassignmentNone, res.Reassignment.Outcome)
	assert.NoError(t, res.Reassignment.Err)

	slots := f.availability(f.haircut, monday)
	assert.True(t, slots[2].Available, "10:00 is free again")
	assert.Equal(t, 1, f.metrics.outcomes["none"])
}

func TestCancel_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := NewCancelAppointment(f.deps).Execute(f.ctx, 404, nil)

	var nf httperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "appointment", nf.Entity)
}

func TestCancel_Idempotent(t *testing.T) {
	f := newFixture(t)
	ap := f.book(f.customer("ana"), f.haircut, monday, "10:00")
	uc := NewCancelAppointment(f.deps)

	first, err := uc.Execute(f.ctx, ap.ID, nil)
	require.NoError(t, err)

	waiting := f.enqueue(f.customer("bruno"), f.haircut, monday, fixedNow)

	second, err := uc.Execute(f.ctx, ap.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), second.Appointment.Status)
	assert.Equal(t, *first.Appointment.CancelledAt, *second.Appointment.CancelledAt)
	assert.Equal(t, ReassignmentSkipped, second.Reassignment.Outcome)

	assert.Equal(t, string(waitinglist.StatusWaiting), f.entry(waiting.ID).Status)

	all, err := f.store.Appointments().ListAll(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCancel_ReassignsToEarliestWaiting(t *testing.T) {
	f := newFixture(t)
	ana := f.customer("ana")
	bruno := f.customer("bruno")
	carla := f.customer("carla")
	davi := f.customer("davi")

	ap := f.book(ana, f.haircut, monday, "14:00")

	// carla entra primeiro no banco, mas com enqueued_at posterior
	later := f.enqueue(carla, f.haircut, monday, fixedNow.Add(-1*time.Hour))
	earliest := f.enqueue(bruno, f.haircut, monday, fixedNow.Add(-2*time.Hour))
	otherService := f.enqueue(davi, f.beard, monday, fixedNow.Add(-3*time.Hour))

	res, err := NewCancelAppointment(f.deps).Execute(f.ctx, ap.ID, &ana.ID)
	require.NoError(t, err)

	require.Equal(t, ReassignmentAssigned, res.Reassignment.Outcome)
	promoted := res.Reassignment.Appointment
	require.NotNil(t, promoted)
	assert.Equal(t, bruno.ID, promoted.CustomerID)
	assert.Equal(t, "14:00", promoted.StartTime)
	assert.Equal(t, monday, promoted.Date)
	assert.Equal(t, string(domain.StatusConfirmed), promoted.Status)

	confirmed := f.entry(earliest.ID)
	assert.Equal(t, string(waitinglist.StatusConfirmed), confirmed.Status)
	require.NotNil(t, confirmed.AppointmentID)
	assert.Equal(t, promoted.ID, *confirmed.AppointmentID)
	assert.NotNil(t, confirmed.ResolvedAt)

	assert.Equal(t, string(waitinglist.StatusWaiting), f.entry(later.ID).Status)
	assert.Equal(t, string(waitinglist.StatusWaiting), f.entry(otherService.ID).Status)

	assert.Equal(t, []string{
		audit.ActionAppointmentCreated,
		audit.ActionAppointmentCancelled,
		audit.ActionAppointmentReassigned,
	}, f.audit.actions())
	assert.Equal(t, 1, f.metrics.outcomes["assigned"])

	slots := f.availability(f.haircut, monday)
	for _, s := range slots {
		if s.Start.String() == "14:00" {
			assert.False(t, s.Available)
		}
	}
}

func TestCancel_TieBreaksByID(t *testing.T) {
	f := newFixture(t)
	ap := f.book(f.customer("ana"), f.haircut, monday, "14:00")

	first := f.enqueue(f.customer("bruno"), f.haircut, monday, fixedNow)
	f.enqueue(f.customer("carla"), f.haircut, monday, fixedNow)

	res, err := NewCancelAppointment(f.deps).Execute(f.ctx, ap.ID, nil)
	require.NoError(t, err)
	require.Equal(t, ReassignmentAssigned, res.Reassignment.Outcome)
	assert.Equal(t, first.ID, res.Reassignment.Entry.ID)
}

func TestCancel_ExpiresWhenSlotNoLongerViable(t *testing.T) {
	f := newFixture(t)
	ap := f.book(f.customer("ana"), f.haircut, monday, "14:00")
	waiting := f.enqueue(f.customer("bruno"), f.haircut, monday, fixedNow)

	_, err := f.calendar.SetHours(f.ctx, nil, []bh.DaySetting{
		{Weekday: 1, Open: true, Opening: "09:00", Closing: "12:00"},
	})
	require.NoError(t, err)

	res, err := NewCancelAppointment(f.deps).Execute(f.ctx, ap.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, ReassignmentExpired, res.Reassignment.Outcome)
	assert.NoError(t, res.Reassignment.Err)

	expired := f.entry(waiting.ID)
	assert.Equal(t, string(waitinglist.StatusExpired), expired.Status)
	assert.Nil(t, expired.AppointmentID)
	assert.NotNil(t, expired.ResolvedAt)

	booked, err := f.store.Appointments().ListByDateAndStatus(f.ctx, monday, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Empty(t, booked)

	assert.Contains(t, f.audit.actions(), audit.ActionWaitingListExpired)
	assert.Equal(t, 1, f.metrics.outcomes["expired"])
}

func TestCancel_ResolvedEntryLeavesQueue(t *testing.T) {
	f := newFixture(t)
	ana := f.customer("ana")
	first := f.book(ana, f.haircut, monday, "14:00")
	promoted := f.enqueue(f.customer("bruno"), f.haircut, monday, fixedNow.Add(-time.Hour))

	second := f.book(ana, f.haircut, monday, "15:00")
	_, err := NewCancelAppointment(f.deps).Execute(f.ctx, first.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(waitinglist.StatusConfirmed), f.entry(promoted.ID).Status)

	next := f.enqueue(f.customer("carla"), f.haircut, monday, fixedNow)
	res, err := NewCancelAppointment(f.deps).Execute(f.ctx, second.ID, nil)
	require.NoError(t, err)

	require.Equal(t, ReassignmentAssigned, res.Reassignment.Outcome)
	assert.Equal(t, next.ID, res.Reassignment.Entry.ID, "confirmed entries are not selected again")
}

type failingWaitingList struct {
	*memory.WaitingListRepository
	err error
}

func (r failingWaitingList) Update(context.Context, *models.WaitingListEntry) error {
	return r.err
}

func TestCancel_ReassignmentFailureKeepsCancellation(t *testing.T) {
	f := newFixture(t)
	ap := f.book(f.customer("ana"), f.haircut, monday, "14:00")
	waiting := f.enqueue(f.customer("bruno"), f.haircut, monday, fixedNow)

	cause := errors.New("disk full")
	f.deps.WaitingList = failingWaitingList{WaitingListRepository: f.store.WaitingList(), err: cause}

	res, err := NewCancelAppointment(f.deps).Execute(f.ctx, ap.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), res.Appointment.Status)

	require.Equal(t, ReassignmentFailed, res.Reassignment.Outcome)
	var re httperr.ReassignmentError
	require.ErrorAs(t, res.Reassignment.Err, &re)
	assert.Equal(t, waiting.ID, re.WaitingListEntryID)
	assert.ErrorIs(t, res.Reassignment.Err, cause)

	assert.Equal(t, string(waitinglist.StatusWaiting), f.entry(waiting.ID).Status)

	stored, err := f.store.Appointments().GetByID(f.ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)

	booked, err := f.store.Appointments().ListByDateAndStatus(f.ctx, monday, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Empty(t, booked, "promotion rolled back")
	assert.Equal(t, 1, f.metrics.outcomes["failed"])
}

// racingWaitingList simula uma reserva concorrente que ocupa a vaga entre a
// leitura da fila e a promoção.
type racingWaitingList struct {
	*memory.WaitingListRepository
	book func(ctx context.Context)
}

func (r racingWaitingList) ListWaiting(
	ctx context.Context,
	barberID uint,
	serviceID uint,
	date time.Time,
) ([]models.WaitingListEntry, error) {
	r.book(ctx)
	return r.WaitingListRepository.ListWaiting(ctx, barberID, serviceID, date)
}

func TestCancel_ExpiresWhenSlotTakenBeforePromotion(t *testing.T) {
	f := newFixture(t)
	ana := f.customer("ana")
	bruno := f.customer("bruno")
	carla := f.customer("carla")

	ap := f.book(ana, f.haircut, monday, "14:00")
	waiting := f.enqueue(bruno, f.haircut, monday, fixedNow)

	raced := false
	f.deps.WaitingList = racingWaitingList{
		WaitingListRepository: f.store.WaitingList(),
		book: func(ctx context.Context) {
			if raced {
				return
			}
			raced = true
			taken := domain.NewConfirmed(carla.ID, f.barber.ID, f.haircut.ID, monday, at("14:00"))
			require.NoError(t, f.store.Appointments().Create(ctx, taken))
		},
	}

	res, err := NewCancelAppointment(f.deps).Execute(f.ctx, ap.ID, nil)
	require.NoError(t, err)
	require.True(t, raced)

	assert.Equal(t, string(domain.StatusCancelled), res.Appointment.Status)
	assert.Equal(t, ReassignmentExpired, res.Reassignment.Outcome)
	assert.NoError(t, res.Reassignment.Err)
	require.NotNil(t, res.Reassignment.Entry)
	assert.Equal(t, waiting.ID, res.Reassignment.Entry.ID)

	expired := f.entry(waiting.ID)
	assert.Equal(t, string(waitinglist.StatusExpired), expired.Status)
	assert.Nil(t, expired.AppointmentID)

	mine, err := f.store.Appointments().ListByCustomer(f.ctx, bruno.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	assert.Equal(t, 1, f.metrics.outcomes["expired"])
}

func TestCancel_ExpiresWhenServiceNoLongerOffered(t *testing.T) {
	f := newFixture(t)
	ap := f.book(f.customer("ana"), f.haircut, monday, "14:00")
	waiting := f.enqueue(f.customer("bruno"), f.haircut, monday, fixedNow)

	require.NoError(t, f.store.WithinTx(f.ctx, func(ctx context.Context) error {
		return f.store.Directory().ReplaceBarberServices(ctx, f.barber.ID, []uint{f.beard.ID})
	}))

	res, err := NewCancelAppointment(f.deps).Execute(f.ctx, ap.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, ReassignmentExpired, res.Reassignment.Outcome)
	assert.Equal(t, string(waitinglist.StatusExpired), f.entry(waiting.ID).Status)
}
