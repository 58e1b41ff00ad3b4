package appointment

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	bh "github.com/BruksfildServices01/barber-booking/internal/domain/businesshours"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestGetAvailability_MondayTwentySlots(t *testing.T) {
	f := newFixture(t)

	slots := f.availability(f.haircut, monday)

	require.Len(t, slots, 20)
	assert.Equal(t, "09:00", slots[0].Start.String())
	assert.Equal(t, "19:00", slots[19].End.String())
	for i, s := range slots {
		assert.True(t, s.Available)
		assert.Equal(t, s.Start.AddMinutes(30), s.End)
		if i > 0 {
			assert.Equal(t, slots[i-1].End, s.Start, "slots are contiguous")
		}
	}
}

func TestGetAvailability_SundayEmpty(t *testing.T) {
	f := newFixture(t)
	assert.Empty(t, f.availability(f.haircut, sunday))
}

func TestGetAvailability_MarksOccupied(t *testing.T) {
	f := newFixture(t)
	f.book(f.customer("ana"), f.haircut, monday, "10:00")

	slots := f.availability(f.haircut, monday)
	require.Len(t, slots, 20)

	free := 0
	for _, s := range slots {
		if s.Start.String() == "10:00" {
			assert.False(t, s.Available)
			continue
		}
		assert.True(t, s.Available, s.Start.String())
		free++
	}
	assert.Equal(t, 19, free)
}

func TestGetAvailability_LongerBookingBlocksShorterSlots(t *testing.T) {
	f := newFixture(t)
	f.book(f.customer("ana"), f.beard, monday, "10:00")

	byStart := map[string]bool{}
	for _, s := range f.availability(f.haircut, monday) {
		byStart[s.Start.String()] = s.Available
	}

	assert.True(t, byStart["09:30"])
	assert.False(t, byStart["10:00"])
	assert.False(t, byStart["10:30"])
	assert.True(t, byStart["11:00"])
}

func TestGetAvailability_UnknownService(t *testing.T) {
	f := newFixture(t)

	_, err := NewGetAvailability(f.deps).Execute(f.ctx, domain.AvailabilityInput{
		BarberID: f.barber.ID, ServiceID: 999, Date: monday,
	})
	var nf httperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "service", nf.Entity)
}

func TestGetAvailability_ZeroDurationEmpty(t *testing.T) {
	f := newFixture(t)
	svc := models.Service{Name: "Consulta", DurationMin: 0, Active: true}
	require.NoError(t, f.store.Directory().CreateService(f.ctx, &svc))

	assert.Empty(t, f.availability(svc, monday))
}

func TestGetAvailability_MalformedHoursEmpty(t *testing.T) {
	f := newFixture(t)
	_, err := f.calendar.List(f.ctx)
	require.NoError(t, err)

	// registro legado com abertura depois do fechamento
	recs, err := f.store.BusinessHours().ListByWeekday(f.ctx, int(time.Monday))
	require.NoError(t, err)
	recs[0].StartTime, recs[0].EndTime = "19:00", "09:00"
	require.NoError(t, f.store.BusinessHours().Save(f.ctx, &recs[0]))

	assert.Empty(t, f.availability(f.haircut, monday))
}

func TestGetAvailability_NoPartialTrailingSlot(t *testing.T) {
	f := newFixture(t)
	_, err := f.calendar.SetHours(f.ctx, nil, []bh.DaySetting{
		{Weekday: 1, Open: true, Opening: "09:00", Closing: "10:45"},
	})
	require.NoError(t, err)

	slots := f.availability(f.haircut, monday)
	require.Len(t, slots, 3)
	assert.Equal(t, "10:30", slots[2].End.String())
}

type memoCache struct {
	slots       map[domain.AvailabilityInput][]domain.AvailableSlot
	generation  int
	sets        int
	invalidated []uint
}

func newMemoCache() *memoCache {
	return &memoCache{slots: map[domain.AvailabilityInput][]domain.AvailableSlot{}}
}

func (c *memoCache) Get(_ context.Context, in domain.AvailabilityInput) ([]domain.AvailableSlot, bool, error) {
	s, ok := c.slots[in]
	return s, ok, nil
}

func (c *memoCache) Version(context.Context, uint, time.Time) (string, error) {
	return strconv.Itoa(c.generation), nil
}

func (c *memoCache) Set(_ context.Context, in domain.AvailabilityInput, version string, slots []domain.AvailableSlot) error {
	if version != strconv.Itoa(c.generation) {
		return nil
	}
	c.sets++
	c.slots[in] = slots
	return nil
}

func (c *memoCache) DeleteBarberDate(_ context.Context, barberID uint, _ time.Time) error {
	c.generation++
	c.invalidated = append(c.invalidated, barberID)
	c.slots = map[domain.AvailabilityInput][]domain.AvailableSlot{}
	return nil
}

func TestGetAvailability_CacheInvalidatedOnBooking(t *testing.T) {
	f := newFixture(t)
	cache := newMemoCache()
	f.deps.Cache = cache

	first := f.availability(f.haircut, monday)
	second := f.availability(f.haircut, monday)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets, "second read served from cache")

	f.book(f.customer("ana"), f.haircut, monday, "09:00")
	assert.Equal(t, []uint{f.barber.ID}, cache.invalidated)

	after := f.availability(f.haircut, monday)
	assert.False(t, after[0].Available)
}

// bookingDuringRead agenda um horário logo depois da leitura da ocupação,
// antes de a grade ser gravada no cache.
type bookingDuringRead struct {
	*memory.AppointmentRepository
	book func()
}

func (r bookingDuringRead) ListBookedIntervals(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]domain.BookedInterval, error) {
	booked, err := r.AppointmentRepository.ListBookedIntervals(ctx, barberID, date)
	if r.book != nil {
		r.book()
	}
	return booked, err
}

func TestGetAvailability_StaleGridNotCached(t *testing.T) {
	f := newFixture(t)
	cache := newMemoCache()
	f.deps.Cache = cache
	ana := f.customer("ana")

	booker := NewCreateAppointment(f.deps)
	once := false
	reads := f.deps
	reads.Appointments = bookingDuringRead{
		AppointmentRepository: f.store.Appointments(),
		book: func() {
			if once {
				return
			}
			once = true
			_, err := booker.Execute(f.ctx, CreateAppointmentInput{
				CustomerID: ana.ID,
				BarberID:   f.barber.ID,
				ServiceID:  f.haircut.ID,
				Date:       monday,
				StartTime:  at("09:00"),
			})
			require.NoError(t, err)
		},
	}

	in := domain.AvailabilityInput{BarberID: f.barber.ID, ServiceID: f.haircut.ID, Date: monday}
	stale, err := NewGetAvailability(reads).Execute(f.ctx, in)
	require.NoError(t, err)
	assert.True(t, stale[0].Available, "computed before the booking")

	assert.Equal(t, 0, cache.sets, "stale grid is not written back")
	_, cached, _ := cache.Get(f.ctx, in)
	assert.False(t, cached)

	fresh := f.availability(f.haircut, monday)
	assert.False(t, fresh[0].Available)
	assert.Equal(t, 1, cache.sets)
}
