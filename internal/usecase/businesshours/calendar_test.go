package businesshours

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/businesshours"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingAuditor) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

type countingCache struct{ flushes int }

func (c *countingCache) DeleteAll(context.Context) error {
	c.flushes++
	return nil
}

// seedHours grava os registros como vieram, duplicados inclusive, imitando
// dados legados.
func seedHours(t *testing.T, store *memory.Store, recs ...models.BusinessHours) []models.BusinessHours {
	t.Helper()

	out := make([]models.BusinessHours, 0, len(recs))
	for _, rec := range recs {
		require.NoError(t, store.BusinessHours().Save(context.Background(), &rec))
		out = append(out, rec)
	}
	return out
}

func newCalendar(store *memory.Store) (*Calendar, *recordingAuditor, *countingCache) {
	aud := &recordingAuditor{}
	cache := &countingCache{}
	cal := NewCalendar(store.BusinessHours(), store, aud, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return cal, aud, cache
}

var (
	sunday = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
)

func TestHoursFor_SeedsDefaults(t *testing.T) {
	store := memory.NewStore()
	cal, _, _ := newCalendar(store)
	ctx := context.Background()

	sun, err := cal.HoursFor(ctx, sunday)
	require.NoError(t, err)
	assert.False(t, sun.Open)
	assert.False(t, sun.Bookable())

	mon, err := cal.HoursFor(ctx, monday)
	require.NoError(t, err)
	assert.True(t, mon.Bookable())
	assert.Equal(t, timezone.MustParseClock("09:00"), mon.Opening)
	assert.Equal(t, timezone.MustParseClock("19:00"), mon.Closing)

	all, err := store.BusinessHours().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 7, "defaults persisted once")
}

func TestHoursFor_MissingWeekdayIsClosed(t *testing.T) {
	store := memory.NewStore()
	seedHours(t, store, models.BusinessHours{Weekday: 2, Open: true, StartTime: "10:00", EndTime: "12:00"})
	cal, _, _ := newCalendar(store)

	mon, err := cal.HoursFor(context.Background(), monday)
	require.NoError(t, err)
	assert.False(t, mon.Open)
}

func TestHoursFor_ReconcilesDuplicates(t *testing.T) {
	store := memory.NewStore()
	hours := store.BusinessHours()
	seeded := seedHours(t, store,
		models.BusinessHours{Weekday: 1, Open: true, StartTime: "08:00", EndTime: "12:00"},
		models.BusinessHours{Weekday: 1, Open: false},
		models.BusinessHours{Weekday: 1, Open: true, StartTime: "13:00", EndTime: "20:00"},
	)
	first := seeded[0]

	cal, _, _ := newCalendar(store)
	ctx := context.Background()

	mon, err := cal.HoursFor(ctx, monday)
	require.NoError(t, err)
	assert.True(t, mon.Open)
	assert.Equal(t, "08:00", mon.Opening.String())

	left, err := hours.ListByWeekday(ctx, 1)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, first.ID, left[0].ID)
}

func TestList_SortedAndReconciled(t *testing.T) {
	store := memory.NewStore()
	seedHours(t, store,
		models.BusinessHours{Weekday: 5, Open: true, StartTime: "09:00", EndTime: "18:00"},
		models.BusinessHours{Weekday: 0},
		models.BusinessHours{Weekday: 5, Open: false},
	)

	cal, _, _ := newCalendar(store)

	list, err := cal.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 0, list[0].Weekday)
	assert.Equal(t, 5, list[1].Weekday)
	assert.True(t, list[1].Open)
}

func TestSetHours(t *testing.T) {
	store := memory.NewStore()
	cal, aud, cache := newCalendar(store)
	ctx := context.Background()

	_, err := cal.List(ctx)
	require.NoError(t, err)

	admin := uint(1)
	out, err := cal.SetHours(ctx, &admin, []domain.DaySetting{
		{Weekday: 1, Open: true, Opening: "10:00", Closing: "16:00"},
		{Weekday: 6, Open: false, Opening: "09:00", Closing: "13:00"},
	})
	require.NoError(t, err)
	require.Len(t, out, 7)

	for i, rec := range out {
		assert.Equal(t, i, rec.Weekday)
	}
	assert.Equal(t, "10:00", out[1].StartTime)
	assert.Equal(t, "16:00", out[1].EndTime)
	assert.False(t, out[6].Open)
	assert.Empty(t, out[6].StartTime)

	mon, err := cal.HoursFor(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, "16:00", mon.Closing.String())

	assert.Equal(t, 1, cache.flushes)
	require.Len(t, aud.events, 1)
	assert.Equal(t, audit.ActionBusinessHoursUpdated, aud.events[0].Action)
}

func TestSetHours_CreatesMissingWeekday(t *testing.T) {
	store := memory.NewStore()
	cal, _, _ := newCalendar(store)

	out, err := cal.SetHours(context.Background(), nil, []domain.DaySetting{
		{Weekday: 3, Open: true, Opening: "09:00", Closing: "10:00"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].Weekday)
}

func TestSetHours_ValidationLeavesStoreUntouched(t *testing.T) {
	store := memory.NewStore()
	cal, aud, _ := newCalendar(store)
	ctx := context.Background()

	_, err := cal.SetHours(ctx, nil, []domain.DaySetting{
		{Weekday: 1, Open: true, Opening: "10:00", Closing: "16:00"},
		{Weekday: 2, Open: true, Opening: "16:00", Closing: "10:00"},
	})
	var ve httperr.ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = cal.SetHours(ctx, nil, []domain.DaySetting{
		{Weekday: 1, Open: false},
		{Weekday: 1, Open: true, Opening: "10:00", Closing: "11:00"},
	})
	require.ErrorAs(t, err, &ve)

	all, err := store.BusinessHours().ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, aud.events)
}
