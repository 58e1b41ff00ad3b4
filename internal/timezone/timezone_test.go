package timezone

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_ParseAndFormat(t *testing.T) {
	c, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, Clock(570), c)
	assert.Equal(t, "09:30", c.String())
	assert.Equal(t, "10:00", c.AddMinutes(30).String())

	_, err = ParseClock("9h30")
	assert.Error(t, err)
}

func TestClock_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Start Clock `json:"start"`
	}{Start: MustParseClock("18:30")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"18:30"}`, string(b))

	var out struct {
		Start Clock `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"07:05"}`), &out))
	assert.Equal(t, MustParseClock("07:05"), out.Start)
}

func TestDateOnly(t *testing.T) {
	loc := Location("America/Sao_Paulo")
	late := time.Date(2026, 10, 19, 23, 30, 0, 0, loc)

	d := DateOnly(late)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.Equal(t, "2026-10-19", FormatDate(d))

	parsed, err := ParseDate("2026-10-19")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(d))
}

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestTodayAndStartsAt(t *testing.T) {
	loc := Location("America/Sao_Paulo")

	// 01:30 UTC do dia 20 ainda é dia 19 em São Paulo
	now := time.Date(2026, 10, 20, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-19", FormatDate(Today(now, loc)))

	start := StartsAt(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), MustParseClock("23:00"), loc)
	assert.True(t, start.After(now))
	assert.Equal(t, 23, start.Hour())
}
