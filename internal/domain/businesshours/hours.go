package businesshours

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// DayHours is the resolved calendar for one date.
type DayHours struct {
	Weekday    time.Weekday
	Open       bool
	Opening    timezone.Clock
	Closing    timezone.Clock
	HasOpening bool
	HasClosing bool
}

// Bookable reports whether slots can be generated for the day.
func (d DayHours) Bookable() bool {
	return d.Open && d.HasOpening && d.HasClosing && d.Opening < d.Closing
}

// FromRecord converte o registro persistido. Horários inválidos ficam
// ausentes, o que torna o dia não reservável.
func FromRecord(rec models.BusinessHours) DayHours {
	d := DayHours{
		Weekday: time.Weekday(rec.Weekday),
		Open:    rec.Open,
	}
	if c, err := timezone.ParseClock(rec.StartTime); err == nil {
		d.Opening, d.HasOpening = c, true
	}
	if c, err := timezone.ParseClock(rec.EndTime); err == nil {
		d.Closing, d.HasClosing = c, true
	}
	return d
}

// Closed is used when no record exists for a weekday.
func Closed(weekday time.Weekday) DayHours {
	return DayHours{Weekday: weekday}
}

// ======================================================
// Default calendar
// ======================================================

const (
	DefaultOpening = "09:00"
	DefaultClosing = "19:00"
)

// Defaults: domingo fechado, demais dias 09:00–19:00.
func Defaults() []models.BusinessHours {
	out := make([]models.BusinessHours, 0, 7)
	for wd := 0; wd < 7; wd++ {
		rec := models.BusinessHours{Weekday: wd}
		if time.Weekday(wd) != time.Sunday {
			rec.Open = true
			rec.StartTime = DefaultOpening
			rec.EndTime = DefaultClosing
		}
		out = append(out, rec)
	}
	return out
}

// ======================================================
// Reconciliation
// ======================================================

// Reconcile keeps the lowest id per weekday and returns the ids to delete.
// kept is sorted by weekday.
func Reconcile(records []models.BusinessHours) (kept []models.BusinessHours, duplicates []uint) {
	sorted := append([]models.BusinessHours(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Weekday != sorted[j].Weekday {
			return sorted[i].Weekday < sorted[j].Weekday
		}
		return sorted[i].ID < sorted[j].ID
	})

	seen := make(map[int]bool, 7)
	for _, rec := range sorted {
		if seen[rec.Weekday] {
			duplicates = append(duplicates, rec.ID)
			continue
		}
		seen[rec.Weekday] = true
		kept = append(kept, rec)
	}
	return kept, duplicates
}

// ======================================================
// Updates
// ======================================================

type DaySetting struct {
	Weekday int    `json:"weekday"`
	Open    bool   `json:"open"`
	Opening string `json:"opening"`
	Closing string `json:"closing"`
}

// Normalize valida a configuração de um dia. Dias fechados perdem os horários.
func (s DaySetting) Normalize() (DaySetting, error) {
	if s.Weekday < 0 || s.Weekday > 6 {
		return s, httperr.ValidationError{Field: "weekday", Reason: "must be between 0 and 6"}
	}

	if !s.Open {
		s.Opening, s.Closing = "", ""
		return s, nil
	}

	if s.Opening == "" || s.Closing == "" {
		return s, httperr.ValidationError{Field: "opening", Reason: "opening and closing are required when open"}
	}

	opening, err := timezone.ParseClock(s.Opening)
	if err != nil {
		return s, httperr.ValidationError{Field: "opening", Reason: "must be HH:MM"}
	}
	closing, err := timezone.ParseClock(s.Closing)
	if err != nil {
		return s, httperr.ValidationError{Field: "closing", Reason: "must be HH:MM"}
	}
	if opening >= closing {
		return s, httperr.ValidationError{Field: "closing", Reason: "must be after opening"}
	}

	s.Opening, s.Closing = opening.String(), closing.String()
	return s, nil
}

func (s DaySetting) ApplyTo(rec *models.BusinessHours) {
	rec.Weekday = s.Weekday
	rec.Open = s.Open
	rec.StartTime = s.Opening
	rec.EndTime = s.Closing
}
