package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ======================================================
// Datas civis (sem horário)
// ======================================================

const DateLayout = "2006-01-02"

// DateOnly normaliza para meia-noite UTC do mesmo dia civil, que é a forma
// usada em todas as comparações e colunas "date".
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today devolve a data civil de now no fuso da barbearia.
func Today(now time.Time, loc *time.Location) time.Time {
	return DateOnly(now.In(loc))
}

// StartsAt posiciona o horário civil date+clock no fuso da barbearia.
func StartsAt(date time.Time, clock Clock, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, int(clock)/60, int(clock)%60, 0, 0, loc)
}
