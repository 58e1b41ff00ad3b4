package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/businesshours"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      time.Time
}

type AvailableSlot struct {
	Start     timezone.Clock `json:"start"`
	End       timezone.Clock `json:"end"`
	Available bool           `json:"available"`
}

// BookedInterval is a confirmed appointment reduced to what the overlap test needs.
type BookedInterval struct {
	AppointmentID uint
	Start         timezone.Clock
	DurationMin   int
}

func (b BookedInterval) End() timezone.Clock {
	return b.Start.AddMinutes(b.DurationMin)
}

// GenerateSlotStarts parte o expediente em blocos contíguos de durationMin,
// sem bloco parcial no final.
func GenerateSlotStarts(opening, closing timezone.Clock, durationMin int) []timezone.Clock {
	if durationMin <= 0 || opening >= closing {
		return nil
	}

	var starts []timezone.Clock
	for t := opening; t.AddMinutes(durationMin) <= closing; t = t.AddMinutes(durationMin) {
		starts = append(starts, t)
	}
	return starts
}

// Overlaps uses half-open intervals: touching at the boundary is not a conflict.
func Overlaps(start, end, otherStart, otherEnd timezone.Clock) bool {
	return start < otherEnd && end > otherStart
}

// SlotFree aplica a regra de ocupação: dentro do expediente e sem conflito
// com nenhum agendamento confirmado (exceto excludeID, quando informado).
// Dia fechado ou com horário inválido nunca tem vaga.
func SlotFree(
	day businesshours.DayHours,
	start timezone.Clock,
	durationMin int,
	booked []BookedInterval,
	excludeID uint,
) bool {
	end := start.AddMinutes(durationMin)

	if !day.Bookable() {
		return false
	}
	if start < day.Opening || end > day.Closing {
		return false
	}

	for _, b := range booked {
		if excludeID != 0 && b.AppointmentID == excludeID {
			continue
		}
		if Overlaps(start, end, b.Start, b.End()) {
			return false
		}
	}
	return true
}

func SortSlots(slots []AvailableSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start < slots[j].Start
	})
}
