package notify

import (
	"context"
	"fmt"
)

type Recipient struct {
	Email string
	Name  string
}

// Notifier delivers customer-facing messages. Implementations are chosen at
// startup and always invoked through the Dispatcher.
type Notifier interface {
	AppointmentConfirmed(ctx context.Context, to Recipient, date, start string) error
	SlotAssigned(ctx context.Context, to Recipient, date, start string) error
	AppointmentCancelled(ctx context.Context, to Recipient, date, start string) error
	WaitingListPosition(ctx context.Context, to Recipient, position int) error
}

type Kind string

const (
	KindAppointmentConfirmed Kind = "appointment_confirmed"
	KindSlotAssigned         Kind = "slot_assigned"
	KindAppointmentCancelled Kind = "appointment_cancelled"
	KindWaitingListPosition  Kind = "waiting_list_position"
)

type Message struct {
	Kind     Kind
	To       Recipient
	Date     string
	Time     string
	Position int
}

func deliver(ctx context.Context, n Notifier, m Message) error {
	switch m.Kind {
	case KindAppointmentConfirmed:
		return n.AppointmentConfirmed(ctx, m.To, m.Date, m.Time)
	case KindSlotAssigned:
		return n.SlotAssigned(ctx, m.To, m.Date, m.Time)
	case KindAppointmentCancelled:
		return n.AppointmentCancelled(ctx, m.To, m.Date, m.Time)
	case KindWaitingListPosition:
		return n.WaitingListPosition(ctx, m.To, m.Position)
	default:
		return fmt.Errorf("unknown notification kind %q", m.Kind)
	}
}
