package notify

import (
	"context"
	"log/slog"
)

// LogNotifier só registra as mensagens. Padrão em desenvolvimento.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) AppointmentConfirmed(ctx context.Context, to Recipient, date, start string) error {
	n.log.InfoContext(ctx, "notify appointment confirmed", "to", to.Email, "date", date, "start", start)
	return nil
}

func (n *LogNotifier) SlotAssigned(ctx context.Context, to Recipient, date, start string) error {
	n.log.InfoContext(ctx, "notify slot assigned", "to", to.Email, "date", date, "start", start)
	return nil
}

func (n *LogNotifier) AppointmentCancelled(ctx context.Context, to Recipient, date, start string) error {
	n.log.InfoContext(ctx, "notify appointment cancelled", "to", to.Email, "date", date, "start", start)
	return nil
}

func (n *LogNotifier) WaitingListPosition(ctx context.Context, to Recipient, position int) error {
	n.log.InfoContext(ctx, "notify waiting list position", "to", to.Email, "position", position)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
