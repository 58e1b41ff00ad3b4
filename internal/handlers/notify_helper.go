package handlers

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
)

// Notifications é satisfeito pelo notify.Dispatcher.
type Notifications interface {
	Dispatch(m notify.Message)
}

type noopNotifications struct{}

func (noopNotifications) Dispatch(notify.Message) {}

// customerNotifier resolve o destinatário e enfileira a mensagem.
// Falhas só geram log: a operação já foi concluída.
type customerNotifier struct {
	users directory.Repository
	out   Notifications
	log   *slog.Logger
}

func newCustomerNotifier(users directory.Repository, out Notifications, log *slog.Logger) customerNotifier {
	if out == nil {
		out = noopNotifications{}
	}
	if log == nil {
		log = slog.Default()
	}
	return customerNotifier{users: users, out: out, log: log}
}

func (n customerNotifier) send(ctx context.Context, customerID uint, m notify.Message) {
	u, err := n.users.GetCustomer(ctx, customerID)
	if err != nil {
		n.log.Warn("notification recipient lookup failed",
			"customer_id", customerID,
			"kind", m.Kind,
			"err", err,
		)
		return
	}

	m.To = notify.Recipient{Email: u.Email, Name: u.Name}
	n.out.Dispatch(m)
}
