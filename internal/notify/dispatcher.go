package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const queueSize = 100

// Dispatcher entrega notificações fora do caminho da requisição.
type Dispatcher struct {
	notifier Notifier
	log      *slog.Logger
	queue    chan Message
	timeout  time.Duration

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(n Notifier, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		notifier: n,
		log:      log,
		queue:    make(chan Message, queueSize),
		timeout:  10 * time.Second,
		done:     make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for m := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := deliver(ctx, d.notifier, m); err != nil {
			d.log.Error("notification failed", "kind", m.Kind, "to", m.To.Email, "err", err)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(m Message) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- m:
	default:
		d.log.Warn("notification queue full, dropping message", "kind", m.Kind)
	}
}

// Close drains pending messages and stops the worker.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
