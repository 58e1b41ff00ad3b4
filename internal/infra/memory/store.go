// Package memory keeps every repository in process memory. It backs the
// test suites and STORE_DRIVER=memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type txKey struct{}

type Store struct {
	// txMu serializes units of work; mu guards the maps.
	txMu sync.Mutex
	mu   sync.Mutex

	now func() time.Time

	data   tables
	audits []models.AuditLog
	nextID uint
}

type tables struct {
	appointments map[uint]models.Appointment
	waiting      map[uint]models.WaitingListEntry
	hours        map[uint]models.BusinessHours
	users        map[uint]models.User
	barbers      map[uint]models.Barber
	services     map[uint]models.Service
	// barbeiro -> serviços vinculados
	offers map[uint]map[uint]time.Time
}

func newTables() tables {
	return tables{
		appointments: map[uint]models.Appointment{},
		waiting:      map[uint]models.WaitingListEntry{},
		hours:        map[uint]models.BusinessHours{},
		users:        map[uint]models.User{},
		barbers:      map[uint]models.Barber{},
		services:     map[uint]models.Service{},
		offers:       map[uint]map[uint]time.Time{},
	}
}

func (t tables) clone() tables {
	out := newTables()
	for k, v := range t.appointments {
		out.appointments[k] = v
	}
	for k, v := range t.waiting {
		out.waiting[k] = v
	}
	for k, v := range t.hours {
		out.hours[k] = v
	}
	for k, v := range t.users {
		out.users[k] = v
	}
	for k, v := range t.barbers {
		out.barbers[k] = v
	}
	for k, v := range t.services {
		out.services[k] = v
	}
	for barberID, set := range t.offers {
		cp := make(map[uint]time.Time, len(set))
		for serviceID, at := range set {
			cp[serviceID] = at
		}
		out.offers[barberID] = cp
	}
	return out
}

func NewStore() *Store {
	return &Store{
		now:  time.Now,
		data: newTables(),
	}
}

// WithClock fixes the timestamps written by the store.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// WithinTx holds the store-wide lock for the unit of work and restores the
// previous state when fn fails. Nested calls join the outer unit.
func (s *Store) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context) error,
) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	nextID := s.nextID
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.nextID = nextID
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) stamp(created *time.Time, updated *time.Time) {
	now := s.now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

// lockWrite guards a mutation. Outside a unit of work it also takes txMu so
// a concurrent rollback cannot discard the write.
func (s *Store) lockWrite(ctx context.Context) func() {
	if ctx.Value(txKey{}) == nil {
		s.txMu.Lock()
		s.mu.Lock()
		return func() {
			s.mu.Unlock()
			s.txMu.Unlock()
		}
	}

	s.mu.Lock()
	return s.mu.Unlock
}
