package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type AppointmentRepository struct {
	s *Store
}

func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{s: s}
}

func (r *AppointmentRepository) Create(ctx context.Context, ap *models.Appointment) error {
	defer r.s.lockWrite(ctx)()

	ap.ID = r.s.id()
	ap.Date = timezone.DateOnly(ap.Date)
	r.s.stamp(&ap.CreatedAt, &ap.UpdatedAt)
	r.s.data.appointments[ap.ID] = *ap
	return nil
}

func (r *AppointmentRepository) Update(ctx context.Context, ap *models.Appointment) error {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.data.appointments[ap.ID]; !ok {
		return httperr.NotFoundOf("appointment", ap.ID)
	}
	ap.Date = timezone.DateOnly(ap.Date)
	r.s.stamp(&ap.CreatedAt, &ap.UpdatedAt)
	r.s.data.appointments[ap.ID] = *ap
	return nil
}

// LockBarber only checks existence: the unit of work already holds the store lock.
func (r *AppointmentRepository) LockBarber(_ context.Context, barberID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.barbers[barberID]; !ok {
		return httperr.NotFoundOf("barber", barberID)
	}
	return nil
}

func (r *AppointmentRepository) GetByID(_ context.Context, id uint) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ap, ok := r.s.data.appointments[id]
	if !ok {
		return nil, httperr.NotFoundOf("appointment", id)
	}
	return &ap, nil
}

func (r *AppointmentRepository) ListByCustomer(_ context.Context, customerID uint) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool { return ap.CustomerID == customerID }), nil
}

func (r *AppointmentRepository) ListByBarber(_ context.Context, barberID uint) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool { return ap.BarberID == barberID }), nil
}

func (r *AppointmentRepository) ListByDateAndStatus(
	_ context.Context,
	date time.Time,
	status domain.Status,
) ([]models.Appointment, error) {
	day := timezone.DateOnly(date)
	return r.filter(func(ap models.Appointment) bool {
		return ap.Date.Equal(day) && ap.Status == string(status)
	}), nil
}

func (r *AppointmentRepository) ListAll(_ context.Context) ([]models.Appointment, error) {
	return r.filter(func(models.Appointment) bool { return true }), nil
}

func (r *AppointmentRepository) ListBookedIntervals(
	_ context.Context,
	barberID uint,
	date time.Time,
) ([]domain.BookedInterval, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	day := timezone.DateOnly(date)

	var out []domain.BookedInterval
	for _, ap := range r.s.data.appointments {
		if ap.BarberID != barberID || !ap.Date.Equal(day) || ap.Status != string(domain.StatusConfirmed) {
			continue
		}
		svc, ok := r.s.data.services[ap.ServiceID]
		if !ok {
			// sem a duração não dá para saber o que o horário ocupa
			return nil, fmt.Errorf("appointment %d: service %d not found", ap.ID, ap.ServiceID)
		}
		start, err := timezone.ParseClock(ap.StartTime)
		if err != nil {
			return nil, fmt.Errorf("appointment %d: %w", ap.ID, err)
		}
		out = append(out, domain.BookedInterval{
			AppointmentID: ap.ID,
			Start:         start,
			DurationMin:   svc.DurationMin,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func (r *AppointmentRepository) filter(keep func(models.Appointment) bool) []models.Appointment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.s.data.appointments {
		if keep(ap) {
			out = append(out, ap)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})
	return out
}

var _ domain.Repository = (*AppointmentRepository)(nil)
