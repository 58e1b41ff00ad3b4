package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ListAppointments struct {
	d Deps
}

func NewListAppointments(d Deps) *ListAppointments {
	return &ListAppointments{d: d.withDefaults()}
}

func (uc *ListAppointments) Get(ctx context.Context, id uint) (*dto.AppointmentDTO, error) {
	ap, err := uc.d.Appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out, err := uc.toDTO(ctx, []models.Appointment{*ap})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (uc *ListAppointments) ByCustomer(ctx context.Context, customerID uint) ([]dto.AppointmentDTO, error) {
	apps, err := uc.d.Appointments.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return uc.toDTO(ctx, apps)
}

func (uc *ListAppointments) ByBarber(ctx context.Context, barberID uint) ([]dto.AppointmentDTO, error) {
	apps, err := uc.d.Appointments.ListByBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}
	return uc.toDTO(ctx, apps)
}

// ConfirmedOn lista os agendamentos confirmados do dia, de todos os barbeiros.
func (uc *ListAppointments) ConfirmedOn(ctx context.Context, date time.Time) ([]dto.AppointmentDTO, error) {
	apps, err := uc.d.Appointments.ListByDateAndStatus(ctx, date, domain.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	return uc.toDTO(ctx, apps)
}

func (uc *ListAppointments) All(ctx context.Context) ([]dto.AppointmentDTO, error) {
	apps, err := uc.d.Appointments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return uc.toDTO(ctx, apps)
}

// toDTO resolve nomes com memo por chamada; entidade removida fica sem nome.
func (uc *ListAppointments) toDTO(ctx context.Context, apps []models.Appointment) ([]dto.AppointmentDTO, error) {
	customers := map[uint]string{}
	barbers := map[uint]string{}
	services := map[uint]*models.Service{}

	out := make([]dto.AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		if _, ok := customers[ap.CustomerID]; !ok {
			u, err := uc.d.Directory.GetCustomer(ctx, ap.CustomerID)
			if err != nil && !httperr.IsNotFound(err) {
				return nil, err
			}
			if u != nil {
				customers[ap.CustomerID] = u.Name
			} else {
				customers[ap.CustomerID] = ""
			}
		}

		if _, ok := barbers[ap.BarberID]; !ok {
			b, err := uc.d.Directory.GetBarber(ctx, ap.BarberID)
			if err != nil && !httperr.IsNotFound(err) {
				return nil, err
			}
			if b != nil {
				barbers[ap.BarberID] = b.Name
			} else {
				barbers[ap.BarberID] = ""
			}
		}

		if _, ok := services[ap.ServiceID]; !ok {
			svc, err := uc.d.Directory.GetService(ctx, ap.ServiceID)
			if err != nil && !httperr.IsNotFound(err) {
				return nil, err
			}
			services[ap.ServiceID] = svc
		}

		item := dto.AppointmentDTO{
			ID:           ap.ID,
			Date:         timezone.FormatDate(ap.Date),
			StartTime:    ap.StartTime,
			Status:       ap.Status,
			CustomerID:   ap.CustomerID,
			CustomerName: customers[ap.CustomerID],
			BarberID:     ap.BarberID,
			BarberName:   barbers[ap.BarberID],
			ServiceID:    ap.ServiceID,
			CancelledAt:  ap.CancelledAt,
		}

		if svc := services[ap.ServiceID]; svc != nil {
			item.ServiceName = svc.Name
			item.DurationMin = svc.DurationMin
			if start, err := timezone.ParseClock(ap.StartTime); err == nil {
				item.EndTime = start.AddMinutes(svc.DurationMin).String()
			}
		}

		out = append(out, item)
	}

	return out, nil
}
