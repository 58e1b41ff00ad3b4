package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// -------- Write --------
	Create(
		ctx context.Context,
		ap *models.Appointment,
	) error

	Update(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// LockBarber takes the per-barber write lock for the current unit of work.
	LockBarber(
		ctx context.Context,
		barberID uint,
	) error

	// -------- Read --------
	GetByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListByCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Appointment, error)

	ListByBarber(
		ctx context.Context,
		barberID uint,
	) ([]models.Appointment, error)

	ListByDateAndStatus(
		ctx context.Context,
		date time.Time,
		status Status,
	) ([]models.Appointment, error)

	ListAll(
		ctx context.Context,
	) ([]models.Appointment, error)

	// -------- Occupancy --------
	// ListBookedIntervals devolve os agendamentos confirmados do barbeiro no
	// dia, já com a duração do serviço.
	ListBookedIntervals(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) ([]BookedInterval, error)
}
