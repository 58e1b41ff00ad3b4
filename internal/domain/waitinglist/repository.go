package waitinglist

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.WaitingListEntry) error
	Update(ctx context.Context, e *models.WaitingListEntry) error
	Delete(ctx context.Context, id uint) error

	GetByID(ctx context.Context, id uint) (*models.WaitingListEntry, error)

	// ListWaiting returns the queue for barber/service/date in FIFO order
	// (enqueued_at, then id).
	ListWaiting(
		ctx context.Context,
		barberID uint,
		serviceID uint,
		date time.Time,
	) ([]models.WaitingListEntry, error)

	ListByCustomer(ctx context.Context, customerID uint) ([]models.WaitingListEntry, error)

	// ListActiveByBarber lista entradas em espera de todos os serviços do barbeiro no dia.
	ListActiveByBarber(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) ([]models.WaitingListEntry, error)
}
