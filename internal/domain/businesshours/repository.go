package businesshours

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	ListAll(ctx context.Context) ([]models.BusinessHours, error)

	ListByWeekday(
		ctx context.Context,
		weekday int,
	) ([]models.BusinessHours, error)

	// Save creates the record when ID is zero.
	Save(
		ctx context.Context,
		rec *models.BusinessHours,
	) error

	// InsertMissing creates the records whose weekday has none yet.
	InsertMissing(
		ctx context.Context,
		recs []models.BusinessHours,
	) error

	DeleteByIDs(
		ctx context.Context,
		ids []uint,
	) error
}
