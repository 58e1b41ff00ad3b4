package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/domain/businesshours"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BusinessHoursGormRepository struct {
	db *gorm.DB
}

func NewBusinessHoursGormRepository(db *gorm.DB) *BusinessHoursGormRepository {
	return &BusinessHoursGormRepository{db: db}
}

func (r *BusinessHoursGormRepository) ListAll(ctx context.Context) ([]models.BusinessHours, error) {
	var recs []models.BusinessHours
	if err := conn(ctx, r.db).
		Order("weekday ASC, id ASC").
		Find(&recs).Error; err != nil {
		return nil, classify(err)
	}
	return recs, nil
}

func (r *BusinessHoursGormRepository) ListByWeekday(
	ctx context.Context,
	weekday int,
) ([]models.BusinessHours, error) {

	var recs []models.BusinessHours
	if err := conn(ctx, r.db).
		Where("weekday = ?", weekday).
		Order("id ASC").
		Find(&recs).Error; err != nil {
		return nil, classify(err)
	}
	return recs, nil
}

func (r *BusinessHoursGormRepository) Save(
	ctx context.Context,
	rec *models.BusinessHours,
) error {
	return classify(conn(ctx, r.db).Save(rec).Error)
}

func (r *BusinessHoursGormRepository) InsertMissing(
	ctx context.Context,
	recs []models.BusinessHours,
) error {
	if len(recs) == 0 {
		return nil
	}
	return classify(conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "weekday"}},
			DoNothing: true,
		}).
		Create(&recs).Error)
}

func (r *BusinessHoursGormRepository) DeleteByIDs(
	ctx context.Context,
	ids []uint,
) error {
	if len(ids) == 0 {
		return nil
	}
	return classify(conn(ctx, r.db).Delete(&models.BusinessHours{}, ids).Error)
}

var _ businesshours.Repository = (*BusinessHoursGormRepository)(nil)
