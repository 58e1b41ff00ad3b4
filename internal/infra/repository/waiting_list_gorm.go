package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/waitinglist"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type WaitingListGormRepository struct {
	db *gorm.DB
}

func NewWaitingListGormRepository(db *gorm.DB) *WaitingListGormRepository {
	return &WaitingListGormRepository{db: db}
}

func (r *WaitingListGormRepository) Create(ctx context.Context, e *models.WaitingListEntry) error {
	return classify(conn(ctx, r.db).Create(e).Error)
}

func (r *WaitingListGormRepository) Update(ctx context.Context, e *models.WaitingListEntry) error {
	return classify(conn(ctx, r.db).Save(e).Error)
}

func (r *WaitingListGormRepository) Delete(ctx context.Context, id uint) error {
	res := conn(ctx, r.db).Delete(&models.WaitingListEntry{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "waiting_list_entry", id)
	}
	return nil
}

func (r *WaitingListGormRepository) GetByID(ctx context.Context, id uint) (*models.WaitingListEntry, error) {
	var e models.WaitingListEntry
	if err := conn(ctx, r.db).First(&e, id).Error; err != nil {
		return nil, notFound(err, "waiting_list_entry", id)
	}
	return &e, nil
}

func (r *WaitingListGormRepository) ListWaiting(
	ctx context.Context,
	barberID uint,
	serviceID uint,
	date time.Time,
) ([]models.WaitingListEntry, error) {

	var entries []models.WaitingListEntry
	if err := conn(ctx, r.db).
		Where(
			"barber_id = ? AND service_id = ? AND requested_date = ? AND status = ?",
			barberID,
			serviceID,
			timezone.FormatDate(date),
			string(waitinglist.StatusWaiting),
		).
		Order("enqueued_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, classify(err)
	}
	return entries, nil
}

func (r *WaitingListGormRepository) ListByCustomer(ctx context.Context, customerID uint) ([]models.WaitingListEntry, error) {
	var entries []models.WaitingListEntry
	if err := conn(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("enqueued_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, classify(err)
	}
	return entries, nil
}

func (r *WaitingListGormRepository) ListActiveByBarber(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]models.WaitingListEntry, error) {

	var entries []models.WaitingListEntry
	if err := conn(ctx, r.db).
		Where(
			"barber_id = ? AND requested_date = ? AND status = ?",
			barberID,
			timezone.FormatDate(date),
			string(waitinglist.StatusWaiting),
		).
		Order("enqueued_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, classify(err)
	}
	return entries, nil
}

var _ waitinglist.Repository = (*WaitingListGormRepository)(nil)
