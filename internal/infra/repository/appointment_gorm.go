package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return classify(conn(ctx, r.db).Create(ap).Error)
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return classify(conn(ctx, r.db).Save(ap).Error)
}

// LockBarber trava a linha do barbeiro até o fim da transação, serializando
// as escritas de agenda daquele barbeiro.
func (r *AppointmentGormRepository) LockBarber(
	ctx context.Context,
	barberID uint,
) error {

	var barber models.Barber
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&barber, barberID).Error

	return notFound(err, "barber", barberID)
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *AppointmentGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := conn(ctx, r.db).First(&ap, id).Error; err != nil {
		return nil, notFound(err, "appointment", id)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListByCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Appointment, error) {
	return r.list(ctx, "customer_id = ?", customerID)
}

func (r *AppointmentGormRepository) ListByBarber(
	ctx context.Context,
	barberID uint,
) ([]models.Appointment, error) {
	return r.list(ctx, "barber_id = ?", barberID)
}

func (r *AppointmentGormRepository) ListByDateAndStatus(
	ctx context.Context,
	date time.Time,
	status domain.Status,
) ([]models.Appointment, error) {
	return r.list(ctx, "date = ? AND status = ?", timezone.FormatDate(date), string(status))
}

func (r *AppointmentGormRepository) ListAll(
	ctx context.Context,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := conn(ctx, r.db).
		Order("date ASC, start_time ASC, id ASC").
		Find(&apps).Error; err != nil {
		return nil, classify(err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := conn(ctx, r.db).
		Where(query, args...).
		Order("date ASC, start_time ASC, id ASC").
		Find(&apps).Error; err != nil {
		return nil, classify(err)
	}
	return apps, nil
}

// --------------------------------------------------
// Occupancy
// --------------------------------------------------

type bookedRow struct {
	ID          uint
	StartTime   string
	DurationMin *int
}

func (r *AppointmentGormRepository) ListBookedIntervals(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]domain.BookedInterval, error) {

	var rows []bookedRow
	if err := conn(ctx, r.db).
		Table("appointments AS a").
		Select("a.id, a.start_time, s.duration_min").
		Joins("LEFT JOIN services s ON s.id = a.service_id").
		Where(
			"a.barber_id = ? AND a.date = ? AND a.status = ?",
			barberID,
			timezone.FormatDate(date),
			string(domain.StatusConfirmed),
		).
		Order("a.start_time ASC").
		Scan(&rows).Error; err != nil {
		return nil, classify(err)
	}

	out := make([]domain.BookedInterval, 0, len(rows))
	for _, row := range rows {
		if row.DurationMin == nil {
			return nil, fmt.Errorf("appointment %d: service not found", row.ID)
		}
		start, err := timezone.ParseClock(row.StartTime)
		if err != nil {
			return nil, fmt.Errorf("appointment %d: %w", row.ID, err)
		}
		out = append(out, domain.BookedInterval{
			AppointmentID: row.ID,
			Start:         start,
			DurationMin:   *row.DurationMin,
		})
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
