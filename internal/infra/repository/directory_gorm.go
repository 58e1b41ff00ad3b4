package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type DirectoryGormRepository struct {
	db *gorm.DB
}

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *DirectoryGormRepository) GetCustomer(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := conn(ctx, r.db).First(&u, id).Error; err != nil {
		return nil, notFound(err, "customer", id)
	}
	return &u, nil
}

func (r *DirectoryGormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := conn(ctx, r.db).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err, "user", 0)
	}
	return &u, nil
}

func (r *DirectoryGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	err := conn(ctx, r.db).Create(u).Error
	if isUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness("email_already_registered")
	}
	return classify(err)
}

func (r *DirectoryGormRepository) UpdateUser(ctx context.Context, u *models.User) error {
	res := conn(ctx, r.db).
		Model(&models.User{ID: u.ID}).
		Select("name", "phone", "password_hash", "updated_at").
		Updates(u)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundOf("user", u.ID)
	}
	return classify(conn(ctx, r.db).First(u, u.ID).Error)
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *DirectoryGormRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	var b models.Barber
	if err := conn(ctx, r.db).First(&b, id).Error; err != nil {
		return nil, notFound(err, "barber", id)
	}
	return &b, nil
}

func (r *DirectoryGormRepository) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	var out []models.Barber
	if err := conn(ctx, r.db).
		Where("active = ?", true).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (r *DirectoryGormRepository) CreateBarber(ctx context.Context, b *models.Barber) error {
	return classify(conn(ctx, r.db).Create(b).Error)
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *DirectoryGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if err := conn(ctx, r.db).First(&s, id).Error; err != nil {
		return nil, notFound(err, "service", id)
	}
	return &s, nil
}

func (r *DirectoryGormRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	if err := conn(ctx, r.db).
		Where("active = ?", true).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (r *DirectoryGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return classify(conn(ctx, r.db).Create(s).Error)
}

// --------------------------------------------------
// Barber ↔ Service
// --------------------------------------------------

func (r *DirectoryGormRepository) ListBarberServices(ctx context.Context, barberID uint) ([]models.Service, error) {
	var out []models.Service
	if err := conn(ctx, r.db).
		Joins("JOIN barber_services bs ON bs.service_id = services.id").
		Where("bs.barber_id = ?", barberID).
		Order("services.name ASC").
		Find(&out).Error; err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (r *DirectoryGormRepository) ReplaceBarberServices(ctx context.Context, barberID uint, serviceIDs []uint) error {
	db := conn(ctx, r.db)

	if err := db.Where("barber_id = ?", barberID).Delete(&models.BarberService{}).Error; err != nil {
		return classify(err)
	}
	if len(serviceIDs) == 0 {
		return nil
	}

	rows := make([]models.BarberService, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		rows = append(rows, models.BarberService{BarberID: barberID, ServiceID: id})
	}
	return classify(db.Create(&rows).Error)
}

func (r *DirectoryGormRepository) BarberOffers(ctx context.Context, barberID, serviceID uint) (bool, error) {
	var row struct {
		Total   int64
		Matches int64
	}
	err := conn(ctx, r.db).
		Model(&models.BarberService{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE service_id = ?) AS matches", serviceID).
		Where("barber_id = ?", barberID).
		Scan(&row).Error
	if err != nil {
		return false, classify(err)
	}
	return row.Total == 0 || row.Matches > 0, nil
}

var _ directory.Repository = (*DirectoryGormRepository)(nil)
