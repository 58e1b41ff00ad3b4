package directory

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Repository resolves the people and catalog entries referenced by bookings.
// Lookups return httperr.NotFoundError when the id is unknown.
type Repository interface {
	// -------- Users --------
	GetCustomer(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	// UpdateUser grava nome, telefone e hash de senha. E-mail e papel não mudam.
	UpdateUser(ctx context.Context, u *models.User) error

	// -------- Barbers --------
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	ListBarbers(ctx context.Context) ([]models.Barber, error)
	CreateBarber(ctx context.Context, b *models.Barber) error

	// -------- Services --------
	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error

	// -------- Barber ↔ Service --------
	ListBarberServices(ctx context.Context, barberID uint) ([]models.Service, error)
	// ReplaceBarberServices troca todo o conjunto do barbeiro. Deve rodar
	// dentro de uma unidade de trabalho.
	ReplaceBarberServices(ctx context.Context, barberID uint, serviceIDs []uint) error
	// BarberOffers é verdadeiro quando o barbeiro não tem nenhum vínculo
	// cadastrado ou quando serviceID está entre os vínculos.
	BarberOffers(ctx context.Context, barberID, serviceID uint) (bool, error)
}
