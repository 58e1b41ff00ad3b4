package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type DirectoryRepository struct {
	s *Store
}

func (s *Store) Directory() *DirectoryRepository {
	return &DirectoryRepository{s: s}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *DirectoryRepository) GetCustomer(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.data.users[id]
	if !ok {
		return nil, httperr.NotFoundOf("customer", id)
	}
	return &u, nil
}

func (r *DirectoryRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, httperr.NotFoundOf("user", 0)
}

func (r *DirectoryRepository) CreateUser(ctx context.Context, u *models.User) error {
	defer r.s.lockWrite(ctx)()

	for _, existing := range r.s.data.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return httperr.ErrBusiness("email_already_registered")
		}
	}

	if u.Role == "" {
		u.Role = models.RoleCustomer
	}
	u.ID = r.s.id()
	r.s.stamp(&u.CreatedAt, &u.UpdatedAt)
	r.s.data.users[u.ID] = *u
	return nil
}

func (r *DirectoryRepository) UpdateUser(ctx context.Context, u *models.User) error {
	defer r.s.lockWrite(ctx)()

	current, ok := r.s.data.users[u.ID]
	if !ok {
		return httperr.NotFoundOf("user", u.ID)
	}

	current.Name = u.Name
	current.Phone = u.Phone
	current.PasswordHash = u.PasswordHash
	r.s.stamp(&current.CreatedAt, &current.UpdatedAt)
	r.s.data.users[u.ID] = current
	*u = current
	return nil
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *DirectoryRepository) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.data.barbers[id]
	if !ok {
		return nil, httperr.NotFoundOf("barber", id)
	}
	return &b, nil
}

func (r *DirectoryRepository) ListBarbers(_ context.Context) ([]models.Barber, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Barber
	for _, b := range r.s.data.barbers {
		if b.Active {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *DirectoryRepository) CreateBarber(ctx context.Context, b *models.Barber) error {
	defer r.s.lockWrite(ctx)()

	b.ID = r.s.id()
	r.s.stamp(&b.CreatedAt, &b.UpdatedAt)
	r.s.data.barbers[b.ID] = *b
	return nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *DirectoryRepository) GetService(_ context.Context, id uint) (*models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	svc, ok := r.s.data.services[id]
	if !ok {
		return nil, httperr.NotFoundOf("service", id)
	}
	return &svc, nil
}

func (r *DirectoryRepository) ListServices(_ context.Context) ([]models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Service
	for _, svc := range r.s.data.services {
		if svc.Active {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *DirectoryRepository) CreateService(ctx context.Context, svc *models.Service) error {
	defer r.s.lockWrite(ctx)()

	svc.ID = r.s.id()
	r.s.stamp(&svc.CreatedAt, &svc.UpdatedAt)
	r.s.data.services[svc.ID] = *svc
	return nil
}

// --------------------------------------------------
// Barber ↔ Service
// --------------------------------------------------

func (r *DirectoryRepository) ListBarberServices(_ context.Context, barberID uint) ([]models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.Service{}
	for serviceID := range r.s.data.offers[barberID] {
		if svc, ok := r.s.data.services[serviceID]; ok {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *DirectoryRepository) ReplaceBarberServices(ctx context.Context, barberID uint, serviceIDs []uint) error {
	defer r.s.lockWrite(ctx)()

	now := r.s.now()
	set := make(map[uint]time.Time, len(serviceIDs))
	for _, id := range serviceIDs {
		set[id] = now
	}

	if len(set) == 0 {
		delete(r.s.data.offers, barberID)
		return nil
	}
	r.s.data.offers[barberID] = set
	return nil
}

func (r *DirectoryRepository) BarberOffers(_ context.Context, barberID, serviceID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	set := r.s.data.offers[barberID]
	if len(set) == 0 {
		return true, nil
	}
	_, ok := set[serviceID]
	return ok, nil
}

var _ directory.Repository = (*DirectoryRepository)(nil)
