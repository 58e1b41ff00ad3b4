package directory

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const CodeServiceNotOffered = "service_not_offered"

// EnsureOffered falha com CodeServiceNotOffered quando o barbeiro tem
// vínculos cadastrados e serviceID não está entre eles.
func EnsureOffered(ctx context.Context, repo Repository, barberID, serviceID uint) error {
	ok, err := repo.BarberOffers(ctx, barberID, serviceID)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrBusiness(CodeServiceNotOffered)
	}
	return nil
}
