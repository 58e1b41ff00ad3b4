package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// actor é o usuário autenticado da requisição.
type actor struct {
	ID   uint
	Role string
}

func currentActor(c *gin.Context) actor {
	return actor{
		ID:   c.GetUint(middleware.ContextUserID),
		Role: c.GetString(middleware.ContextUserRole),
	}
}

func (a actor) isStaff() bool {
	return a.Role == models.RoleBarber || a.Role == models.RoleAdmin
}

func (a actor) idPtr() *uint {
	id := a.ID
	return &id
}

// customerFor decide em nome de quem a operação roda: clientes só agem por
// si mesmos; equipe precisa informar o cliente.
func (a actor) customerFor(c *gin.Context, requested uint) (uint, bool) {
	if a.isStaff() {
		if requested == 0 {
			httperr.BadRequest(c, "customer_id_required", "Informe o cliente.")
			return 0, false
		}
		return requested, true
	}

	if requested != 0 && requested != a.ID {
		httperr.Forbidden(c, "forbidden", "Clientes só agem em nome próprio.")
		return 0, false
	}
	return a.ID, true
}

// canSee libera o dono do recurso e a equipe.
func (a actor) canSee(c *gin.Context, ownerID uint) bool {
	if a.isStaff() || a.ID == ownerID {
		return true
	}
	httperr.Forbidden(c, "forbidden", "Acesso negado.")
	return false
}
