package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/directory"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
)

// CatalogHandler expõe barbeiros e serviços. Listagem é pública,
// cadastro é restrito ao admin.
type CatalogHandler struct {
	catalog directory.Repository
	offers  *catalog.BarberServices
}

func NewCatalogHandler(dir directory.Repository, offers *catalog.BarberServices) *CatalogHandler {
	return &CatalogHandler{catalog: dir, offers: offers}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"min=0"`
}

// ServiceIDs vazio remove todos os vínculos do barbeiro.
type BarberServicesRequest struct {
	ServiceIDs []uint `json:"service_ids" binding:"required"`
}

// --------- Handlers ---------

func (h *CatalogHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.catalog.ListBarbers(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	active, filter := activeFilter(c)
	out := make([]models.Barber, 0, len(barbers))
	for _, b := range barbers {
		if filter && b.Active != active {
			continue
		}
		out = append(out, b)
	}

	httpresp.List(c, out)
}

// ListServices aceita ?active=true|false e ?query= (nome ou descrição).
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.catalog.ListServices(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	active, filter := activeFilter(c)
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	out := make([]models.Service, 0, len(services))
	for _, s := range services {
		if filter && s.Active != active {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(s.Name), query) &&
			!strings.Contains(strings.ToLower(s.Description), query) {
			continue
		}
		out = append(out, s)
	}

	httpresp.List(c, out)
}

func (h *CatalogHandler) CreateBarber(c *gin.Context) {
	var req CreateBarberRequest
	if !bindJSON(c, &req) {
		return
	}

	b := models.Barber{
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:  req.Phone,
		Active: true,
	}
	if err := h.catalog.CreateBarber(c.Request.Context(), &b); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
	}
	if err := h.catalog.CreateService(c.Request.Context(), &s); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

func (h *CatalogHandler) ListBarberServices(c *gin.Context) {
	barberID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	services, err := h.offers.List(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *CatalogHandler) ReplaceBarberServices(c *gin.Context) {
	barberID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req BarberServicesRequest
	if !bindJSON(c, &req) {
		return
	}

	services, err := h.offers.Replace(c.Request.Context(), currentActor(c).idPtr(), barberID, req.ServiceIDs)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, services)
}

// "true", "false" ou vazio
func activeFilter(c *gin.Context) (active bool, ok bool) {
	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
