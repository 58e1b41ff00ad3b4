package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/businesshours"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/businesshours"
)

type BusinessHoursHandler struct {
	calendar *businesshours.Calendar
}

func NewBusinessHoursHandler(calendar *businesshours.Calendar) *BusinessHoursHandler {
	return &BusinessHoursHandler{calendar: calendar}
}

type BusinessHoursUpdateRequest struct {
	Days []domain.DaySetting `json:"days" binding:"required,min=1"`
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	hours, err := h.calendar.List(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update troca só os dias enviados; os demais ficam como estão.
func (h *BusinessHoursHandler) Update(c *gin.Context) {
	var req BusinessHoursUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	hours, err := h.calendar.SetHours(c.Request.Context(), currentActor(c).idPtr(), req.Days)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, hours)
}
