package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	availability *appointment.GetAvailability
}

func NewPublicHandler(availability *appointment.GetAvailability) *PublicHandler {
	return &PublicHandler{availability: availability}
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	barberID, ok := parseIDQuery(c, "barber_id")
	if !ok {
		return
	}
	serviceID, ok := parseIDQuery(c, "service_id")
	if !ok {
		return
	}
	date, ok := parseDate(c, "date", c.Query("date"))
	if !ok {
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber_id":  barberID,
		"service_id": serviceID,
		"date":       timezone.FormatDate(date),
		"slots":      slots,
	})
}
