package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// --------------------------------------------------
// Parsing de datas, horários e ids vindos da requisição.
// Em caso de erro a resposta 400 já foi escrita.
// --------------------------------------------------

func parseDate(c *gin.Context, field, value string) (time.Time, bool) {
	if value == "" {
		httperr.BadRequest(c, "invalid_"+field, "Data obrigatória (YYYY-MM-DD).")
		return time.Time{}, false
	}
	d, err := timezone.ParseDate(value)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+field, "Data inválida, use YYYY-MM-DD.")
		return time.Time{}, false
	}
	return d, true
}

func parseClock(c *gin.Context, field, value string) (timezone.Clock, bool) {
	v, err := timezone.ParseClock(value)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+field, "Horário inválido, use HH:MM.")
		return 0, false
	}
	return v, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	return parseID(c, name, c.Param(name))
}

func parseIDQuery(c *gin.Context, name string) (uint, bool) {
	return parseID(c, name, c.Query(name))
}

func parseID(c *gin.Context, name, raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(400, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return false
	}
	return true
}

// --------------------------------------------------
// Relógio da barbearia
// --------------------------------------------------

type ShopClock struct {
	Location *time.Location
	Now      func() time.Time
}

func (s ShopClock) withDefaults() ShopClock {
	if s.Location == nil {
		s.Location = timezone.Location("")
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	return s
}

// pastSlot barra horários que já começaram no fuso da barbearia.
func (s ShopClock) pastSlot(c *gin.Context, date time.Time, start timezone.Clock) bool {
	if timezone.StartsAt(date, start, s.Location).After(s.Now()) {
		return false
	}
	httperr.Write(c, http.StatusUnprocessableEntity, "appointment_in_past", "O horário escolhido já passou.")
	return true
}

// pastDate barra datas anteriores a hoje.
func (s ShopClock) pastDate(c *gin.Context, date time.Time) bool {
	if !date.Before(timezone.Today(s.Now(), s.Location)) {
		return false
	}
	httperr.Write(c, http.StatusUnprocessableEntity, "date_in_past", "A data escolhida já passou.")
	return true
}
