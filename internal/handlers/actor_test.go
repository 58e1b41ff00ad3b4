package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestActor_CustomerFor(t *testing.T) {
	customer := actor{ID: 5, Role: models.RoleCustomer}
	staff := actor{ID: 1, Role: models.RoleBarber}

	c, _ := testContext()
	id, ok := customer.customerFor(c, 0)
	assert.True(t, ok)
	assert.Equal(t, uint(5), id)

	c, w := testContext()
	_, ok = customer.customerFor(c, 6)
	assert.False(t, ok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = testContext()
	_, ok = staff.customerFor(c, 0)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, _ = testContext()
	id, ok = staff.customerFor(c, 9)
	assert.True(t, ok)
	assert.Equal(t, uint(9), id)
}

func TestParseHelpers(t *testing.T) {
	c, _ := testContext()
	d, ok := parseDate(c, "date", "2026-10-19")
	assert.True(t, ok)
	assert.Equal(t, "2026-10-19", d.Format("2006-01-02"))

	c, w := testContext()
	_, ok = parseDate(c, "date", "")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = testContext()
	_, ok = parseClock(c, "start_time", "25:99")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = testContext()
	_, ok = parseID(c, "id", "0")
	assert.False(t, ok)
	assert.Contains(t, w.Body.String(), "invalid_id")
}
