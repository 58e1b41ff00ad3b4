package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/x/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user": c.GetUint(ContextUserID),
			"role": c.GetString(ContextUserRole),
		})
	})
	return r
}

func do(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x/1", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(secret))
	valid := sign(t, jwt.MapClaims{"sub": 7, "role": "admin", "exp": time.Now().Add(time.Hour).Unix()}, secret)

	w := do(r, map[string]string{"Authorization": "Bearer " + valid})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":7,"role":"admin"}`, w.Body.String())

	cases := map[string]string{
		"missing":     "",
		"not bearer":  "Basic abc",
		"bad sig":     "Bearer " + sign(t, jwt.MapClaims{"sub": 7, "role": "admin"}, "other"),
		"expired":     "Bearer " + sign(t, jwt.MapClaims{"sub": 7, "role": "admin", "exp": time.Now().Add(-time.Hour).Unix()}, secret),
		"no role":     "Bearer " + sign(t, jwt.MapClaims{"sub": 7}, secret),
		"not a token": "Bearer abc.def",
	}
	for name, header := range cases {
		w := do(r, map[string]string{"Authorization": header})
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}

func TestRequireRole(t *testing.T) {
	r := newRouter(AuthMiddleware(secret), RequireRole("admin"))

	admin := sign(t, jwt.MapClaims{"sub": 1, "role": "admin"}, secret)
	customer := sign(t, jwt.MapClaims{"sub": 2, "role": "customer"}, secret)

	assert.Equal(t, http.StatusOK, do(r, map[string]string{"Authorization": "Bearer " + admin}).Code)
	assert.Equal(t, http.StatusForbidden, do(r, map[string]string{"Authorization": "Bearer " + customer}).Code)
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	w := do(r, nil)
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)

	w = do(r, map[string]string{HeaderRequestID: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestCORS_Preflight(t *testing.T) {
	r := newRouter(CORSMiddleware())

	req := httptest.NewRequest(http.MethodOptions, "/x/1", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

type observed struct {
	method, route, status string
}

type fakeObserver struct{ calls []observed }

func (f *fakeObserver) ObserveHTTP(method, route, status string, _ float64) {
	f.calls = append(f.calls, observed{method, route, status})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	obs := &fakeObserver{}
	r := newRouter(Metrics(obs))

	do(r, nil)
	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, obs.calls, 2)
	assert.Equal(t, observed{"GET", "/x/:id", "200"}, obs.calls[0])
	assert.Equal(t, observed{"GET", "unmatched", "404"}, obs.calls[1])
}
