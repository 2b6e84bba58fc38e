package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blueprints-backend/internal/domains/blueprint/model"
)

func TestMiddleware_LabelsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics(prometheus.NewRegistry())

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/api/v1/blueprints/:author", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for _, author := range []string{"john", "jane"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/blueprints/"+author, nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.RequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/blueprints/:author", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.RequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")))
}

func TestTimer_StopWithError(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	NewTimer(m, "blueprint", "GetBlueprint").StopWithError(nil)
	NewTimer(m, "blueprint", "GetBlueprint").StopWithError(model.NewBlueprintNotFoundError("a", "b"))
	NewTimer(m, "blueprint", "AddNewBlueprint").StopWithError(model.NewBlueprintAlreadyExistsError("a", "b"))
	NewTimer(m, "blueprint", "GetAllBlueprints").StopWithError(errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ServiceCalls.WithLabelValues("blueprint", "GetBlueprint", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ServiceCalls.WithLabelValues("blueprint", "GetBlueprint", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ServiceErrors.WithLabelValues("blueprint", "GetBlueprint", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ServiceErrors.WithLabelValues("blueprint", "AddNewBlueprint", "already_exists")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ServiceErrors.WithLabelValues("blueprint", "GetAllBlueprints", "internal")))
}

func TestTimer_NilMetricsIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewTimer(nil, "blueprint", "GetBlueprint").StopWithError(errors.New("boom"))
	})
}
