package monitoring

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"blueprints-backend/internal/domains/blueprint/model"
)

const unmatchedRoute = "unmatched"

// Middleware creates a Gin middleware for metrics collection. Requests are
// labelled by route template, not raw path, to keep label cardinality bounded.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		size := int64(c.Writer.Size())
		if size < 0 {
			size = 0
		}

		metrics.RecordHTTPRequest(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
			size,
		)
	}
}

// Timer measures operation duration. A Timer built from nil Metrics is a no-op.
type Timer struct {
	start   time.Time
	metrics *Metrics
	service string
	method  string
}

func NewTimer(metrics *Metrics, service, method string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		service: service,
		method:  method,
	}
}

// Stop records the duration under the given status
func (t *Timer) Stop(status string) {
	if t.metrics == nil {
		return
	}
	t.metrics.RecordServiceCall(t.service, t.method, status, time.Since(t.start))
}

// StopWithError records "ok" or "error" and classifies the error
func (t *Timer) StopWithError(err error) {
	if err == nil {
		t.Stop("ok")
		return
	}
	t.Stop("error")
	if t.metrics != nil {
		t.metrics.RecordServiceError(t.service, t.method, errorType(err))
	}
}

func errorType(err error) string {
	switch {
	case errors.Is(err, model.ErrBlueprintNotFound):
		return "not_found"
	case errors.Is(err, model.ErrBlueprintAlreadyExists):
		return "already_exists"
	default:
		return "internal"
	}
}
