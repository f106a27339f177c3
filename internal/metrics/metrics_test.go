package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"returnsconsole/internal/returns"
)

func TestObserveShape(t *testing.T) {
	r := NewRegistry()

	r.ObserveShape(returns.ShapeItems)
	r.ObserveShape(returns.ShapeItems)
	r.ObserveShape(returns.ShapeNone)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.OrderShapes.WithLabelValues("items")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.EmptyOrders))
}

func TestHandlerExposesCounters(t *testing.T) {
	r := NewRegistry()
	r.DraftsBuilt.Inc()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "returns_drafts_total 1")
}
