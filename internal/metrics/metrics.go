package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"returnsconsole/internal/returns"
)

type Registry struct {
	reg          *prometheus.Registry
	OrderShapes  *prometheus.CounterVec
	EmptyOrders  prometheus.Counter
	DraftsBuilt  prometheus.Counter
	DraftsDenied *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	shapes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "returns_order_shape_total",
		Help: "Orders normalized, by the encoding their line items were found in.",
	}, []string{"shape"})
	empty := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "returns_order_without_lines_total",
		Help: "Orders that yielded no returnable line.",
	})
	built := prometheus.NewCounter(prometheus.CounterOpts{Name: "returns_drafts_total"})
	denied := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "returns_drafts_rejected_total"}, []string{"reason"})

	r.MustRegister(shapes, empty, built, denied)
	return &Registry{
		reg:          r,
		OrderShapes:  shapes,
		EmptyOrders:  empty,
		DraftsBuilt:  built,
		DraftsDenied: denied,
	}
}

// ObserveShape records one normalization result.
func (r *Registry) ObserveShape(shape returns.Shape) {
	r.OrderShapes.WithLabelValues(string(shape)).Inc()
	if shape == returns.ShapeNone {
		r.EmptyOrders.Inc()
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
