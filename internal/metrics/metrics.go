package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the storefront counters on a private prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	OrdersPlaced    prometheus.Counter
	OrdersDelivered prometheus.Counter
	OrdersCancelled prometheus.Counter
	CartAdds        prometheus.Counter
	OpenOrders      prometheus.Gauge
}

// NewRegistry creates and registers all storefront metrics.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	placed := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_orders_placed_total"})
	delivered := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_orders_delivered_total"})
	cancelled := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_orders_cancelled_total"})
	cartAdds := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_cart_adds_total"})
	openOrders := prometheus.NewGauge(prometheus.GaugeOpts{Name: "storefront_open_orders"})

	r.MustRegister(placed, delivered, cancelled, cartAdds, openOrders)
	return &Registry{
		reg:             r,
		OrdersPlaced:    placed,
		OrdersDelivered: delivered,
		OrdersCancelled: cancelled,
		CartAdds:        cartAdds,
		OpenOrders:      openOrders,
	}
}

// Handler exposes the registry for scraping.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
