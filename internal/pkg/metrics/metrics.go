package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 订单生命周期计数器
var (
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "waterball",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Total number of orders created.",
	})
	OrdersPaid = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "waterball",
		Subsystem: "orders",
		Name:      "paid_total",
		Help:      "Total number of orders transitioned to PAID.",
	})
	OrdersCancelled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "waterball",
		Subsystem: "orders",
		Name:      "cancelled_total",
		Help:      "Total number of orders cancelled after the payment deadline.",
	})
	SweepRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "waterball",
		Subsystem: "orders",
		Name:      "sweep_runs_total",
		Help:      "Total number of expiry sweep executions.",
	})
)

func init() {
	prometheus.MustRegister(OrdersCreated, OrdersPaid, OrdersCancelled, SweepRuns)
}

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
