package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/easykanban/easykanban/internal/metrics"
)

// promHandler exposes the private registry in the Prometheus text format.
func promHandler(m *metrics.Metrics) http.Handler {
	return promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})
}
