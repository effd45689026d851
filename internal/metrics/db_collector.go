package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// DBStatsFunc returns the current connection pool statistics.
type DBStatsFunc func() sql.DBStats

// dbStatsCollector implements prometheus.Collector for sql.DBStats.
type dbStatsCollector struct {
	statFunc DBStatsFunc

	openDesc      *prometheus.Desc
	inUseDesc     *prometheus.Desc
	idleDesc      *prometheus.Desc
	waitCountDesc *prometheus.Desc
}

// NewDBStatsCollector creates a collector that exposes DB pool gauges.
func NewDBStatsCollector(statFunc DBStatsFunc) prometheus.Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "db", name), help, nil, nil)
	}
	return &dbStatsCollector{
		statFunc:      statFunc,
		openDesc:      desc("open_conns", "Number of established connections, in use and idle."),
		inUseDesc:     desc("in_use_conns", "Number of connections currently in use."),
		idleDesc:      desc("idle_conns", "Number of idle connections."),
		waitCountDesc: desc("wait_count_total", "Total number of connections waited for."),
	}
}

func (c *dbStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.openDesc
	ch <- c.inUseDesc
	ch <- c.idleDesc
	ch <- c.waitCountDesc
}

func (c *dbStatsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.statFunc()
	ch <- prometheus.MustNewConstMetric(c.openDesc, prometheus.GaugeValue, float64(s.OpenConnections))
	ch <- prometheus.MustNewConstMetric(c.inUseDesc, prometheus.GaugeValue, float64(s.InUse))
	ch <- prometheus.MustNewConstMetric(c.idleDesc, prometheus.GaugeValue, float64(s.Idle))
	ch <- prometheus.MustNewConstMetric(c.waitCountDesc, prometheus.CounterValue, float64(s.WaitCount))
}
