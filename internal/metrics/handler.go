package metrics

import (
	"encoding/json"
	"math"
	"net/http"
	"slices"
	"strconv"
	"time"

	dto "github.com/prometheus/client_model/go"
)

// Summary is the JSON response for the metrics summary endpoint.
type Summary struct {
	HTTP      httpSummary   `json:"http"`
	Auth      authInfo      `json:"auth"`
	Ownership ownershipInfo `json:"ownership"`
	DB        dbInfo        `json:"db"`
	Server    serverInfo    `json:"server"`
}

type httpSummary struct {
	TotalRequests float64 `json:"totalRequests"`
	ErrorRate     float64 `json:"errorRate"`
	P50Latency    float64 `json:"p50Latency"`
	P95Latency    float64 `json:"p95Latency"`
	P99Latency    float64 `json:"p99Latency"`
}

type authInfo struct {
	Failures  float64            `json:"failures"`
	Successes float64            `json:"successes"`
	ByReason  map[string]float64 `json:"byReason"`
}

type ownershipInfo struct {
	Denials    float64            `json:"denials"`
	ByResource map[string]float64 `json:"byResource"`
}

type dbInfo struct {
	OpenConns  float64 `json:"openConns"`
	InUseConns float64 `json:"inUseConns"`
	IdleConns  float64 `json:"idleConns"`
}

type serverInfo struct {
	StartTime     float64 `json:"startTime"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
}

// Handler returns an http.HandlerFunc that serves a JSON digest of the
// registry.
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := m.Summarize()
		if err != nil {
			http.Error(w, "failed to gather metrics", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache, no-store")
		_ = json.NewEncoder(w).Encode(summary)
	}
}

// Summarize gathers the registry and reduces it to a Summary.
func (m *Metrics) Summarize() (Summary, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return Summary{}, err
	}

	fam := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		fam[f.GetName()] = f
	}

	requests := fam[namespace+"_http_requests_total"]
	durations := fam[namespace+"_http_request_duration_seconds"]
	started := gaugeValue(fam[namespace+"_server_start_time_seconds"])

	return Summary{
		HTTP: httpSummary{
			TotalRequests: sumCounter(requests),
			ErrorRate:     errorRate(requests),
			P50Latency:    histogramPercentile(durations, 0.50),
			P95Latency:    histogramPercentile(durations, 0.95),
			P99Latency:    histogramPercentile(durations, 0.99),
		},
		Auth: authInfo{
			Failures:  sumCounter(fam[namespace+"_auth_failures_total"]),
			Successes: sumCounter(fam[namespace+"_auth_successes_total"]),
			ByReason:  countersByLabel(fam[namespace+"_auth_failures_total"], "reason"),
		},
		Ownership: ownershipInfo{
			Denials:    sumCounter(fam[namespace+"_ownership_denials_total"]),
			ByResource: countersByLabel(fam[namespace+"_ownership_denials_total"], "resource"),
		},
		DB: dbInfo{
			OpenConns:  gaugeValue(fam[namespace+"_db_open_conns"]),
			InUseConns: gaugeValue(fam[namespace+"_db_in_use_conns"]),
			IdleConns:  gaugeValue(fam[namespace+"_db_idle_conns"]),
		},
		Server: serverInfo{
			StartTime:     started,
			UptimeSeconds: float64(time.Now().Unix()) - started,
		},
	}, nil
}

// --- Prometheus metric helpers ---

func sumCounter(f *dto.MetricFamily) float64 {
	var total float64
	for _, m := range f.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	return total
}

func gaugeValue(f *dto.MetricFamily) float64 {
	ms := f.GetMetric()
	if len(ms) == 0 {
		return 0
	}
	return ms[0].GetGauge().GetValue()
}

func countersByLabel(f *dto.MetricFamily, label string) map[string]float64 {
	out := map[string]float64{}
	for _, m := range f.GetMetric() {
		if v := labelValue(m, label); v != "" {
			out[v] += m.GetCounter().GetValue()
		}
	}
	return out
}

// errorRate is the share of requests answered with a 4xx or 5xx status.
func errorRate(f *dto.MetricFamily) float64 {
	var total, failed float64
	for _, m := range f.GetMetric() {
		v := m.GetCounter().GetValue()
		total += v
		if code, err := strconv.Atoi(labelValue(m, "status_code")); err == nil && code >= 400 {
			failed += v
		}
	}
	if total == 0 {
		return 0
	}
	return failed / total
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

// histogramPercentile merges every series of f and estimates quantile q by
// interpolating inside the bucket that crosses the target rank. Samples in
// the +Inf bucket report the largest finite bound.
func histogramPercentile(f *dto.MetricFamily, q float64) float64 {
	var samples uint64
	cumulative := make(map[float64]uint64)
	for _, m := range f.GetMetric() {
		h := m.GetHistogram()
		if h == nil {
			continue
		}
		samples += h.GetSampleCount()
		for _, b := range h.GetBucket() {
			cumulative[b.GetUpperBound()] += b.GetCumulativeCount()
		}
	}
	if samples == 0 {
		return 0
	}

	bounds := make([]float64, 0, len(cumulative))
	for upper := range cumulative {
		bounds = append(bounds, upper)
	}
	slices.Sort(bounds)
	rank := q * float64(samples)
	lower, below := 0.0, uint64(0)
	for _, upper := range bounds {
		if math.IsInf(upper, 1) {
			break
		}
		count := cumulative[upper]
		if float64(count) >= rank {
			inBucket := count - below
			if inBucket == 0 {
				return upper
			}
			return lower + (upper-lower)*(rank-float64(below))/float64(inBucket)
		}
		lower, below = upper, count
	}
	return lower
}
