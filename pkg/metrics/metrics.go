package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "academics", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "route", "status"})
	HTTPLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "academics", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	Logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "academics", Name: "logins_total", Help: "Login attempts by outcome",
	}, []string{"outcome"})
	IngestedRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "academics", Name: "ingested_rows_total", Help: "Bulk upload rows by kind and outcome",
	}, []string{"kind", "outcome"})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, Logins, IngestedRows)
}

func Handler() http.Handler { return promhttp.Handler() }

// ObserveRequest 记录一次 HTTP 请求
func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func LoginSucceeded() { Logins.WithLabelValues("success").Inc() }

func LoginFailed() { Logins.WithLabelValues("failure").Inc() }

// ObserveIngest 记录批量导入的接收/拒绝行数
func ObserveIngest(kind string, accepted, rejected int) {
	IngestedRows.WithLabelValues(kind, "accepted").Add(float64(accepted))
	IngestedRows.WithLabelValues(kind, "rejected").Add(float64(rejected))
}
