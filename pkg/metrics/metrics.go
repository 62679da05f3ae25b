package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "classsync"

var (
	// HTTPRequests HTTP 请求计数，按路由模板与状态码区分
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	// HTTPDuration HTTP 请求耗时
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ScheduleOperations 课时操作结果计数
	// result: ok | conflict | not_found | forbidden | invalid | error
	ScheduleOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "schedule_operations_total",
		Help:      "Schedule engine operations by operation and outcome.",
	}, []string{"operation", "result"})

	// ScheduleChangeRecords 写入的变更记录数
	ScheduleChangeRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "schedule_change_records_total",
		Help:      "Change records appended, by kind (update | cancel).",
	}, []string{"kind"})
)
