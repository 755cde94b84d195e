package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandpilot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brandpilot_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 生成任务指标
	GenerationSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandpilot_generation_submitted_total",
			Help: "Total number of generation tasks submitted to the remote job API",
		},
		[]string{"kind"},
	)

	GenerationFinishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandpilot_generation_finished_total",
			Help: "Total number of generation tasks that reached a terminal state",
		},
		[]string{"kind", "status"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brandpilot_generation_duration_seconds",
			Help:    "Time from submission to terminal state",
			Buckets: []float64{5, 10, 20, 30, 60, 120, 180, 300, 600, 900},
		},
		[]string{"kind"},
	)

	// 第三方调用指标
	RemoteCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandpilot_remote_calls_total",
			Help: "Total number of calls to third-party APIs",
		},
		[]string{"service", "outcome"},
	)

	// 扫描器指标
	ScannerCyclesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "brandpilot_scanner_cycles_total",
			Help: "Total number of due-post scan cycles",
		},
	)

	PostsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandpilot_posts_processed_total",
			Help: "Total number of scheduled posts processed",
		},
		[]string{"status"},
	)

	// 数据库连接池指标
	DBConnectionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "brandpilot_db_connections_in_use",
			Help: "Number of database connections in use",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "brandpilot_db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	DBConnectionsMax = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "brandpilot_db_connections_max",
			Help: "Maximum number of database connections",
		},
	)

	// 错误指标
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandpilot_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "type"},
	)
)

// RecordHTTPRequest 记录 HTTP 请求
func RecordHTTPRequest(method, path string, status int, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, statusClass(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordGenerationSubmitted 记录生成任务提交
func RecordGenerationSubmitted(kind string) {
	GenerationSubmittedTotal.WithLabelValues(kind).Inc()
}

// RecordGenerationFinished 记录生成任务进入终态
func RecordGenerationFinished(kind, status string, duration float64) {
	GenerationFinishedTotal.WithLabelValues(kind, status).Inc()
	if duration > 0 {
		GenerationDuration.WithLabelValues(kind).Observe(duration)
	}
}

// RecordRemoteCall 记录第三方调用结果（outcome: ok / error）
func RecordRemoteCall(service string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	RemoteCallsTotal.WithLabelValues(service, outcome).Inc()
}

// RecordScanCycle 记录一次扫描
func RecordScanCycle() {
	ScannerCyclesTotal.Inc()
}

// RecordPostProcessed 记录一条定时发布的处理结果
func RecordPostProcessed(status string) {
	PostsProcessedTotal.WithLabelValues(status).Inc()
}

// UpdateDBPoolStats 更新数据库连接池统计
func UpdateDBPoolStats(inUse, idle, max int) {
	DBConnectionsInUse.Set(float64(inUse))
	DBConnectionsIdle.Set(float64(idle))
	DBConnectionsMax.Set(float64(max))
}

// RecordError 记录错误
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// statusClass 将 HTTP 状态码转为类别
func statusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
