// Package metrics 提供基于Prometheus的指标收集
//
// # 指标清单
//
// 目录(Gauge,每次变更后刷新):
//   - catalog_books_total / catalog_books_available / catalog_books_checked_out
//
// 业务(Counter):
//   - catalog_searches_total
//   - catalog_updates_total{result}（applied/ignored/rejected）
//   - memo_cache_requests_total{result}（hit/miss）
//
// HTTP:
//   - http_requests_total{method,path,status}
//   - http_request_duration_seconds{method,path}
//   - http_requests_in_progress
//
// # 使用示例
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	metrics.SetGauge(metrics.CatalogBooksTotal, float64(stats.Total))
//	metrics.IncCounterVec(metrics.MemoCacheRequests, map[string]string{"result": "hit"})
//
// # 命名规范
//
// Counter以_total结尾，Histogram以单位结尾（_seconds），
// 标签只用有限取值（result、method），不要用书名、作者这类高基数字段。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// once 防止重复注册（promauto重复注册会panic）
	once sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 目录指标

	// CatalogBooksTotal 目录记录总数
	CatalogBooksTotal prometheus.Gauge

	// CatalogBooksAvailable 可借数量
	CatalogBooksAvailable prometheus.Gauge

	// CatalogBooksCheckedOut 已借出数量
	CatalogBooksCheckedOut prometheus.Gauge

	// CatalogSearchesTotal 搜索次数
	CatalogSearchesTotal prometheus.Counter

	// CatalogUpdatesTotal 更新次数
	// 标签：result（applied=已更新 / ignored=记录不在目录中 / rejected=参数错误）
	CatalogUpdatesTotal *prometheus.CounterVec

	// 记忆化缓存指标

	// MemoCacheRequests 缓存请求数
	// 标签：result（hit/miss）
	MemoCacheRequests *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 可以重复调用，只有第一次生效
func InitMetrics() {
	once.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 目录在内存中，绝大多数请求在毫秒级
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	CatalogBooksTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_books_total",
			Help: "目录记录总数",
		},
	)

	CatalogBooksAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_books_available",
			Help: "可借图书数量",
		},
	)

	CatalogBooksCheckedOut = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_books_checked_out",
			Help: "已借出图书数量",
		},
	)

	CatalogSearchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_searches_total",
			Help: "目录搜索次数",
		},
	)

	CatalogUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_updates_total",
			Help: "目录更新次数",
		},
		[]string{"result"},
	)

	MemoCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memo_cache_requests_total",
			Help: "记忆化缓存请求数",
		},
		[]string{"result"},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}

// SetCatalogGauges 刷新目录指标
func SetCatalogGauges(total, available, checkedOut int) {
	SetGauge(CatalogBooksTotal, float64(total))
	SetGauge(CatalogBooksAvailable, float64(available))
	SetGauge(CatalogBooksCheckedOut, float64(checkedOut))
}
