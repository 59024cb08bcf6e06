package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// MonitoringService samples host resources on a ticker and exposes request
// and system metrics both in Postgres (for the admin dashboard's trend
// queries) and through a Prometheus registry (for scraping).
type MonitoringService struct {
	store *Store
	stop  chan struct{}

	registry     *prometheus.Registry
	cpuGauge     prometheus.Gauge
	memGauge     prometheus.Gauge
	diskGauge    prometheus.Gauge
	requestsTot  *prometheus.CounterVec
	requestTimes *prometheus.HistogramVec
}

func NewMonitoringService(store *Store) *MonitoringService {
	s := &MonitoringService{
		store: store,
		stop:  make(chan struct{}),

		registry: prometheus.NewRegistry(),
		cpuGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "system_cpu_percent",
			Help: "Host CPU utilisation percentage.",
		}),
		memGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "system_memory_percent",
			Help: "Host memory utilisation percentage.",
		}),
		diskGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "system_disk_percent",
			Help: "Root filesystem utilisation percentage.",
		}),
		requestsTot: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "API requests by method and status code.",
		}, []string{"method", "status"}),
		requestTimes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "API request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}

	s.registry.MustRegister(
		s.cpuGauge, s.memGauge, s.diskGauge, s.requestsTot, s.requestTimes,
		collectors.NewGoCollector(),
	)
	return s
}

// StartCollection starts the background metrics sampling loop.
func (s *MonitoringService) StartCollection() {
	ticker := time.NewTicker(10 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.collectAndSave()
			case <-s.stop:
				return
			}
		}
	}()
}

// StopCollection halts sampling during shutdown.
func (s *MonitoringService) StopCollection() {
	close(s.stop)
}

func (s *MonitoringService) collectAndSave() {
	cpuPercents, _ := cpu.Percent(time.Second, false)
	cpuPct := 0.0
	if len(cpuPercents) > 0 {
		cpuPct = cpuPercents[0]
	}

	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")

	s.cpuGauge.Set(cpuPct)
	if memStats != nil {
		s.memGauge.Set(memStats.UsedPercent)
	}
	if diskStats != nil {
		s.diskGauge.Set(diskStats.UsedPercent)
	}

	var memUsed, memTotal, diskUsed, diskTotal uint64
	if memStats != nil {
		memUsed, memTotal = memStats.Used, memStats.Total
	}
	if diskStats != nil {
		diskUsed, diskTotal = diskStats.Used, diskStats.Total
	}
	if s.store != nil {
		s.store.RecordSystemMetrics(cpuPct, memUsed, memTotal, diskUsed, diskTotal)
	}
}

// ObserveRequest records one finished API request in both sinks.
func (s *MonitoringService) ObserveRequest(method, path string, status int, duration time.Duration, ip string) {
	s.requestsTot.WithLabelValues(method, strconv.Itoa(status)).Inc()
	s.requestTimes.WithLabelValues(method).Observe(duration.Seconds())
	if s.store != nil {
		s.store.RecordAPIMetric(method, path, status, duration, ip)
	}
}

// PrometheusHandler serves the /metrics scrape endpoint.
func (s *MonitoringService) PrometheusHandler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}
