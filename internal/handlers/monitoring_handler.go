package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"outreach-backend/internal/monitoring"
)

type MonitoringHandler struct {
	store  *monitoring.Store
	dbPool *pgxpool.Pool
}

func NewMonitoringHandler(store *monitoring.Store, dbPool *pgxpool.Pool) *MonitoringHandler {
	return &MonitoringHandler{store: store, dbPool: dbPool}
}

// GetDashboardData returns current system stats (non-historical)
// GET /api/monitoring/dashboard
func (h *MonitoringHandler) GetDashboardData(w http.ResponseWriter, r *http.Request) {
	v, _ := mem.VirtualMemory()
	c, _ := cpu.Percent(0, false)
	d, _ := disk.Usage("/")

	cpuPercent := 0.0
	if len(c) > 0 {
		cpuPercent = c[0]
	}

	hostInfo, _ := host.Info()
	uptime := time.Duration(hostInfo.Uptime) * time.Second

	// Get real database stats
	dbSize := "--"
	activeConns := 0
	dbStatus := "Offline"

	if h.dbPool != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := h.dbPool.Ping(ctx); err == nil {
			dbStatus = "Online"
		}

		var size string
		if err := h.dbPool.QueryRow(ctx, "SELECT pg_size_pretty(pg_database_size(current_database()))").Scan(&size); err == nil {
			dbSize = size
		}

		var count int
		if err := h.dbPool.QueryRow(ctx, "SELECT count(*) FROM pg_stat_activity").Scan(&count); err == nil {
			activeConns = count
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"hostname":           hostInfo.Hostname,
		"uptime":             uptime.String(),
		"database_status":    dbStatus,
		"database_size":      dbSize,
		"active_connections": activeConns,
		"cpu_percent":        cpuPercent,
		"memory_percent":     v.UsedPercent,
		"memory_used":        fmt.Sprintf("%.1f GB", float64(v.Used)/1024/1024/1024),
		"memory_total":       fmt.Sprintf("%.1f GB", float64(v.Total)/1024/1024/1024),
		"disk_percent":       d.UsedPercent,
		"disk_used":          fmt.Sprintf("%.1f GB", float64(d.Used)/1024/1024/1024),
		"disk_total":         fmt.Sprintf("%.1f GB", float64(d.Total)/1024/1024/1024),
	})
}

// GetAPIAnalytics returns request volume, latency and error rate over a range
// GET /api/monitoring/api-analytics?range=24h
func (h *MonitoringHandler) GetAPIAnalytics(w http.ResponseWriter, r *http.Request) {
	duration := 24 * time.Hour
	if d := r.URL.Query().Get("range"); d != "" {
		if pd, err := time.ParseDuration(d); err == nil {
			duration = pd
		}
	}

	summary, err := h.store.GetAPISummary(duration)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cpuTrend, err := h.store.GetCPUTrend(duration)
	if err != nil {
		// Return empty slice if no data yet
		cpuTrend = []monitoring.TimePoint{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary":   summary,
		"cpu_trend": cpuTrend,
	})
}

// GetNodeMetricsHistory returns historical system metrics for charts
// GET /api/monitoring/history?range=1h
func (h *MonitoringHandler) GetNodeMetricsHistory(w http.ResponseWriter, r *http.Request) {
	duration := 1 * time.Hour
	if d := r.URL.Query().Get("range"); d != "" {
		if pd, err := time.ParseDuration(d); err == nil {
			duration = pd
		}
	}

	cpuTrend, err := h.store.GetCPUTrend(duration)
	if err != nil {
		cpuTrend = []monitoring.TimePoint{}
	}

	memTrend, err := h.store.GetMemoryTrend(duration)
	if err != nil {
		memTrend = []monitoring.TimePoint{}
	}

	diskTrend, err := h.store.GetDiskTrend(duration)
	if err != nil {
		diskTrend = []monitoring.TimePoint{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cpu":  cpuTrend,
		"mem":  memTrend,
		"disk": diskTrend,
	})
}

// GetRecentAPILogs returns recent request logs, optionally errors only
// GET /api/monitoring/logs?range=24h&errors_only=true&limit=50&offset=0
func (h *MonitoringHandler) GetRecentAPILogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		fmt.Sscanf(l, "%d", &limit)
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		fmt.Sscanf(o, "%d", &offset)
	}

	duration := 24 * time.Hour
	if d := r.URL.Query().Get("range"); d != "" {
		if pd, err := time.ParseDuration(d); err == nil {
			duration = pd
		}
	}

	errorsOnly := r.URL.Query().Get("errors_only") == "true"

	logs, err := h.store.GetAPILogs(duration, errorsOnly, limit, offset)
	if err != nil || logs == nil {
		logs = []monitoring.APILog{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}
