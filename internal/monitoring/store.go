package monitoring

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists system and API metrics in plain Postgres tables. Rows are
// indexed by time; trend queries bucket by minute.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	store := &Store{pool: pool}
	if err := store.Init(); err != nil {
		log.Printf("[Monitoring] Metrics storage initialization failed: %v", err)
	} else {
		log.Println("[Monitoring] Metrics storage initialized")
	}
	return store
}

func (s *Store) Init() error {
	ctx := context.Background()

	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS metrics_system (
			time        TIMESTAMPTZ NOT NULL,
			cpu_percent DOUBLE PRECISION,
			mem_used    BIGINT,
			mem_total   BIGINT,
			disk_used   BIGINT,
			disk_total  BIGINT
		);
		CREATE INDEX IF NOT EXISTS idx_metrics_system_time ON metrics_system (time DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to create metrics_system table: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS metrics_api (
			time        TIMESTAMPTZ NOT NULL,
			method      TEXT,
			path        TEXT,
			status_code INTEGER,
			duration_ms DOUBLE PRECISION,
			ip_address  TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_metrics_api_time ON metrics_api (time DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to create metrics_api table: %w", err)
	}

	return nil
}

func (s *Store) RecordSystemMetrics(cpu float64, memUsed, memTotal, diskUsed, diskTotal uint64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO metrics_system (time, cpu_percent, mem_used, mem_total, disk_used, disk_total)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, time.Now(), cpu, memUsed, memTotal, diskUsed, diskTotal)

	return err
}

func (s *Store) RecordAPIMetric(method, path string, status int, duration time.Duration, ip string) {
	// Run in background to not block the request
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_, err := s.pool.Exec(ctx, `
			INSERT INTO metrics_api (time, method, path, status_code, duration_ms, ip_address)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, time.Now(), method, path, status, float64(duration.Milliseconds()), ip)

		if err != nil {
			log.Printf("[Monitoring] Failed to record API metric: %v", err)
		}
	}()
}

// Analytics queries

type APISummary struct {
	TotalRequests int64   `json:"total_requests"`
	AvgDuration   float64 `json:"avg_duration"`
	ErrorRate     float64 `json:"error_rate"`
}

type TimePoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

func (s *Store) GetAPISummary(duration time.Duration) (APISummary, error) {
	ctx := context.Background()
	var summary APISummary

	err := s.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) as total,
			COALESCE(AVG(duration_ms), 0) as avg_lat,
			COALESCE(SUM(CASE WHEN status_code >= 500 THEN 1 ELSE 0 END)::float / NULLIF(COUNT(*), 0), 0) as err_rate
		FROM metrics_api
		WHERE time > NOW() - $1::interval
	`, duration.String()).Scan(&summary.TotalRequests, &summary.AvgDuration, &summary.ErrorRate)

	return summary, err
}

func (s *Store) GetCPUTrend(duration time.Duration) ([]TimePoint, error) {
	return s.trend(`AVG(cpu_percent)`, duration)
}

func (s *Store) GetMemoryTrend(duration time.Duration) ([]TimePoint, error) {
	return s.trend(`AVG(mem_used::float / NULLIF(mem_total, 0) * 100)`, duration)
}

func (s *Store) GetDiskTrend(duration time.Duration) ([]TimePoint, error) {
	return s.trend(`AVG(disk_used::float / NULLIF(disk_total, 0) * 100)`, duration)
}

func (s *Store) trend(expr string, duration time.Duration) ([]TimePoint, error) {
	ctx := context.Background()
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT date_trunc('minute', time) as bucket, %s
		FROM metrics_system
		WHERE time > NOW() - $1::interval
		GROUP BY bucket
		ORDER BY bucket
	`, expr), duration.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []TimePoint
	for rows.Next() {
		var p TimePoint
		if err := rows.Scan(&p.Time, &p.Value); err != nil {
			continue
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// APILog represents a single API request log
type APILog struct {
	Time       time.Time `json:"time"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	Duration   float64   `json:"duration_ms"`
	IPAddress  string    `json:"ip_address"`
}

func (s *Store) GetAPILogs(duration time.Duration, errorsOnly bool, limit, offset int) ([]APILog, error) {
	ctx := context.Background()

	query := `
		SELECT time, method, path, status_code, duration_ms, ip_address
		FROM metrics_api
		WHERE time > NOW() - $1::interval
	`
	if errorsOnly {
		query += " AND status_code >= 400"
	}
	query += " ORDER BY time DESC LIMIT $2 OFFSET $3"

	rows, err := s.pool.Query(ctx, query, duration.String(), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []APILog
	for rows.Next() {
		var l APILog
		if err := rows.Scan(&l.Time, &l.Method, &l.Path, &l.StatusCode, &l.Duration, &l.IPAddress); err != nil {
			continue
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
