package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Close releases the pool. Safe to call more than once.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	log.Info().Str("component", "database").Msg("Closing connection pool")
	db.Pool.Close()
	db.Pool = nil
	return nil
}

// PoolStats is a snapshot of the pool, exposed by the health endpoint
type PoolStats struct {
	AcquiredConns        int32         `json:"acquired_connections"`
	IdleConns            int32         `json:"idle_connections"`
	TotalConns           int32         `json:"total_connections"`
	MaxConns             int32         `json:"max_connections"`
	AcquireCount         int64         `json:"acquire_count"`
	CanceledAcquireCount int64         `json:"canceled_acquire_count"`
	AvgAcquireDuration   time.Duration `json:"avg_acquire_duration_ns"`
}

// Stats returns nil when the pool is not connected, including on a nil receiver
func (db *PostgresDB) Stats() *PoolStats {
	if db == nil || db.Pool == nil {
		return nil
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		AcquiredConns:        raw.AcquiredConns(),
		IdleConns:            raw.IdleConns(),
		TotalConns:           raw.TotalConns(),
		MaxConns:             raw.MaxConns(),
		AcquireCount:         raw.AcquireCount(),
		CanceledAcquireCount: raw.CanceledAcquireCount(),
		AvgAcquireDuration:   calculateAvgDuration(raw.AcquireDuration(), raw.AcquireCount()),
	}
}

func calculateAvgDuration(total time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return total / time.Duration(count)
}

// MonitorPoolHealth logs pool pressure every interval until ctx is done.
// Run it in its own goroutine.
func (db *PostgresDB) MonitorPoolHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats := db.Stats()
			if stats == nil || stats.MaxConns == 0 {
				continue
			}

			utilization := float64(stats.AcquiredConns) / float64(stats.MaxConns) * 100
			if utilization > 80 {
				log.Warn().Str("component", "database").
					Float64("utilization_pct", utilization).
					Int32("acquired", stats.AcquiredConns).
					Int32("max", stats.MaxConns).
					Msg("High pool utilization")
			}

			if stats.AvgAcquireDuration > 100*time.Millisecond {
				log.Warn().Str("component", "database").
					Dur("avg_acquire", stats.AvgAcquireDuration).
					Msg("High acquire latency")
			}

		case <-ctx.Done():
			log.Debug().Str("component", "database").Msg("Stopping pool health monitoring")
			return
		}
	}
}
