package database

import (
	"context"
	"log/slog"
	"time"
)

type HealthCheck struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	Error        string        `json:"error,omitempty"`
	OpenConns    int           `json:"open_connections"`
	InUse        int           `json:"in_use"`
	Timestamp    time.Time     `json:"timestamp"`
}

func (db *DB) Health(ctx context.Context) HealthCheck {
	start := time.Now()
	stats := db.Stats()
	hc := HealthCheck{
		Timestamp: start,
		OpenConns: stats.OpenConnections,
		InUse:     stats.InUse,
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := db.PingContext(pingCtx)
	hc.ResponseTime = time.Since(start)

	if err != nil {
		hc.Status = "unhealthy"
		hc.Error = err.Error()
		slog.Error("Database health check failed", "error", err)
	} else {
		hc.Status = "healthy"
	}

	return hc
}
