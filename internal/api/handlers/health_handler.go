package handlers

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/karanns19/task-manager/internal/api/respond"
)

// HealthHandler reports liveness, database connectivity and process stats.
type HealthHandler struct {
	db        *sql.DB
	startedAt time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB, startedAt time.Time) *HealthHandler {
	return &HealthHandler{db: db, startedAt: startedAt}
}

type memoryStats struct {
	RSSBytes uint64 `json:"rss_bytes"`
	VMSBytes uint64 `json:"vms_bytes"`
}

type healthStatus struct {
	Status        string       `json:"status"`
	Database      string       `json:"database"`
	UptimeSeconds float64      `json:"uptime_seconds"`
	Memory        *memoryStats `json:"memory,omitempty"`
}

// Serve handles GET /health.
func (h *HealthHandler) Serve(w http.ResponseWriter, r *http.Request) {
	health := healthStatus{
		Status:        "ok",
		Database:      "ok",
		UptimeSeconds: time.Since(h.startedAt).Seconds(),
	}

	httpStatus := http.StatusOK
	if err := h.db.Ping(); err != nil {
		log.Error().Err(err).Msg("Health check: database unreachable")
		health.Status = "degraded"
		health.Database = "unreachable"
		httpStatus = http.StatusServiceUnavailable
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mem, err := proc.MemoryInfo(); err == nil {
			health.Memory = &memoryStats{RSSBytes: mem.RSS, VMSBytes: mem.VMS}
		}
	}

	respond.Data(w, httpStatus, "", health)
}
