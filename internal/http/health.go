package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/clippings/internal/scheduler"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
	Sync    *scheduler.Report `json:"sync,omitempty"`
}

// HealthController reports the entry store and the clippings sync.
// A failed store makes the service unhealthy (503); a failed last sync only
// degrades it.
type HealthController struct {
	db      Pinger
	sync    SyncService
	version string
}

func NewHealthController(db Pinger, sync SyncService, version string) *HealthController {
	return &HealthController{
		db:      db,
		sync:    sync,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:  statusHealthy,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  map[string]string{"database": "not configured"},
	}

	if h.sync != nil {
		report := h.sync.Report()
		health.Sync = &report
		health.Checks["clippings_sync"] = syncCheck(report)
		if report.LastRun != nil && !report.LastRun.Success {
			health.Status = statusDegraded
		}
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			health.Checks["database"] = "error: " + err.Error()
			health.Status = statusUnhealthy
		} else {
			health.Checks["database"] = "ok"
		}
	}

	statusCode := http.StatusOK
	if health.Status == statusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func syncCheck(report scheduler.Report) string {
	switch {
	case !report.Enabled:
		return "disabled"
	case report.LastRun != nil && !report.LastRun.Success:
		return "error: " + report.LastRun.Message
	case report.Running:
		return "ok"
	default:
		return "stopped"
	}
}
