package models

// Health statuses reported by the health check aggregator.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Dependency statuses reported for individual probed services.
const (
	ServiceUp       = "up"
	ServiceDown     = "down"
	ServiceDegraded = "degraded"
)

// HealthCheckResponse is the payload of the /health endpoints.
// Services and System are populated only by the comprehensive and detailed
// checks respectively.
type HealthCheckResponse struct {
	Status      string                   `json:"status"`
	Timestamp   string                   `json:"timestamp"`
	Uptime      int64                    `json:"uptime"`
	Version     string                   `json:"version"`
	Environment string                   `json:"environment"`
	Services    map[string]ServiceHealth `json:"services,omitempty"`
	System      *SystemMetrics           `json:"system,omitempty"`
}

// ServiceHealth is the recorded outcome of a single dependency probe.
type ServiceHealth struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	ResponseTime int64  `json:"responseTime"`
	LastChecked  string `json:"lastChecked"`
}

// SystemMetrics is the system snapshot embedded in the detailed health
// check. Memory figures are megabytes.
type SystemMetrics struct {
	Memory  MemoryMetrics  `json:"memory"`
	CPU     CPUMetrics     `json:"cpu"`
	Process ProcessMetrics `json:"process"`
}

// MemoryMetrics reports host memory usage in megabytes.
type MemoryMetrics struct {
	Used       uint64  `json:"used"`
	Total      uint64  `json:"total"`
	Percentage float64 `json:"percentage"`
}

// CPUMetrics reports aggregate CPU usage across all cores.
type CPUMetrics struct {
	Usage float64 `json:"usage"`
	Cores int     `json:"cores"`
}

// ProcessMetrics reports process-level counters.
type ProcessMetrics struct {
	Uptime int64 `json:"uptime"`
	PID    int   `json:"pid"`
}
