// Package domain defines the response payloads served by the API.
package domain

import "time"

// ServiceName identifies this backend in health responses.
const ServiceName = "caloriai-backend"

// HealthStatus is the status word reported by the health endpoint.
type HealthStatus string

const (
	HealthStatusOK          HealthStatus = "ok"
	HealthStatusDegraded    HealthStatus = "degraded"
	HealthStatusUnavailable HealthStatus = "unavailable"
)

// IsValid reports whether s is one of the known status tokens.
func (s HealthStatus) IsValid() bool {
	switch s {
	case HealthStatusOK, HealthStatusDegraded, HealthStatusUnavailable:
		return true
	default:
		return false
	}
}

// HealthResponse is the body of GET {prefix}/health.
type HealthResponse struct {
	Status    HealthStatus `json:"status"`
	Service   string       `json:"service"`
	Timestamp time.Time    `json:"timestamp"`
}
