// Package service builds the API response payloads.
package service

import (
	"time"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/domain"
)

// BuildHealthResponse reports the service as ok at now, normalised to UTC.
func BuildHealthResponse(now time.Time) domain.HealthResponse {
	return domain.HealthResponse{
		Status:    domain.HealthStatusOK,
		Service:   domain.ServiceName,
		Timestamp: now.UTC(),
	}
}

// BuildVersionResponse copies version verbatim.
func BuildVersionResponse(version string) domain.VersionResponse {
	return domain.VersionResponse{Version: version}
}
