package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/domain"
)

func TestHealthStatus_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.HealthStatusOK.IsValid())
	assert.True(t, domain.HealthStatusDegraded.IsValid())
	assert.True(t, domain.HealthStatusUnavailable.IsValid())
	assert.False(t, domain.HealthStatus("healthy").IsValid())
	assert.False(t, domain.HealthStatus("").IsValid())
}

func TestHealthResponse_JSONShape(t *testing.T) {
	t.Parallel()

	resp := domain.HealthResponse{
		Status:    domain.HealthStatusOK,
		Service:   domain.ServiceName,
		Timestamp: time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC),
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","service":"caloriai-backend","timestamp":"2026-10-14T09:30:00Z"}`, string(data))
}

func TestVersionResponse_JSONShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(domain.VersionResponse{Version: "0.1.0"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"0.1.0"}`, string(data))
}
