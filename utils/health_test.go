package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthStatusHealthy(t *testing.T) {
	assert.True(t, HealthStatus{}.Healthy(), "unchecked status counts as healthy")

	now := time.Now()
	assert.True(t, HealthStatus{Mongo: true, Redis: []bool{true, true}, CheckedAt: now}.Healthy())
	assert.False(t, HealthStatus{Mongo: false, Redis: []bool{true}, CheckedAt: now}.Healthy())
	assert.False(t, HealthStatus{Mongo: true, Redis: []bool{true, false}, CheckedAt: now}.Healthy())
}

func TestGetHealthStatusReturnsLastSnapshot(t *testing.T) {
	snap := HealthStatus{Mongo: true, Redis: []bool{true}, CheckedAt: time.Now()}
	setHealthStatus(snap)
	defer setHealthStatus(HealthStatus{})

	assert.Equal(t, snap, GetHealthStatus())
}
