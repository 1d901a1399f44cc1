// File: internal/config/config_test.go
package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voxelfleet/cuberenderer/internal/config"
)

func TestDefaultTunablesAreSane(t *testing.T) {
	tn := config.Default()
	assert.Greater(t, tn.FramePeriod.Seconds(), 0.0)
	assert.Equal(t, float32(1.0), tn.Brightness)
	assert.NotEmpty(t, tn.MonitorAddr)
}

func TestFastTestConfigDisablesMonitor(t *testing.T) {
	tn := config.FastTestConfig()
	assert.Empty(t, tn.MonitorAddr)
	assert.Equal(t, 1, tn.LCDRefreshEvery)
}
