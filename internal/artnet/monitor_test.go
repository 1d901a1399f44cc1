// File: internal/artnet/monitor_test.go
package artnet_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfleet/cuberenderer/internal/artnet"
)

func TestSenderMonitorStartsRoutable(t *testing.T) {
	m := artnet.NewSenderMonitor(50 * time.Millisecond)
	m.Register("1.2.3.4", 6454)
	assert.True(t, m.IsRoutable("1.2.3.4", 6454))
}

func TestSenderMonitorCoolsDownThenRecovers(t *testing.T) {
	m := artnet.NewSenderMonitor(30 * time.Millisecond)
	m.ReportFailure("1.2.3.4", 6454, errors.New("timeout"))

	assert.False(t, m.IsRoutable("1.2.3.4", 6454))

	require.Eventually(t, func() bool {
		return m.IsRoutable("1.2.3.4", 6454)
	}, time.Second, 5*time.Millisecond)
}

func TestSenderMonitorSuccessDuringCooldownDoesNotPromote(t *testing.T) {
	m := artnet.NewSenderMonitor(time.Hour)
	m.ReportFailure("1.2.3.4", 6454, errors.New("timeout"))
	m.ReportSuccess("1.2.3.4", 6454)

	assert.False(t, m.IsRoutable("1.2.3.4", 6454), "a success reported before the cooldown elapses must not promote the entry")
}

func TestSenderMonitorStatsReportsLastError(t *testing.T) {
	m := artnet.NewSenderMonitor(time.Hour)
	m.ReportFailure("5.5.5.5", 6454, errors.New("unreachable"))

	stats := m.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, "5.5.5.5", stats[0].IP)
	assert.Equal(t, artnet.Cooling, stats[0].State)
	assert.Equal(t, "unreachable", stats[0].LastError)
}

func TestSenderMonitorFrameCount(t *testing.T) {
	m := artnet.NewSenderMonitor(time.Second)
	m.ReportFrame()
	m.ReportFrame()
	assert.Equal(t, int64(2), m.FrameCount())
}

func TestSenderMonitorIndependentEndpointsDoNotShareState(t *testing.T) {
	m := artnet.NewSenderMonitor(time.Hour)
	m.ReportFailure("1.1.1.1", 6454, errors.New("a"))
	assert.True(t, m.IsRoutable("2.2.2.2", 6454), "an unrelated endpoint must remain routable")
}
