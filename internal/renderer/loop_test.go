// File: internal/renderer/loop_test.go
package renderer_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfleet/cuberenderer/internal/artnet"
	"github.com/voxelfleet/cuberenderer/internal/config"
	"github.com/voxelfleet/cuberenderer/internal/controller"
	"github.com/voxelfleet/cuberenderer/internal/raster"
	"github.com/voxelfleet/cuberenderer/internal/renderer"
)

type countingSender struct {
	mu   sync.Mutex
	sent int
}

func (s *countingSender) SendTo(ip string, port uint16, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent++
	return nil
}

func (s *countingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent
}

type recordingScene struct {
	mu        sync.Mutex
	renders   []float64
	displays  int
}

func (s *recordingScene) Render(r *raster.Raster, t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renders = append(s.renders, t)
}

func (s *recordingScene) UpdateControllerDisplay(session controller.SessionHandle, playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displays++
}

func (s *recordingScene) Cleanup() {}

func (s *recordingScene) renderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.renders)
}

func newTestLoop(scn *recordingScene, registry *controller.Registry, players []string) *renderer.Loop {
	world := raster.New(2, 2, 1, raster.DefaultOrientation)
	route := artnet.DefaultRoute("10.0.0.1", 6454, 0, 2, 2, 1)
	cube := artnet.Cube{GridPosition: [3]uint16{0, 0, 0}, Routes: []artnet.Route{route}}
	monitor := artnet.NewSenderMonitor(10 * time.Millisecond)
	sender := &countingSender{}
	fo := artnet.NewFanOut([]artnet.Cube{cube}, [3]uint16{2, 2, 1}, monitor, sender, 1.0)

	return renderer.New(world, fo, monitor, registry, scn, config.FastTestConfig(), players)
}

func TestRenderOnceDrivesSceneAndEmitsFrame(t *testing.T) {
	scn := &recordingScene{}
	loop := newTestLoop(scn, nil, nil)

	loop.RenderOnce(time.Now())
	loop.RenderOnce(time.Now().Add(time.Millisecond))

	assert.Equal(t, int64(2), loop.FrameCount())
	require.Equal(t, 2, scn.renderCount())
	assert.Equal(t, 0.0, scn.renders[0], "first frame's t must be zero relative to its own start")
	assert.Greater(t, scn.renders[1], 0.0)
}

func TestStartAndStopRunsFrameLoopOnFramePeriodCadence(t *testing.T) {
	scn := &recordingScene{}
	loop := newTestLoop(scn, nil, nil)

	loop.Start()
	require.Eventually(t, func() bool {
		return loop.FrameCount() > 5
	}, time.Second, time.Millisecond)
	loop.Stop()

	framesAtStop := loop.FrameCount()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, framesAtStop, loop.FrameCount(), "no frames must render after Stop returns")
}

func TestLCDRefreshSkippedWithoutRegistry(t *testing.T) {
	scn := &recordingScene{}
	loop := newTestLoop(scn, nil, []string{"P1"})

	loop.Start()
	time.Sleep(20 * time.Millisecond)
	loop.Stop()

	assert.Equal(t, 0, scn.displays, "no registry means the LCD loop never starts")
}
