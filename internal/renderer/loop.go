// File: internal/renderer/loop.go
package renderer

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/voxelfleet/cuberenderer/internal/artnet"
	"github.com/voxelfleet/cuberenderer/internal/config"
	"github.com/voxelfleet/cuberenderer/internal/controller"
	"github.com/voxelfleet/cuberenderer/internal/raster"
	"github.com/voxelfleet/cuberenderer/internal/scene"
)

// Loop drives the two cadences spec.md section 5 splits apart: domain A
// (frame render + ArtNet emit, on its own goroutine so a stalled socket
// never stalls the reactor) and domain B (LCD refresh, dispatched into the
// controller actors' mailboxes on a slower cadence). Grounded on
// game_actor_lifecycle.go's startTickers/stopTickers dual-ticker pattern,
// collapsed from "two tickers feeding one actor's mailbox" to "two tickers
// each doing their own domain's work directly" since there is no single
// renderer actor here.
type Loop struct {
	world    *raster.Raster
	fanOut   *artnet.FanOut
	monitor  *artnet.SenderMonitor // nil disables frame accounting
	registry *controller.Registry  // nil disables LCD refresh
	scn      scene.Scene
	tunables config.Tunables
	players  []string

	tickerMu     sync.Mutex
	frameTicker  *time.Ticker
	lcdTicker    *time.Ticker
	stopFrameCh  chan struct{}
	stopLCDCh    chan struct{}
	wg           sync.WaitGroup
	stopOnce     sync.Once

	frameCount   atomic.Int64
	missedFrames atomic.Int64
	start        time.Time
	started      atomic.Bool
}

// New builds a Loop. scn is the active top-level scene (typically a
// *lobby.MetaScene); players lists every player id the LCD refresh pass
// should visit each cycle.
func New(world *raster.Raster, fanOut *artnet.FanOut, monitor *artnet.SenderMonitor, registry *controller.Registry, scn scene.Scene, tunables config.Tunables, players []string) *Loop {
	return &Loop{
		world:       world,
		fanOut:      fanOut,
		monitor:     monitor,
		registry:    registry,
		scn:         scn,
		tunables:    tunables,
		players:     players,
		stopFrameCh: make(chan struct{}),
		stopLCDCh:   make(chan struct{}),
	}
}

// Start launches the frame and LCD-refresh goroutines. Safe to call once;
// a second call is a no-op.
func (l *Loop) Start() {
	l.tickerMu.Lock()
	defer l.tickerMu.Unlock()
	if l.frameTicker != nil {
		return
	}

	l.frameTicker = time.NewTicker(l.tunables.FramePeriod)
	l.wg.Add(1)
	go l.runFrameLoop()

	if l.tunables.LCDRefreshEvery > 0 && l.registry != nil {
		interval := l.tunables.FramePeriod * time.Duration(l.tunables.LCDRefreshEvery)
		l.lcdTicker = time.NewTicker(interval)
		l.wg.Add(1)
		go l.runLCDLoop()
	}
}

func (l *Loop) runFrameLoop() {
	defer l.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC recovered in renderer frame loop: %v\n", r)
		}
	}()

	for {
		select {
		case <-l.stopFrameCh:
			return
		case tick, ok := <-l.frameTicker.C:
			if !ok {
				return
			}
			l.renderOneFrame(tick)
		}
	}
}

func (l *Loop) renderOneFrame(tick time.Time) {
	if l.started.CompareAndSwap(false, true) {
		l.start = tick
	}
	t := tick.Sub(l.start).Seconds()

	l.scn.Render(l.world, t)
	l.fanOut.Emit(l.world)
	if l.monitor != nil {
		l.monitor.ReportFrame()
	}
	l.frameCount.Add(1)

	if deadline := tick.Add(l.tunables.FramePeriod); time.Now().After(deadline) {
		l.missedFrames.Add(1)
	}
}

func (l *Loop) runLCDLoop() {
	defer l.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC recovered in renderer LCD loop: %v\n", r)
		}
	}()

	for {
		select {
		case <-l.stopLCDCh:
			return
		case _, ok := <-l.lcdTicker.C:
			if !ok {
				return
			}
			l.refreshDisplays()
		}
	}
}

func (l *Loop) refreshDisplays() {
	for _, playerID := range l.players {
		handle, ok := l.registry.SessionFor(playerID)
		if !ok {
			continue
		}
		l.scn.UpdateControllerDisplay(handle, playerID)
	}
}

// Stop halts both goroutines and waits for them to exit. Safe to call more
// than once; only the first call has effect.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.tickerMu.Lock()
		if l.frameTicker != nil {
			l.frameTicker.Stop()
		}
		if l.lcdTicker != nil {
			l.lcdTicker.Stop()
		}
		l.tickerMu.Unlock()
		close(l.stopFrameCh)
		close(l.stopLCDCh)
	})
	l.wg.Wait()
}

// FrameCount returns the number of frames rendered so far.
func (l *Loop) FrameCount() int64 {
	return l.frameCount.Load()
}

// MissedFrames returns how many frames took longer than FramePeriod to
// render and emit, a coarse overrun counter. The monitor's HTTP endpoints
// do not read it.
func (l *Loop) MissedFrames() int64 {
	return l.missedFrames.Load()
}

// RenderOnce drives exactly one frame synchronously, bypassing the
// tickers. Used by tests and by a future single-shot preview mode.
func (l *Loop) RenderOnce(t time.Time) {
	l.renderOneFrame(t)
}
