// File: internal/config/config.go
package config

import "time"

// Tunables holds the knobs that are not part of the world-geometry
// document: frame cadence, brightness, and monitor cooldown. Grounded on
// utils.Config's Default()/FastGameConfig() shape — a small struct with a
// couple of named constructors rather than a pile of flag defaults spread
// across main.go.
type Tunables struct {
	FramePeriod     time.Duration
	LCDRefreshEvery int // dispatch an LCD refresh pass every N frames
	Brightness      float32
	SenderCooldown  time.Duration
	MonitorAddr     string        // empty disables the HTTP monitor
	ShutdownTimeout time.Duration // hard deadline for the actor engine to join on exit
}

// Default returns the tunables a production renderer process starts with:
// 30Hz frame cadence, LCD refreshed every 10 frames, full brightness, a
// 2-second sender cooldown, monitor on :8090, and a 3-second shutdown
// deadline.
func Default() Tunables {
	return Tunables{
		FramePeriod:     time.Second / 30,
		LCDRefreshEvery: 10,
		Brightness:      1.0,
		SenderCooldown:  2 * time.Second,
		MonitorAddr:     ":8090",
		ShutdownTimeout: 3 * time.Second,
	}
}

// FastTestConfig returns tunables tuned for unit/integration tests: a short
// frame period and cooldown so tests don't sit idle waiting on timers, and
// the HTTP monitor disabled.
func FastTestConfig() Tunables {
	return Tunables{
		FramePeriod:     time.Millisecond,
		LCDRefreshEvery: 1,
		Brightness:      1.0,
		SenderCooldown:  10 * time.Millisecond,
		MonitorAddr:     "",
		ShutdownTimeout: 100 * time.Millisecond,
	}
}
