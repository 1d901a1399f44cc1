// File: internal/scene/scene.go
package scene

import (
	"github.com/voxelfleet/cuberenderer/internal/controller"
	"github.com/voxelfleet/cuberenderer/internal/raster"
)

// Scene is the contract every renderable mode satisfies: the lobby, each
// game, and the supplemental solid/rainbow scenes. Grounded on spec.md
// section 4.7.
type Scene interface {
	// Render mutates raster for the current frame. t is seconds since the
	// scene started, monotonic.
	Render(r *raster.Raster, t float64)

	// UpdateControllerDisplay writes one session's LCD back buffer and
	// commits it. Called on the renderer's LCD-refresh cadence, never on
	// every frame.
	UpdateControllerDisplay(session controller.SessionHandle, playerID string)

	// Cleanup releases any resources the scene holds. Called exactly once,
	// when the scene is replaced or the process shuts down.
	Cleanup()
}

// Producer constructs a fresh Scene instance. Grounded on
// bollywood.Producer's "factory captured at spawn time" idiom — scenes are
// instantiated on demand (e.g. when the lobby picks a game), not kept
// warm.
type Producer func() Scene
