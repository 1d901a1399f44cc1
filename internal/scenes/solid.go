// File: internal/scenes/solid.go
package scenes

import (
	"github.com/voxelfleet/cuberenderer/internal/controller"
	"github.com/voxelfleet/cuberenderer/internal/raster"
	"github.com/voxelfleet/cuberenderer/internal/scene"
)

// Solid fills the entire raster with one fixed color every frame.
// Supplemental scene grounded on original_source/full_white_scene.py —
// the simplest possible Scene, useful for brightness/wiring smoke tests
// without pulling in the lobby or any game package.
type Solid struct {
	Color raster.RGB
}

// NewSolidProducer returns a scene.Producer for a Solid scene of the given
// color.
func NewSolidProducer(color raster.RGB) scene.Producer {
	return func() scene.Scene {
		return &Solid{Color: color}
	}
}

func (s *Solid) Render(r *raster.Raster, t float64) {
	w, h, l := r.Dimensions()
	for z := 0; z < int(l); z++ {
		for y := 0; y < int(h); y++ {
			for x := 0; x < int(w); x++ {
				_ = r.SetPix(x, y, z, s.Color)
			}
		}
	}
}

func (s *Solid) UpdateControllerDisplay(session controller.SessionHandle, playerID string) {
	session.ClearLCD()
	session.WriteLCD(0, 0, "solid")
	session.CommitLCD()
}

func (s *Solid) Cleanup() {}
