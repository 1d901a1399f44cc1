// File: internal/scenes/rainbow.go
package scenes

import (
	"github.com/voxelfleet/cuberenderer/internal/controller"
	"github.com/voxelfleet/cuberenderer/internal/raster"
	"github.com/voxelfleet/cuberenderer/internal/scene"
)

// Rainbow sweeps a hue cycle through the z axis over time. Supplemental
// scene grounded on original_source/rainbow_scene.py, reimplemented on
// internal/raster's HSVToRGB.
type Rainbow struct {
	// CyclesPerSecond controls how fast the hue sweep rotates.
	CyclesPerSecond float64
}

// NewRainbowProducer returns a scene.Producer for a Rainbow scene.
func NewRainbowProducer(cyclesPerSecond float64) scene.Producer {
	return func() scene.Scene {
		return &Rainbow{CyclesPerSecond: cyclesPerSecond}
	}
}

func (r *Rainbow) Render(ras *raster.Raster, t float64) {
	w, h, l := ras.Dimensions()
	phase := t * r.CyclesPerSecond
	for z := 0; z < int(l); z++ {
		hueFrac := phase + float64(z)/float64(l)
		hueFrac -= float64(int(hueFrac))
		hue := uint8(hueFrac * 255)
		color := raster.HSVToRGB(raster.HSV{H: hue, S: 255, V: 255})
		for y := 0; y < int(h); y++ {
			for x := 0; x < int(w); x++ {
				_ = ras.SetPix(x, y, z, color)
			}
		}
	}
}

func (r *Rainbow) UpdateControllerDisplay(session controller.SessionHandle, playerID string) {
	session.ClearLCD()
	session.WriteLCD(0, 0, "rainbow")
	session.CommitLCD()
}

func (r *Rainbow) Cleanup() {}
