// File: internal/raster/color_test.go
package raster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voxelfleet/cuberenderer/internal/raster"
)

func TestHSVToRGBPrimaries(t *testing.T) {
	red := raster.HSVToRGB(raster.HSV{H: 0, S: 255, V: 255})
	assert.Equal(t, raster.RGB{R: 255, G: 0, B: 0}, red)

	white := raster.HSVToRGB(raster.HSV{H: 128, S: 0, V: 255})
	assert.Equal(t, raster.RGB{R: 255, G: 255, B: 255}, white)

	black := raster.HSVToRGB(raster.HSV{H: 0, S: 255, V: 0})
	assert.Equal(t, raster.RGB{R: 0, G: 0, B: 0}, black)
}
