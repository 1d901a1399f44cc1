// File: internal/monitor/ascii.go
package monitor

import (
	"fmt"
	"strings"

	"github.com/voxelfleet/cuberenderer/internal/raster"
)

// asciiChars maps grayscale brightness (lighter to darker) to a character,
// carried over unchanged from render/ascii.go.
const asciiChars = " .,:;i1tfLCG08@"

const grayFactor = 255.0 / float64(len(asciiChars)-1)

func rgbToGray(c raster.RGB) uint8 {
	return uint8((uint16(c.R) + uint16(c.G) + uint16(c.B)) / 3)
}

func grayToAscii(gray uint8) string {
	index := int(float64(gray) / grayFactor)
	if index >= len(asciiChars) {
		index = len(asciiChars) - 1
	}
	return string(asciiChars[index])
}

func rgbToAnsi(c raster.RGB) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// RenderLayerASCII renders logical z-layer z of r as ANSI-colored ASCII
// art, one character per voxel (no downsampling — cube layers are small
// enough that a direct 1:1 mapping stays readable, unlike the teacher's
// 2-D pong canvas preview that downsampled to a fixed terminal width).
// Returns false if z is out of range.
func RenderLayerASCII(r *raster.Raster, z int) (string, bool) {
	layer := r.Layer(z)
	if layer == nil {
		return "", false
	}
	var out strings.Builder
	for _, row := range layer {
		for _, px := range row {
			gray := rgbToGray(px)
			out.WriteString(rgbToAnsi(px))
			out.WriteString(grayToAscii(gray))
			out.WriteString("\033[0m")
		}
		out.WriteString("\n")
	}
	return out.String(), true
}
