// File: internal/lobby/wireframe.go
package lobby

import (
	"math"

	"github.com/voxelfleet/cuberenderer/internal/raster"
)

// cubeEdges lists the 12 edges of a unit cube as pairs of vertex indices
// into cubeVertices.
var cubeVertices = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// renderWireframeCube draws a rotating unit wireframe cube into r, centred
// and scaled to 0.4 of r's smallest dimension, rotated by angle radians
// around the Y axis with a fixed tilt around X. Rotated corners can reach
// past r's edges; those voxels are skipped. Supplemental feature from
// original_source/game_scene.py's rotating cube, reimplemented on
// internal/raster's integer voxel grid rather than an OpenGL projection.
func renderWireframeCube(r *raster.Raster, angle float64, color raster.RGB) {
	w, h, l := r.Dimensions()
	cx, cy, cz := float64(w-1)/2, float64(h-1)/2, float64(l-1)/2
	radius := math.Min(math.Min(float64(w), float64(h)), float64(l)) * 0.4

	const tilt = 0.4 // fixed X tilt so the cube reads as 3D, not a flat square
	cosA, sinA := math.Cos(angle), math.Sin(angle)
	cosT, sinT := math.Cos(tilt), math.Sin(tilt)

	project := func(v [3]float64) (float64, float64, float64) {
		x, y, z := v[0], v[1], v[2]
		// rotate around Y
		x, z = x*cosA+z*sinA, -x*sinA+z*cosA
		// tilt around X
		y, z = y*cosT-z*sinT, y*sinT+z*cosT
		return cx + x*radius, cy + y*radius, cz + z*radius
	}

	for _, edge := range cubeEdges {
		x0, y0, z0 := project(cubeVertices[edge[0]])
		x1, y1, z1 := project(cubeVertices[edge[1]])
		drawLine(r, x0, y0, z0, x1, y1, z1, color)
	}
}

// drawLine plots a straight line between two float coordinates by
// stepping along the longer axis and rounding to the nearest voxel —
// sufficient fidelity for a small voxel cube; a true 3D Bresenham isn't
// needed at this resolution.
func drawLine(r *raster.Raster, x0, y0, z0, x1, y1, z1 float64, color raster.RGB) {
	dx, dy, dz := x1-x0, y1-y0, z1-z0
	steps := int(math.Max(math.Max(math.Abs(dx), math.Abs(dy)), math.Abs(dz)))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		x := int(math.Round(x0 + dx*frac))
		y := int(math.Round(y0 + dy*frac))
		z := int(math.Round(z0 + dz*frac))
		_ = r.SetPix(x, y, z, color)
	}
}
