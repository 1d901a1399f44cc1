// File: internal/raster/raster.go
package raster

import "github.com/voxelfleet/cuberenderer/internal/errs"

// Axis names one signed source axis an output coordinate is read from.
type Axis int

const (
	PosX Axis = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// Orientation is the permutation (with optional per-axis sign inversion)
// applied to caller coordinates before they address storage. Orientation[0]
// supplies the storage X coordinate, Orientation[1] the storage Y, and
// Orientation[2] the storage Z.
type Orientation [3]Axis

// DefaultOrientation is the identity transform: +X, +Y, +Z.
var DefaultOrientation = Orientation{PosX, PosY, PosZ}

// Raster is a W x H x L RGB voxel buffer. Construction fixes its dimensions
// and orientation; set_pix/get_pix/clear are the only mutators, and clear
// is the only way to reset a raster between uses. Brightness is never
// applied here — it is an emission-time concern of the fan-out, so the
// raster always holds the clean ground truth the scene wrote.
type Raster struct {
	width, height, length uint16
	orientation           Orientation
	pixels                []RGB
}

// New allocates a Raster of the given dimensions with the given orientation.
func New(width, height, length uint16, orientation Orientation) *Raster {
	return &Raster{
		width:       width,
		height:      height,
		length:      length,
		orientation: orientation,
		pixels:      make([]RGB, int(width)*int(height)*int(length)),
	}
}

// Dimensions returns the raster's (width, height, length).
func (r *Raster) Dimensions() (uint16, uint16, uint16) {
	return r.width, r.height, r.length
}

// axisDim returns the caller-space dimension associated with a source axis.
func (r *Raster) axisDim(a Axis) int {
	switch a {
	case PosX, NegX:
		return int(r.width)
	case PosY, NegY:
		return int(r.height)
	case PosZ, NegZ:
		return int(r.length)
	}
	return 0
}

// axisCoord reads the caller coordinate an axis selector refers to.
func axisCoord(a Axis, x, y, z int) int {
	switch a {
	case PosX, NegX:
		return x
	case PosY, NegY:
		return y
	case PosZ, NegZ:
		return z
	}
	return 0
}

func isNegative(a Axis) bool {
	return a == NegX || a == NegY || a == NegZ
}

// transform maps caller-space (x,y,z) onto storage-space (sx,sy,sz)
// according to the raster's orientation.
func (r *Raster) transform(x, y, z int) (sx, sy, sz int) {
	out := [3]int{}
	for i, axis := range r.orientation {
		c := axisCoord(axis, x, y, z)
		if isNegative(axis) {
			c = r.axisDim(axis) - 1 - c
		}
		out[i] = c
	}
	return out[0], out[1], out[2]
}

func (r *Raster) index(sx, sy, sz int) int {
	return sz*int(r.height)*int(r.width) + sy*int(r.width) + sx
}

func (r *Raster) inBounds(x, y, z int) bool {
	return x >= 0 && x < int(r.width) &&
		y >= 0 && y < int(r.height) &&
		z >= 0 && z < int(r.length)
}

// SetPix writes c at logical (x,y,z). Returns errs.ErrOutOfBounds for
// coordinates outside [0,W)x[0,H)x[0,L); the raster is left unchanged.
func (r *Raster) SetPix(x, y, z int, c RGB) error {
	if !r.inBounds(x, y, z) {
		return errs.ErrOutOfBounds
	}
	sx, sy, sz := r.transform(x, y, z)
	r.pixels[r.index(sx, sy, sz)] = c
	return nil
}

// GetPix reads the color at logical (x,y,z).
func (r *Raster) GetPix(x, y, z int) (RGB, error) {
	if !r.inBounds(x, y, z) {
		return RGB{}, errs.ErrOutOfBounds
	}
	sx, sy, sz := r.transform(x, y, z)
	return r.pixels[r.index(sx, sy, sz)], nil
}

// Clear zeroes every pixel.
func (r *Raster) Clear() {
	for i := range r.pixels {
		r.pixels[i] = RGB{}
	}
}

// Layer returns a read-only [height][width]RGB view of logical z-layer z,
// read through GetPix so callers never need to know about the orientation
// transform. Used by the monitor's ASCII preview.
func (r *Raster) Layer(z int) [][]RGB {
	if z < 0 || z >= int(r.length) {
		return nil
	}
	out := make([][]RGB, r.height)
	for y := 0; y < int(r.height); y++ {
		row := make([]RGB, r.width)
		for x := 0; x < int(r.width); x++ {
			row[x], _ = r.GetPix(x, y, z)
		}
		out[y] = row
	}
	return out
}

// SubVolumeScaledLayer extracts the logical [x0,x1) x [y0,y1) window of
// logical z-layer z, brightness-scaled, in row-major (y outer, x inner)
// order — the order spec.md section 4.3 requires before slicing into
// per-universe chunks. This is the primitive the fan-out uses to pull one
// cube's one layer out of the shared world raster.
func (r *Raster) SubVolumeScaledLayer(x0, x1, y0, y1, z int, brightness float32) []RGB {
	width := x1 - x0
	height := y1 - y0
	if width <= 0 || height <= 0 {
		return nil
	}
	out := make([]RGB, 0, width*height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px, err := r.GetPix(x, y, z)
			if err != nil {
				out = append(out, RGB{})
				continue
			}
			out = append(out, RGB{
				R: scaleChannel(px.R, brightness),
				G: scaleChannel(px.G, brightness),
				B: scaleChannel(px.B, brightness),
			})
		}
	}
	return out
}
