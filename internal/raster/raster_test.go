// File: internal/raster/raster_test.go
package raster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfleet/cuberenderer/internal/errs"
	"github.com/voxelfleet/cuberenderer/internal/raster"
)

func TestSetPixThenGetPixRoundTrips(t *testing.T) {
	r := raster.New(4, 5, 6, raster.DefaultOrientation)
	want := raster.RGB{R: 10, G: 20, B: 30}
	require.NoError(t, r.SetPix(1, 2, 3, want))

	got, err := r.GetPix(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestClearZeroesEveryPixel(t *testing.T) {
	r := raster.New(3, 3, 3, raster.DefaultOrientation)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				require.NoError(t, r.SetPix(x, y, z, raster.RGB{R: 1, G: 2, B: 3}))
			}
		}
	}
	r.Clear()
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				got, err := r.GetPix(x, y, z)
				require.NoError(t, err)
				assert.Equal(t, raster.RGB{}, got)
			}
		}
	}
}

func TestSetPixOutOfBounds(t *testing.T) {
	r := raster.New(2, 2, 2, raster.DefaultOrientation)
	err := r.SetPix(2, 0, 0, raster.RGB{R: 255})
	assert.ErrorIs(t, err, errs.ErrOutOfBounds)

	err = r.SetPix(-1, 0, 0, raster.RGB{R: 255})
	assert.ErrorIs(t, err, errs.ErrOutOfBounds)
}

func TestOrientationAxisInversionKeepsLogicalRoundTrip(t *testing.T) {
	// Negating X means logical x=0 lands at the far storage edge, which the
	// public API cannot observe; what it can check is that two rasters with
	// opposite X orientation and the same write read back identically
	// through their own GetPix (round trip holds regardless of orientation)...
	flipped := raster.New(4, 4, 4, raster.Orientation{raster.NegX, raster.PosY, raster.PosZ})
	require.NoError(t, flipped.SetPix(0, 0, 0, raster.RGB{R: 9}))
	got, err := flipped.GetPix(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, raster.RGB{R: 9}, got)

	// ...and that under the identity orientation a write to (0,0,0) does not
	// show up at the opposite logical edge (3,0,0).
	identity := raster.New(4, 4, 4, raster.DefaultOrientation)
	require.NoError(t, identity.SetPix(0, 0, 0, raster.RGB{R: 9}))
	other, err := identity.GetPix(3, 0, 0)
	require.NoError(t, err)
	assert.NotEqual(t, raster.RGB{R: 9}, other)
}

func TestSubVolumeScaledLayerRowMajorOrder(t *testing.T) {
	r := raster.New(2, 2, 1, raster.DefaultOrientation)
	require.NoError(t, r.SetPix(0, 0, 0, raster.RGB{R: 1}))
	require.NoError(t, r.SetPix(1, 0, 0, raster.RGB{R: 2}))
	require.NoError(t, r.SetPix(0, 1, 0, raster.RGB{R: 3}))
	require.NoError(t, r.SetPix(1, 1, 0, raster.RGB{R: 4}))

	pixels := r.SubVolumeScaledLayer(0, 2, 0, 2, 0, 1.0)
	require.Len(t, pixels, 4)
	assert.Equal(t, []uint8{1, 2, 3, 4}, []uint8{pixels[0].R, pixels[1].R, pixels[2].R, pixels[3].R})
}

func TestSubVolumeScaledLayerAppliesBrightness(t *testing.T) {
	r := raster.New(1, 1, 1, raster.DefaultOrientation)
	require.NoError(t, r.SetPix(0, 0, 0, raster.RGB{R: 255}))

	pixels := r.SubVolumeScaledLayer(0, 1, 0, 1, 0, 0.5)
	require.Len(t, pixels, 1)
	assert.Equal(t, uint8(127), pixels[0].R)
}
