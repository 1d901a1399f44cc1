// File: internal/monitor/ascii_test.go
package monitor_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfleet/cuberenderer/internal/monitor"
	"github.com/voxelfleet/cuberenderer/internal/raster"
)

func TestRenderLayerASCIIProducesOneRowPerHeightLine(t *testing.T) {
	r := raster.New(3, 2, 1, raster.DefaultOrientation)
	require.NoError(t, r.SetPix(0, 0, 0, raster.RGB{R: 255, G: 255, B: 255}))

	out, ok := monitor.RenderLayerASCII(r, 0)
	require.True(t, ok)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, out, "\033[38;2;255;255;255m")
}

func TestRenderLayerASCIIRejectsOutOfRangeZ(t *testing.T) {
	r := raster.New(2, 2, 2, raster.DefaultOrientation)
	_, ok := monitor.RenderLayerASCII(r, 5)
	assert.False(t, ok)
}
