// File: internal/artnet/fanout.go
package artnet

import (
	"github.com/voxelfleet/cuberenderer/internal/raster"
)

// Route maps a contiguous run of a cube's local z-layers onto a contiguous
// run of ArtNet universes at one endpoint.
type Route struct {
	IP                string
	Port              uint16
	BaseUniverse      uint16
	UniversesPerLayer uint16
	ZIndices          []uint16
}

// Cube is one physical display unit: its tile position in the world grid,
// and the routes that carry its layers to physical controllers. A cube may
// have more than one Route (e.g. split across two controller boards).
type Cube struct {
	GridPosition [3]uint16
	Routes       []Route
}

// Sender transmits one UDP datagram to an endpoint. Production code backs
// this with *netio.Socket; tests back it with an in-memory recorder.
type Sender interface {
	SendTo(ip string, port uint16, payload []byte) error
}

// Routability is consulted by FanOut before it transmits to a given
// endpoint; satisfied by *SenderMonitor.
type Routability interface {
	IsRoutable(ip string, port uint16) bool
	ReportSuccess(ip string, port uint16)
	ReportFailure(ip string, port uint16, err error)
}

// FanOut walks a world Raster and turns it into the DMX/Sync datagram
// stream spec.md section 4.3 describes: per cube, per route, per local
// z-layer in route order, sliced into <=170-pixel chunks addressed to
// consecutive universes, followed by one Sync per route that was routable
// (so a single-route cube gets exactly one Sync).
type FanOut struct {
	cubes      []Cube
	cubeDim    [3]uint16
	monitor    Routability
	sender     Sender
	brightness float32
}

// NewFanOut builds a fan-out over cubes of uniform dimensions cubeDim
// (width, height, length). brightness is the global channel multiplier
// applied at emission time (never stored in the raster itself).
func NewFanOut(cubes []Cube, cubeDim [3]uint16, monitor Routability, sender Sender, brightness float32) *FanOut {
	return &FanOut{
		cubes:      cubes,
		cubeDim:    cubeDim,
		monitor:    monitor,
		sender:     sender,
		brightness: brightness,
	}
}

// SetBrightness updates the channel multiplier applied on subsequent Emit
// calls; used by the renderer when brightness is adjusted at runtime.
func (f *FanOut) SetBrightness(b float32) {
	f.brightness = b
}

// Emit transmits one frame of r. A failing sendto is reported to the
// monitor and does not abort the rest of the frame; a route whose endpoint
// is not routable is skipped entirely for this tick (including its Sync).
// A routable route always gets its Sync, even if every DMX send on it
// failed this tick.
func (f *FanOut) Emit(r *raster.Raster) {
	cw, ch, cl := int(f.cubeDim[0]), int(f.cubeDim[1]), int(f.cubeDim[2])

	for _, cube := range f.cubes {
		gx, gy, gz := int(cube.GridPosition[0]), int(cube.GridPosition[1]), int(cube.GridPosition[2])
		x0, x1 := gx*cw, (gx+1)*cw
		y0, y1 := gy*ch, (gy+1)*ch

		for _, route := range cube.Routes {
			if f.monitor != nil && !f.monitor.IsRoutable(route.IP, route.Port) {
				continue
			}
			for i, zl := range route.ZIndices {
				z := gz*cl + int(zl)
				pixels := r.SubVolumeScaledLayer(x0, x1, y0, y1, z, f.brightness)
				payload := packRGB(pixels)
				for chunkIdx, chunk := range chunkBytes(payload, MaxDMXPayload) {
					universe := route.BaseUniverse + uint16(i)*route.UniversesPerLayer + uint16(chunkIdx)
					pdu := EncodeDMX(universe, chunk)
					if err := f.sender.SendTo(route.IP, route.Port, pdu); err != nil {
						if f.monitor != nil {
							f.monitor.ReportFailure(route.IP, route.Port, err)
						}
						continue
					}
					if f.monitor != nil {
						f.monitor.ReportSuccess(route.IP, route.Port)
					}
				}
			}
			if err := f.sender.SendTo(route.IP, route.Port, EncodeSync()); err != nil && f.monitor != nil {
				f.monitor.ReportFailure(route.IP, route.Port, err)
			}
		}
	}
}

func packRGB(pixels []raster.RGB) []byte {
	out := make([]byte, 0, len(pixels)*3)
	for _, p := range pixels {
		out = append(out, p.R, p.G, p.B)
	}
	return out
}

// chunkBytes splits payload into pieces of at most size bytes, each a
// whole number of RGB triplets (size is always a multiple of 3 in
// practice — MaxDMXPayload is 510).
func chunkBytes(payload []byte, size int) [][]byte {
	if len(payload) == 0 {
		return nil
	}
	var chunks [][]byte
	for len(payload) > 0 {
		n := size
		if n > len(payload) {
			n = len(payload)
		}
		chunks = append(chunks, payload[:n])
		payload = payload[n:]
	}
	return chunks
}

// DefaultRoute synthesizes the single-route layout spec.md section 6
// describes for a cube whose z_mapping is omitted in the configuration
// document: one route covering every local layer, universes assigned
// densely starting at index*universesPerCube.
func DefaultRoute(ip string, port uint16, index int, cubeWidth, cubeHeight, cubeLength uint16) Route {
	pixelsPerLayer := int(cubeWidth) * int(cubeHeight)
	universesPerLayer := (pixelsPerLayer + MaxPixelsPerUniverse - 1) / MaxPixelsPerUniverse
	universesPerCube := universesPerLayer * int(cubeLength)

	zIndices := make([]uint16, cubeLength)
	for i := range zIndices {
		zIndices[i] = uint16(i)
	}
	return Route{
		IP:                ip,
		Port:              port,
		BaseUniverse:      uint16(index * universesPerCube),
		UniversesPerLayer: uint16(universesPerLayer),
		ZIndices:          zIndices,
	}
}
