// File: internal/config/document.go
package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/voxelfleet/cuberenderer/internal/artnet"
	"github.com/voxelfleet/cuberenderer/internal/errs"
	"github.com/voxelfleet/cuberenderer/internal/raster"
)

// Endpoint is a bare (ip,port) pair, used for both route endpoints and
// controller_addresses entries.
type Endpoint struct {
	IP   string
	Port uint16
}

// Document is the fully parsed and validated configuration: world
// geometry, cube layout and routing, controller addressing, and per-scene
// DIP-to-role mappings. Grounded on spec.md section 6's "Configuration
// document" contract.
type Document struct {
	World       [3]uint16
	CubeDim     [3]uint16
	Orientation raster.Orientation
	Cubes       []artnet.Cube

	ControllerAddresses map[uint16]Endpoint
	SceneRoleToDIP      map[string]map[string]uint16
}

type rawEndpoint struct {
	IP   string `yaml:"ip"`
	Port *uint16 `yaml:"port"`
}

type rawRoute struct {
	IP                string   `yaml:"ip"`
	Port              *uint16  `yaml:"port"`
	BaseUniverse      uint16   `yaml:"base_universe"`
	UniversesPerLayer uint16   `yaml:"universes_per_layer"`
	ZIndices          []uint16 `yaml:"z_indices"`
}

type rawCube struct {
	Position [3]uint16  `yaml:"position"`
	ZMapping []rawRoute `yaml:"z_mapping"`
}

type rawSceneConfig struct {
	ControllerMapping map[string]uint16 `yaml:"controller_mapping"`
}

type rawDocument struct {
	Geometry             string                    `yaml:"geometry"`
	CubeGeometry         string                    `yaml:"cube_geometry"`
	Orientation          []string                  `yaml:"orientation"`
	Defaults             rawEndpoint               `yaml:"defaults"`
	Cubes                []rawCube                 `yaml:"cubes"`
	ControllerAddresses  map[string]rawEndpoint    `yaml:"controller_addresses"`
	Scene                map[string]rawSceneConfig `yaml:"scene"`
}

const defaultArtNetPort = 6454

// Load parses and validates a configuration document from YAML bytes.
func Load(data []byte) (*Document, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errs.NewConfigError(fmt.Sprintf("invalid yaml: %v", err))
	}
	return build(raw)
}

func build(raw rawDocument) (*Document, error) {
	worldW, worldH, worldL, err := parseWHL(raw.Geometry)
	if err != nil {
		return nil, errs.NewConfigError(fmt.Sprintf("geometry: %v", err))
	}
	cubeW, cubeH, cubeL, err := parseWHL(raw.CubeGeometry)
	if err != nil {
		return nil, errs.NewConfigError(fmt.Sprintf("cube_geometry: %v", err))
	}

	orientation, err := parseOrientation(raw.Orientation)
	if err != nil {
		return nil, err
	}

	defaultPort := uint16(defaultArtNetPort)
	if raw.Defaults.Port != nil {
		defaultPort = *raw.Defaults.Port
	}

	doc := &Document{
		World:               [3]uint16{worldW, worldH, worldL},
		CubeDim:             [3]uint16{cubeW, cubeH, cubeL},
		Orientation:         orientation,
		ControllerAddresses: map[uint16]Endpoint{},
		SceneRoleToDIP:      map[string]map[string]uint16{},
	}

	for i, rc := range raw.Cubes {
		cube := artnet.Cube{GridPosition: rc.Position}
		if len(rc.ZMapping) == 0 {
			ip := raw.Defaults.IP
			port := defaultPort
			cube.Routes = []artnet.Route{artnet.DefaultRoute(ip, port, i, cubeW, cubeH, cubeL)}
		} else {
			for _, rr := range rc.ZMapping {
				for _, zl := range rr.ZIndices {
					if zl >= cubeL {
						return nil, errs.NewConfigError(fmt.Sprintf(
							"cube %d: z_indices entry %d is out of range for cube_length %d", i, zl, cubeL))
					}
				}
				ip := rr.IP
				if ip == "" {
					ip = raw.Defaults.IP
				}
				port := defaultPort
				if rr.Port != nil {
					port = *rr.Port
				}
				cube.Routes = append(cube.Routes, artnet.Route{
					IP:                ip,
					Port:              port,
					BaseUniverse:      rr.BaseUniverse,
					UniversesPerLayer: rr.UniversesPerLayer,
					ZIndices:          rr.ZIndices,
				})
			}
		}
		doc.Cubes = append(doc.Cubes, cube)
	}

	for dipStr, ep := range raw.ControllerAddresses {
		dip, err := strconv.ParseUint(dipStr, 10, 16)
		if err != nil {
			return nil, errs.NewConfigError(fmt.Sprintf("controller_addresses: invalid dip %q", dipStr))
		}
		port := defaultPort
		if ep.Port != nil {
			port = *ep.Port
		}
		doc.ControllerAddresses[uint16(dip)] = Endpoint{IP: ep.IP, Port: port}
	}

	for sceneName, sc := range raw.Scene {
		doc.SceneRoleToDIP[sceneName] = sc.ControllerMapping
	}

	return doc, nil
}

func parseWHL(s string) (w, h, l uint16, err error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("expected WxHxL, got %q", s)
	}
	dims := make([]uint16, 3)
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 16)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("expected WxHxL, got %q", s)
		}
		dims[i] = uint16(v)
	}
	return dims[0], dims[1], dims[2], nil
}

func parseOrientation(axes []string) (raster.Orientation, error) {
	if len(axes) == 0 {
		return raster.DefaultOrientation, nil
	}
	if len(axes) != 3 {
		return raster.Orientation{}, errs.NewConfigError(
			fmt.Sprintf("orientation must name exactly 3 axes, got %d", len(axes)))
	}
	var out raster.Orientation
	for i, a := range axes {
		axis, err := parseAxis(a)
		if err != nil {
			return raster.Orientation{}, err
		}
		out[i] = axis
	}
	return out, nil
}

func parseAxis(s string) (raster.Axis, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "+X", "X":
		return raster.PosX, nil
	case "-X":
		return raster.NegX, nil
	case "+Y", "Y":
		return raster.PosY, nil
	case "-Y":
		return raster.NegY, nil
	case "+Z", "Z":
		return raster.PosZ, nil
	case "-Z":
		return raster.NegZ, nil
	default:
		return 0, errs.NewConfigError(fmt.Sprintf("unrecognized orientation axis %q", s))
	}
}
