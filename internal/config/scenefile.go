// File: internal/config/scenefile.go
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/voxelfleet/cuberenderer/internal/errs"
)

// SceneConfig selects the top-level scene a renderer process runs and
// carries that scene's own parameters — the file named by the --scene
// CLI flag. Grounded on the same yaml.v3 + ConfigError shape as Document,
// kept as a separate file/type since it addresses an orthogonal concern
// (which Scene to construct) from world/cube geometry.
type SceneConfig struct {
	Name           string
	Seed           int64
	AvailableGames []string
	SolidColor     [3]uint8
	RainbowCycles  float64
}

type rawSolidConfig struct {
	Color [3]uint8 `yaml:"color"`
}

type rawRainbowConfig struct {
	CyclesPerSecond float64 `yaml:"cycles_per_second"`
}

type rawSceneFile struct {
	Name           string           `yaml:"name"`
	Seed           int64            `yaml:"seed"`
	AvailableGames []string         `yaml:"available_games"`
	Solid          rawSolidConfig   `yaml:"solid"`
	Rainbow        rawRainbowConfig `yaml:"rainbow"`
}

// LoadSceneConfig parses and validates the --scene document.
func LoadSceneConfig(data []byte) (*SceneConfig, error) {
	var raw rawSceneFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errs.NewConfigError(fmt.Sprintf("invalid scene yaml: %v", err))
	}
	if raw.Name == "" {
		return nil, errs.NewConfigError("scene file: missing required field \"name\"")
	}
	return &SceneConfig{
		Name:           raw.Name,
		Seed:           raw.Seed,
		AvailableGames: raw.AvailableGames,
		SolidColor:     raw.Solid.Color,
		RainbowCycles:  raw.Rainbow.CyclesPerSecond,
	}, nil
}
