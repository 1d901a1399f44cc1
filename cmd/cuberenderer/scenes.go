// File: cmd/cuberenderer/scenes.go
package main

import (
	"github.com/voxelfleet/cuberenderer/internal/config"
	"github.com/voxelfleet/cuberenderer/internal/controller"
	"github.com/voxelfleet/cuberenderer/internal/errs"
	"github.com/voxelfleet/cuberenderer/internal/lobby"
	"github.com/voxelfleet/cuberenderer/internal/raster"
	"github.com/voxelfleet/cuberenderer/internal/scene"
	"github.com/voxelfleet/cuberenderer/internal/scenes"
)

// gameCatalog is the compile-time registry of selectable sub-games, the
// Go-native replacement for the source's hot-loaded scene module (spec.md
// section 9's "pluggable module" redesign flag): snake/pong/sphere-shooter/
// space-invaders/the VJ scene remain out of scope per spec.md section 1, so
// solid and rainbow stand in as the lobby's real, testable entries.
func gameCatalog(sc *config.SceneConfig) map[string]scene.Producer {
	color := raster.RGB{R: sc.SolidColor[0], G: sc.SolidColor[1], B: sc.SolidColor[2]}
	if color == (raster.RGB{}) {
		color = raster.RGB{R: 255, G: 0, B: 0}
	}
	cycles := sc.RainbowCycles
	if cycles == 0 {
		cycles = 0.1
	}
	return map[string]scene.Producer{
		"solid":   scenes.NewSolidProducer(color),
		"rainbow": scenes.NewRainbowProducer(cycles),
	}
}

// invertRoleMapping turns a config role->dip mapping into dip->role, which
// doubles as dip->playerID since a scene's "player" is identified by its
// configured role name (P1, P2, ...).
func invertRoleMapping(roleToDIP map[string]uint16) map[uint16]string {
	out := make(map[uint16]string, len(roleToDIP))
	for role, dip := range roleToDIP {
		out[dip] = role
	}
	return out
}

// buildScene constructs the top-level Scene named by sc, along with the
// list of player ids the renderer should visit on its LCD-refresh pass,
// and the dip->playerID mapping derived from the scene's
// controller_mapping (returned for every scene name).
func buildScene(sc *config.SceneConfig, doc *config.Document, registry *controller.Registry, metaScenePtr **lobby.MetaScene) (scene.Scene, []string, map[uint16]string, error) {
	roleToDIP := doc.SceneRoleToDIP[sc.Name]
	dipToPlayer := invertRoleMapping(roleToDIP)
	players := make([]string, 0, len(roleToDIP))
	for role := range roleToDIP {
		players = append(players, role)
	}

	switch sc.Name {
	case "lobby":
		games := sc.AvailableGames
		if len(games) == 0 {
			games = []string{"solid", "rainbow"}
		}
		ms := lobby.NewMetaScene(registry, dipToPlayer, games, gameCatalog(sc), sc.Seed)
		*metaScenePtr = ms
		return ms, players, dipToPlayer, nil

	case "solid", "rainbow":
		producers := gameCatalog(sc)
		producer, ok := producers[sc.Name]
		if !ok {
			return nil, nil, nil, errs.NewSceneError("no producer registered for scene " + sc.Name)
		}
		return producer(), players, dipToPlayer, nil

	default:
		return nil, nil, nil, errs.NewSceneError("unrecognized scene name " + sc.Name)
	}
}
