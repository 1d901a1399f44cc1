// File: internal/config/scenefile_test.go
package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfleet/cuberenderer/internal/config"
	"github.com/voxelfleet/cuberenderer/internal/errs"
)

func TestLoadSceneConfigLobby(t *testing.T) {
	doc := `
name: lobby
seed: 42
available_games: [snake, pong]
`
	sc, err := config.LoadSceneConfig([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "lobby", sc.Name)
	assert.Equal(t, int64(42), sc.Seed)
	assert.Equal(t, []string{"snake", "pong"}, sc.AvailableGames)
}

func TestLoadSceneConfigSolid(t *testing.T) {
	doc := `
name: solid
solid:
  color: [255, 128, 0]
`
	sc, err := config.LoadSceneConfig([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "solid", sc.Name)
	assert.Equal(t, [3]uint8{255, 128, 0}, sc.SolidColor)
}

func TestLoadSceneConfigRejectsMissingName(t *testing.T) {
	_, err := config.LoadSceneConfig([]byte("seed: 1\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrConfig))
}
