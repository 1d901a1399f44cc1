// File: internal/lobby/metascene_test.go
package lobby

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfleet/cuberenderer/internal/controller"
	"github.com/voxelfleet/cuberenderer/internal/raster"
	"github.com/voxelfleet/cuberenderer/internal/scene"
)

// fakeRegistry is a restartSignaler double: one DIP can be told to hold
// SELECT past the restart threshold without standing up real sessions.
type fakeRegistry struct {
	restarting map[uint16]bool
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{restarting: make(map[uint16]bool)}
}

func (f *fakeRegistry) HoldingRestart(dip uint16) bool {
	return f.restarting[dip]
}

// fakeGame is a minimal scene.Scene double; the optional-interface fields
// are only consulted when non-nil, leaving plain scenes plain.
type fakeGame struct {
	renders      int
	cleanedUp    bool
	resetCalled  bool
	gameOver     bool
	lastButton   int
	lastButtonID string
}

func (g *fakeGame) Render(r *raster.Raster, t float64) { g.renders++ }

func (g *fakeGame) UpdateControllerDisplay(session controller.SessionHandle, playerID string) {}

func (g *fakeGame) Cleanup()       { g.cleanedUp = true }
func (g *fakeGame) GameOver() bool { return g.gameOver }
func (g *fakeGame) Reset()         { g.resetCalled = true }

func (g *fakeGame) HandleButton(playerID string, button int, state controller.ButtonState) {
	g.lastButtonID = playerID
	g.lastButton = button
}

func newRaster() *raster.Raster {
	return raster.New(4, 4, 4, raster.DefaultOrientation)
}

func TestHandleButtonLobbyScrollsSelectionAndClearsVote(t *testing.T) {
	m := NewMetaScene(newFakeRegistry(), map[uint16]string{0: "P1", 1: "P2"}, []string{"snake", "pong"}, nil, 1)

	m.HandleButton("P1", controller.ButtonDown, controller.Pressed)
	assert.Equal(t, 1, m.selection[0])

	m.HandleButton("P1", controller.ButtonSelect, controller.Pressed)
	assert.True(t, m.votingStates[0])

	// scrolling again must clear the lock-in
	m.HandleButton("P1", controller.ButtonUp, controller.Pressed)
	assert.False(t, m.votingStates[0])
	assert.Equal(t, 0, m.selection[0])
}

func TestVoteTallyAndTiebreak(t *testing.T) {
	registry := newFakeRegistry()
	producers := map[string]scene.Producer{
		"snake": func() scene.Scene { return &fakeGame{} },
		"pong":  func() scene.Scene { return &fakeGame{} },
	}
	m := NewMetaScene(registry, map[uint16]string{0: "P1", 1: "P2"}, []string{"snake", "pong"}, producers, 42)

	// DIP 0 selects snake (index 0, default), DIP 1 selects pong (index 1).
	m.HandleButton("P1", controller.ButtonSelect, controller.Pressed)
	m.HandleButton("P2", controller.ButtonDown, controller.Pressed)
	m.HandleButton("P2", controller.ButtonSelect, controller.Pressed)

	require.Equal(t, StateCountdown, m.State())
	assert.Equal(t, CountdownStart, m.countdownValue)
	assert.Contains(t, []string{"snake", "pong"}, m.currentGameName)
}

func TestCountdownTransitionsToPlayingAfterThreeSeconds(t *testing.T) {
	var started *fakeGame
	producers := map[string]scene.Producer{
		"snake": func() scene.Scene {
			started = &fakeGame{}
			return started
		},
	}
	m := NewMetaScene(newFakeRegistry(), map[uint16]string{0: "P1"}, []string{"snake"}, producers, 1)
	m.HandleButton("P1", controller.ButtonSelect, controller.Pressed)
	require.Equal(t, StateCountdown, m.State())

	r := newRaster()
	tm := 0.0
	m.Render(r, tm)
	for i := 1; i <= CountdownStart; i++ {
		tm += 1.0
		m.Render(r, tm)
	}
	require.Equal(t, StatePlaying, m.State())

	// one more tick after the transition actually renders the sub-game
	tm += 1.0
	m.Render(r, tm)

	assert.Equal(t, StatePlaying, m.State())
	require.NotNil(t, started)
	assert.Equal(t, 1, started.renders)
}

func TestPlayingRestartSignalResetsToLobbyAndCleansUp(t *testing.T) {
	registry := newFakeRegistry()
	game := &fakeGame{}
	m := NewMetaScene(registry, map[uint16]string{0: "P1"}, []string{"snake"}, nil, 1)
	m.state = StatePlaying
	m.currentGame = game
	m.currentGameName = "snake"

	registry.restarting[0] = true
	m.Render(newRaster(), 0)

	assert.Equal(t, StateLobby, m.State())
	assert.True(t, game.cleanedUp)
	assert.Equal(t, 0, game.renders)
}

func TestCheckGameOverTransitionsPlayingToGameOver(t *testing.T) {
	game := &fakeGame{gameOver: true}
	m := NewMetaScene(newFakeRegistry(), map[uint16]string{0: "P1"}, []string{"snake"}, nil, 1)
	m.state = StatePlaying
	m.currentGame = game

	m.Render(newRaster(), 0)

	assert.Equal(t, StateGameOver, m.State())
	assert.Equal(t, 1, game.renders)
}

func TestGameOverRestartResetsGameInPlaceWhenResettable(t *testing.T) {
	registry := newFakeRegistry()
	game := &fakeGame{gameOver: true}
	m := NewMetaScene(registry, map[uint16]string{0: "P1"}, []string{"snake"}, nil, 1)
	m.state = StateGameOver
	m.currentGame = game
	m.gameOverActive = true

	registry.restarting[0] = true
	m.Render(newRaster(), 0)

	assert.Equal(t, StatePlaying, m.State())
	assert.True(t, game.resetCalled)
	assert.False(t, game.cleanedUp)
}

func TestButtonDelegationWhilePlaying(t *testing.T) {
	game := &fakeGame{}
	m := NewMetaScene(newFakeRegistry(), map[uint16]string{0: "P1"}, []string{"snake"}, nil, 1)
	m.state = StatePlaying
	m.currentGame = game

	m.HandleButton("P1", controller.ButtonRight, controller.Pressed)

	assert.Equal(t, "P1", game.lastButtonID)
	assert.Equal(t, controller.ButtonRight, game.lastButton)
}
