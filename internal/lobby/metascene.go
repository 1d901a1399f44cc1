// File: internal/lobby/metascene.go
package lobby

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/voxelfleet/cuberenderer/internal/controller"
	"github.com/voxelfleet/cuberenderer/internal/raster"
	"github.com/voxelfleet/cuberenderer/internal/scene"
)

// State is the meta-scene's top-level phase.
type State int

const (
	StateLobby State = iota
	StateCountdown
	StatePlaying
	StateGameOver
)

// CountdownStart is the number of whole seconds the countdown phase
// counts down from before a game begins.
const CountdownStart = 3

const cubeKickVelocity = 1.5
const cubeDamping = 0.97

// ButtonHandler is an optional Scene extension: a game that wants raw
// button edges (rather than only driving its own state from registry
// polling) implements this, and the meta-scene forwards Playing/GameOver
// button events to it.
type ButtonHandler interface {
	HandleButton(playerID string, button int, state controller.ButtonState)
}

// restartSignaler is the slice of *controller.Registry the meta-scene
// depends on; declared as an interface so tests can drive the restart
// signal without standing up real controller sessions.
type restartSignaler interface {
	HoldingRestart(dip uint16) bool
}

// MetaScene is the Lobby/Countdown/Playing/GameOver state machine that
// sits above every sub-game, grounded on
// game/game_actor_lifecycle.go's atomic-flag + sync.Once cleanup style
// (here a plain mutex, since there is exactly one meta-scene instance and
// no child actors to supervise).
type MetaScene struct {
	mu sync.Mutex

	registry       restartSignaler
	dips           []uint16
	dipToPlayer    map[uint16]string
	playerToDIP    map[string]uint16
	availableGames []string
	producers      map[string]scene.Producer
	rng            *rand.Rand

	state           State
	selection       map[uint16]int
	votingStates    map[uint16]bool
	menuVotes       map[uint16]string
	countdownValue  int
	countdownLastT  float64
	currentGameName string
	currentGame     scene.Scene
	gameOverActive  bool

	cubeAngle    float64
	cubeAngularV float64
	lastRenderT  float64
	haveRenderT  bool
}

// NewMetaScene builds a meta-scene over the DIPs of dipToPlayer (one per
// registered player, in map iteration order), the catalog of selectable
// games, and a factory per game name. seed makes tie-breaking reproducible
// in tests.
func NewMetaScene(registry restartSignaler, dipToPlayer map[uint16]string, availableGames []string, producers map[string]scene.Producer, seed int64) *MetaScene {
	dips := make([]uint16, 0, len(dipToPlayer))
	playerToDIP := make(map[string]uint16, len(dipToPlayer))
	for dip, player := range dipToPlayer {
		dips = append(dips, dip)
		playerToDIP[player] = dip
	}
	return &MetaScene{
		registry:       registry,
		dips:           dips,
		dipToPlayer:    dipToPlayer,
		playerToDIP:    playerToDIP,
		availableGames: availableGames,
		producers:      producers,
		rng:            rand.New(rand.NewSource(seed)),
		state:          StateLobby,
		selection:      make(map[uint16]int),
		votingStates:   make(map[uint16]bool),
		menuVotes:      make(map[uint16]string),
		cubeAngularV:   0.3,
	}
}

// State returns the current phase, for tests and the monitor.
func (m *MetaScene) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// HandleButton is the controller.GameCallback target cmd/cuberenderer wires up: lobby
// voting logic while in Lobby, delegated to the active sub-game (if it
// implements ButtonHandler) while Playing or GameOver.
func (m *MetaScene) HandleButton(playerID string, button int, state controller.ButtonState) {
	m.mu.Lock()
	dip, ok := m.playerToDIP[playerID]
	if !ok {
		m.mu.Unlock()
		return
	}

	switch m.state {
	case StateLobby:
		if state == controller.Pressed {
			m.cubeAngularV += cubeKickVelocity
		}
		m.handleLobbyButton(dip, button, state)
		m.mu.Unlock()

	case StatePlaying, StateGameOver:
		game := m.currentGame
		m.mu.Unlock()
		if handler, ok := game.(ButtonHandler); ok {
			handler.HandleButton(playerID, button, state)
		}

	default:
		m.mu.Unlock()
	}
}

// handleLobbyButton must be called with mu held.
func (m *MetaScene) handleLobbyButton(dip uint16, button int, state controller.ButtonState) {
	if state != controller.Pressed {
		return
	}
	n := len(m.availableGames)
	if n == 0 {
		return
	}
	switch button {
	case controller.ButtonUp:
		m.selection[dip] = ((m.selection[dip]-1)%n + n) % n
		delete(m.votingStates, dip)
	case controller.ButtonDown:
		m.selection[dip] = (m.selection[dip] + 1) % n
		delete(m.votingStates, dip)
	case controller.ButtonSelect:
		m.votingStates[dip] = true
		m.menuVotes[dip] = m.availableGames[m.selection[dip]]
		m.maybeTally()
	}
}

// maybeTally must be called with mu held. It transitions Lobby ->
// Countdown once every registered DIP has a locked-in vote.
func (m *MetaScene) maybeTally() {
	if len(m.dips) == 0 {
		return
	}
	for _, dip := range m.dips {
		if !m.votingStates[dip] {
			return
		}
	}

	counts := make(map[string]int)
	for _, g := range m.menuVotes {
		counts[g]++
	}
	best := 0
	for _, c := range counts {
		if c > best {
			best = c
		}
	}
	var tied []string
	for _, name := range m.availableGames {
		if counts[name] == best && best > 0 {
			tied = append(tied, name)
		}
	}
	winner := tied[0]
	if len(tied) > 1 {
		winner = tied[m.rng.Intn(len(tied))]
	}

	m.currentGameName = winner
	m.state = StateCountdown
	m.countdownValue = CountdownStart
	m.countdownLastT = m.lastRenderT
}

// Render advances the state machine and delegates rendering, per
// spec.md section 4.8's per-state responsibilities.
func (m *MetaScene) Render(r *raster.Raster, t float64) {
	m.mu.Lock()
	dt := 0.0
	if m.haveRenderT {
		dt = t - m.lastRenderT
	}
	m.lastRenderT = t
	m.haveRenderT = true
	m.cubeAngle += m.cubeAngularV * dt
	m.cubeAngularV *= cubeDamping

	switch m.state {
	case StateLobby:
		r.Clear()
		angle := m.cubeAngle
		color := raster.RGB{R: 80, G: 160, B: 255}
		m.mu.Unlock()
		renderWireframeCube(r, angle, color)

	case StateCountdown:
		if t-m.countdownLastT >= 1.0 {
			m.countdownValue--
			m.countdownLastT += 1.0
			if m.countdownValue <= 0 {
				m.startGame()
			}
		}
		r.Clear()
		angle := m.cubeAngle
		color := raster.RGB{R: 255, G: 220, B: 80}
		m.mu.Unlock()
		renderWireframeCube(r, angle, color)

	case StatePlaying, StateGameOver:
		game := m.currentGame
		wasGameOver := m.state == StateGameOver
		restart := m.anyRestartSignaled()
		m.mu.Unlock()

		if restart {
			if wasGameOver {
				m.resetGame(game)
			} else {
				m.resetToLobby()
			}
			return
		}
		if game != nil {
			game.Render(r, t)
		}
		if !wasGameOver {
			m.checkGameOver(game)
		}

	default:
		m.mu.Unlock()
	}
}

// resetGame handles the restart signal while in GameOver: a sub-game that
// implements Resettable is asked to reset itself in place and play
// resumes; otherwise this degrades to the same full lobby reset Playing
// uses.
func (m *MetaScene) resetGame(game scene.Scene) {
	if resettable, ok := game.(Resettable); ok {
		resettable.Reset()
		m.mu.Lock()
		m.state = StatePlaying
		m.gameOverActive = false
		m.mu.Unlock()
		return
	}
	m.resetToLobby()
}

// Resettable is an optional Scene extension letting a sub-game restart
// itself in place instead of the meta-scene tearing down to the lobby.
type Resettable interface {
	Reset()
}

// checkGameOver lets a sub-game declare itself finished without ending the
// round: rendering and the restart-signal check keep running (so a
// flashing end-state and a SELECT-hold restart both keep working), only
// the meta-scene's own phase advances to GameOver.
func (m *MetaScene) checkGameOver(game scene.Scene) {
	reporter, ok := game.(GameOverReporter)
	if !ok || !reporter.GameOver() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StatePlaying {
		m.state = StateGameOver
		m.gameOverActive = true
	}
}

// GameOverReporter is an optional Scene extension: a sub-game that wants
// to signal its own end state (so the meta-scene can route the restart
// signal to a reset rather than the lobby, per spec.md section 4.8) while
// still being rendered implements this.
type GameOverReporter interface {
	GameOver() bool
}

// startGame must be called with mu held; it instantiates the voted game
// and transitions to Playing.
func (m *MetaScene) startGame() {
	producer, ok := m.producers[m.currentGameName]
	if !ok {
		fmt.Printf("ERROR: MetaScene: no producer registered for game %q, returning to lobby\n", m.currentGameName)
		m.resetToLobbyLocked()
		return
	}
	m.currentGame = producer()
	m.state = StatePlaying
}

// anyRestartSignaled does not itself require mu (Render calls it with mu
// held): it only reads registry state and m.dips, neither mutated here.
func (m *MetaScene) anyRestartSignaled() bool {
	if m.registry == nil {
		return false
	}
	for _, dip := range m.dips {
		if m.registry.HoldingRestart(dip) {
			return true
		}
	}
	return false
}

func (m *MetaScene) resetToLobby() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetToLobbyLocked()
}

func (m *MetaScene) resetToLobbyLocked() {
	if m.currentGame != nil {
		m.currentGame.Cleanup()
		m.currentGame = nil
	}
	m.state = StateLobby
	m.votingStates = make(map[uint16]bool)
	m.menuVotes = make(map[uint16]string)
	m.gameOverActive = false
	m.currentGameName = ""
}

// UpdateControllerDisplay writes the LCD for one player according to the
// current phase: vote/selection UI in Lobby, the countdown value and
// chosen game in Countdown, delegated to the sub-game otherwise.
func (m *MetaScene) UpdateControllerDisplay(session controller.SessionHandle, playerID string) {
	m.mu.Lock()
	dip, known := m.playerToDIP[playerID]
	state := m.state

	switch state {
	case StateLobby:
		n := len(m.availableGames)
		text := "no games"
		if known && n > 0 {
			text = m.availableGames[m.selection[dip]]
			if m.votingStates[dip] {
				text += " [locked]"
			}
		}
		m.mu.Unlock()
		session.ClearLCD()
		session.WriteLCD(0, 0, "select a game:")
		session.WriteLCD(0, 1, text)
		session.CommitLCD()

	case StateCountdown:
		value := m.countdownValue
		name := m.currentGameName
		m.mu.Unlock()
		session.ClearLCD()
		session.WriteLCD(0, 0, name)
		session.WriteLCD(0, 1, fmt.Sprintf("starting in %d", value))
		session.CommitLCD()

	case StatePlaying, StateGameOver:
		game := m.currentGame
		m.mu.Unlock()
		if game != nil {
			game.UpdateControllerDisplay(session, playerID)
		}

	default:
		m.mu.Unlock()
	}
}

// Cleanup releases the active sub-game, if any.
func (m *MetaScene) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.currentGame != nil {
		m.currentGame.Cleanup()
		m.currentGame = nil
	}
}
