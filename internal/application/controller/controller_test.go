package controller

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/plumber/internal/application/campaign"
	"github.com/younwookim/plumber/internal/application/state"
	"github.com/younwookim/plumber/internal/application/system"
	"github.com/younwookim/plumber/internal/domain/entity"
	"github.com/younwookim/plumber/internal/domain/level"
	"github.com/younwookim/plumber/internal/infrastructure/config"
	"github.com/younwookim/plumber/internal/infrastructure/storage"
)

const testDT = 1.0 / 60.0

var (
	idle    = system.InputState{}
	confirm = system.InputState{Confirm: true}
)

// stubLoader builds levels in code. Sources listed in noPlayer get no player.
type stubLoader struct {
	noPlayer map[string]bool
}

func (s *stubLoader) Load(source string) (*level.Level, error) {
	if source == "broken" {
		return nil, errors.New("broken level")
	}
	return createTestLevel(source, !s.noPlayer[source]), nil
}

// createTestLevel is a flat 1000px floor with a flag at x=600
func createTestLevel(name string, withPlayer bool) *level.Level {
	lvl := level.New(name, 1000, 480)
	lvl.AddObstacle(entity.NewObstacle(0, 0, 1000, 32, entity.BlockNormal))
	lvl.SetFlag(entity.NewGoalFlag(600, 32, 160))
	lvl.SetStart(100, 32)
	lvl.SetRespawn(50, 200)
	if withPlayer {
		lvl.SetPlayer(entity.NewPlayer(100, 32))
	}
	return lvl
}

// memStore keeps the last saved snapshot in memory
type memStore struct {
	snap  *storage.Snapshot
	saves int
}

func (m *memStore) Save(s storage.Snapshot) error {
	m.snap = &s
	m.saves++
	return nil
}

func (m *memStore) Load() (storage.Snapshot, error) {
	if m.snap == nil {
		return storage.Snapshot{}, storage.ErrNotFound
	}
	return *m.snap, nil
}

func (m *memStore) Clear() error {
	m.snap = nil
	return nil
}

// createTestTuning lowers the safety floor so pits are reachable
func createTestTuning() *config.Tuning {
	t := config.DefaultTuning()
	t.Player.SafetyFloor = -1000
	return t
}

func createTestController(sources ...string) (*Controller, *memStore) {
	if len(sources) == 0 {
		sources = []string{"1-1", "1-2"}
	}
	logger := log.New(io.Discard)
	loader := &stubLoader{noPlayer: map[string]bool{"1-2": true}}
	store := &memStore{}
	m := campaign.NewManager(loader, sources, logger)
	return New(createTestTuning(), m, store, logger), store
}

func startGame(t *testing.T, c *Controller) *level.Level {
	t.Helper()
	require.NoError(t, c.Update(confirm, testDT))
	require.Equal(t, state.StatePlaying, c.State())
	lvl := c.Level()
	require.NotNil(t, lvl)
	require.NotNil(t, lvl.Player)
	return lvl
}

// finishLevel ends the level through its objectives and lets the start
// transition run out
func finishLevel(t *testing.T, c *Controller) {
	t.Helper()
	c.Level().Finish(true)
	c.Manager().Update(10)
	require.NoError(t, c.Update(idle, testDT))
	require.Equal(t, state.StateLevelRecap, c.State())
}

func tickUntil(t *testing.T, c *Controller, done func() bool) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if done() {
			return
		}
		require.NoError(t, c.Update(idle, testDT))
	}
	t.Fatal("condition not reached")
}

func TestController_StartsInMenu(t *testing.T) {
	c, _ := createTestController()

	assert.Equal(t, state.StateMenu, c.State())
	require.NoError(t, c.Update(idle, testDT))
	assert.Equal(t, state.StateMenu, c.State())
	assert.Nil(t, c.Level())
}

func TestController_MenuConfirmStartsGame(t *testing.T) {
	c, _ := createTestController()

	lvl := startGame(t, c)
	assert.Equal(t, "1-1", lvl.Name)
	assert.Equal(t, state.TransitionLevelStart, c.Manager().State())
}

func TestController_NoPlayableLevel(t *testing.T) {
	c, _ := createTestController("broken")

	require.NoError(t, c.Update(confirm, testDT))
	assert.Equal(t, state.StateMenu, c.State())
}

func TestController_Pause(t *testing.T) {
	c, _ := createTestController()
	startGame(t, c)

	require.NoError(t, c.Update(system.InputState{Pause: true}, testDT))
	assert.Equal(t, state.StatePaused, c.State())

	// Paused ticks leave the player alone
	p := c.Level().Player
	x := p.X
	require.NoError(t, c.Update(system.InputState{Right: true}, testDT))
	assert.Equal(t, x, p.X)
	assert.Equal(t, state.StatePaused, c.State())

	require.NoError(t, c.Update(system.InputState{Pause: true}, testDT))
	assert.Equal(t, state.StatePlaying, c.State())
}

func TestController_PlayerStaysInsideLevel(t *testing.T) {
	c, _ := createTestController()
	lvl := startGame(t, c)

	lvl.Player.SetPosition(-40, 32)
	lvl.Player.VX = -200
	require.NoError(t, c.Update(idle, testDT))

	assert.Equal(t, 0.0, lvl.Player.X)
	assert.Zero(t, lvl.Player.VX)
}

func TestController_PitRespawn(t *testing.T) {
	c, _ := createTestController()
	lvl := startGame(t, c)
	c.Events()

	lvl.Player.SetPosition(300, -150)
	require.NoError(t, c.Update(idle, testDT))

	p := lvl.Player
	assert.Equal(t, 2, p.Lives)
	assert.Equal(t, 50.0, p.X)
	assert.Equal(t, 200.0, p.Y)
	assert.Zero(t, p.VX)
	assert.Zero(t, p.VY)
	assert.Equal(t, state.StatePlaying, c.State())
	assert.Contains(t, c.Events(), system.Event(system.PlayerFell{Lives: 2}))
}

func TestController_GameOverAndRetry(t *testing.T) {
	c, store := createTestController()
	c.SetAutoSave(true)
	lvl := startGame(t, c)

	lvl.Player.Lives = 1
	lvl.Player.SetPosition(300, -150)
	require.NoError(t, c.Update(idle, testDT))

	assert.Equal(t, state.StateGameOver, c.State())
	assert.True(t, lvl.Player.IsDead())
	assert.Equal(t, 1, store.saves, "game over is auto-saved")

	require.NoError(t, c.Update(confirm, testDT))
	assert.Equal(t, state.StatePlaying, c.State())
	assert.Same(t, lvl, c.Level())
	assert.Equal(t, entity.DefaultLives, lvl.Player.Lives)
	assert.True(t, lvl.Player.CanAct())
	assert.Equal(t, 100.0, lvl.Player.X)
}

func TestController_GameOverMenuKey(t *testing.T) {
	c, _ := createTestController()
	lvl := startGame(t, c)

	lvl.Player.Lives = 1
	lvl.Player.SetPosition(300, -150)
	require.NoError(t, c.Update(idle, testDT))
	require.Equal(t, state.StateGameOver, c.State())

	require.NoError(t, c.Update(system.InputState{Menu: true}, testDT))
	assert.Equal(t, state.StateMenu, c.State())
}

func TestController_GameOverRetryButton(t *testing.T) {
	c, _ := createTestController()
	lvl := startGame(t, c)

	lvl.Player.Lives = 1
	lvl.Player.SetPosition(300, -150)
	require.NoError(t, c.Update(idle, testDT))
	require.Equal(t, state.StateGameOver, c.State())

	buttons := c.Buttons()
	require.Len(t, buttons, 2)
	assert.Equal(t, ButtonRetry, buttons[0].Kind)

	require.NoError(t, c.Update(system.InputState{MouseClick: true, MouseX: 400, MouseY: 200}, testDT))
	assert.Equal(t, state.StatePlaying, c.State())
}

func TestController_FlagSequenceToRecap(t *testing.T) {
	c, store := createTestController()
	c.SetAutoSave(true)
	lvl := startGame(t, c)
	c.Events()

	// Step onto the flag
	p := lvl.Player
	p.SetPosition(600, 32)
	require.NoError(t, c.Update(idle, testDT))

	require.Equal(t, state.StateEndLevelSequence, c.State())
	assert.Equal(t, state.StepFlagSlide, c.Step())
	assert.Equal(t, 596.0, p.X, "player is centred on the pole")
	assert.Contains(t, c.Events(), system.Event(system.FlagTouched{Flag: lvl.Flag}))

	tickUntil(t, c, func() bool { return c.Step() == state.StepEnterCastle })
	assert.True(t, p.Grounded)
	assert.Equal(t, 32.0, p.Y)

	// Fade out over half a second
	for i := 0; i < 15; i++ {
		require.NoError(t, c.Update(idle, testDT))
	}
	assert.InDelta(t, 0.5, p.Alpha, 0.05)
	for i := 0; i < 30; i++ {
		require.NoError(t, c.Update(idle, testDT))
	}
	assert.Zero(t, p.Alpha)
	assert.Equal(t, state.StateEndLevelSequence, c.State())

	tickUntil(t, c, func() bool { return c.State() == state.StateLevelRecap })
	assert.True(t, lvl.Finished())
	assert.True(t, lvl.Progression.Completed)
	assert.Equal(t, state.StepNone, c.Step())
	assert.True(t, p.Visible)
	assert.Equal(t, 1.0, p.Alpha)
	assert.Equal(t, 1, store.saves, "recap is auto-saved")

	_, ok := c.Manager().Progress("1-1")
	assert.True(t, ok)
}

func TestController_FlagKeepsAnimatingDuringSequence(t *testing.T) {
	c, _ := createTestController()
	lvl := startGame(t, c)

	lvl.Player.SetPosition(600, 32)
	require.NoError(t, c.Update(idle, testDT))
	require.Equal(t, state.StateEndLevelSequence, c.State())

	before := lvl.Flag.AnimationTime
	require.NoError(t, c.Update(idle, testDT))
	assert.Greater(t, lvl.Flag.AnimationTime, before)
}

func TestController_RecapButtons(t *testing.T) {
	c, _ := createTestController()
	startGame(t, c)
	finishLevel(t, c)

	buttons := c.Buttons()
	require.Len(t, buttons, 3)
	assert.Equal(t, Button{Kind: ButtonNext, X: 290, Y: 130, W: 220, H: 60}, buttons[0])
	assert.Equal(t, ButtonRetry, buttons[1].Kind)
	assert.Equal(t, 210.0, buttons[1].Y)
	assert.Equal(t, ButtonQuit, buttons[2].Kind)

	// A click between buttons does nothing
	require.NoError(t, c.Update(system.InputState{MouseClick: true, MouseX: 400, MouseY: 200}, testDT))
	assert.Equal(t, state.StateLevelRecap, c.State())
}

func TestController_NextLevelButton(t *testing.T) {
	c, _ := createTestController()
	startGame(t, c)
	finishLevel(t, c)

	require.NoError(t, c.Update(system.InputState{MouseClick: true, MouseX: 400, MouseY: 160}, testDT))
	assert.Equal(t, state.StateLevelTransition, c.State())

	lvl := c.Level()
	assert.Equal(t, "1-2", lvl.Name)
	require.NotNil(t, lvl.Player, "a player is created for levels without one")
	assert.Equal(t, 100.0, lvl.Player.X)

	tickUntil(t, c, func() bool { return c.State() == state.StatePlaying })
	assert.False(t, c.Manager().InTransition())
}

func TestController_QuitButton(t *testing.T) {
	c, _ := createTestController()
	startGame(t, c)
	finishLevel(t, c)

	err := c.Update(system.InputState{MouseClick: true, MouseX: 400, MouseY: 320}, testDT)
	assert.ErrorIs(t, err, ErrQuit)
}

func TestController_RetryFromRecap(t *testing.T) {
	c, _ := createTestController()
	lvl := startGame(t, c)
	finishLevel(t, c)

	require.NoError(t, c.Update(system.InputState{MouseClick: true, MouseX: 400, MouseY: 240}, testDT))
	assert.Equal(t, state.StatePlaying, c.State())
	assert.Same(t, lvl, c.Level())
	assert.False(t, lvl.Finished())
}

func TestController_VictoryAfterLastLevel(t *testing.T) {
	c, _ := createTestController("solo")
	startGame(t, c)
	finishLevel(t, c)
	assert.Len(t, c.Buttons(), 2)

	require.NoError(t, c.Update(confirm, testDT))
	assert.Equal(t, state.StateVictory, c.State())
	assert.Len(t, c.Buttons(), 2)

	require.NoError(t, c.Update(confirm, testDT))
	assert.Equal(t, state.StateMenu, c.State())
}

func TestController_FailedNextStaysOnRecap(t *testing.T) {
	c, _ := createTestController("1-1", "broken")
	startGame(t, c)
	finishLevel(t, c)

	require.NoError(t, c.Update(confirm, testDT))
	assert.Equal(t, state.StateLevelRecap, c.State())
	assert.Equal(t, "1-1", c.Level().Name)
}

func TestController_SaveAndLoadProgress(t *testing.T) {
	c, store := createTestController()
	startGame(t, c)
	finishLevel(t, c)
	require.NoError(t, c.Update(confirm, testDT))
	require.Equal(t, "1-2", c.Level().Name)

	require.True(t, c.SaveProgress())
	require.NotNil(t, store.snap)
	assert.Equal(t, 1, store.snap.CurrentIndex)

	// A new session with auto-save resumes at the saved level
	fresh, _ := createTestController()
	fresh.store = store
	fresh.SetAutoSave(true)
	lvl := startGame(t, fresh)
	assert.Equal(t, "1-2", lvl.Name)
	assert.Equal(t, c.Manager().TotalScore(), fresh.Manager().TotalScore())
}

func TestController_LoadProgressWithoutSave(t *testing.T) {
	c, _ := createTestController()
	assert.False(t, c.LoadProgress())

	noStore := New(nil, campaign.NewManager(&stubLoader{}, []string{"1-1"}, nil), nil, log.New(io.Discard))
	assert.False(t, noStore.SaveProgress())
	assert.False(t, noStore.LoadProgress())
}

func TestController_SetTuning(t *testing.T) {
	c, _ := createTestController()
	startGame(t, c)

	tuning := createTestTuning()
	tuning.Player.MaxSpeed = 50
	c.SetTuning(tuning)

	p := c.Level().Player
	for i := 0; i < 120; i++ {
		require.NoError(t, c.Update(system.InputState{Right: true}, testDT))
	}
	assert.InDelta(t, 50, p.VX, 1e-9)
}
