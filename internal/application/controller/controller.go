// Package controller drives a campaign: the game state machine around the
// level simulation, the end-of-level sequence and the menus.
package controller

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/younwookim/plumber/internal/application/campaign"
	"github.com/younwookim/plumber/internal/application/state"
	"github.com/younwookim/plumber/internal/application/system"
	"github.com/younwookim/plumber/internal/domain/entity"
	"github.com/younwookim/plumber/internal/domain/level"
	"github.com/younwookim/plumber/internal/infrastructure/config"
	"github.com/younwookim/plumber/internal/infrastructure/storage"
)

// ErrQuit is returned by Update when the player chose to quit
var ErrQuit = errors.New("quit requested")

// Controller owns the game state and routes each tick to the right handler
type Controller struct {
	tuning   *config.Tuning
	manager  *campaign.Manager
	players  *system.PlayerController
	levels   *system.LevelSystem
	resolver *system.CollisionResolver
	store    storage.Store
	logger   *log.Logger

	state    state.GameState
	autoSave bool
	seq      sequence
	events   system.EventQueue
}

// New creates a controller in the menu state. store may be nil, which
// disables saving.
func New(tuning *config.Tuning, manager *campaign.Manager, store storage.Store, logger *log.Logger) *Controller {
	if tuning == nil {
		tuning = config.DefaultTuning()
	}
	if logger == nil {
		logger = log.Default()
	}
	players := system.NewPlayerController(&tuning.Player)
	levels := system.NewLevelSystem(players)
	levels.SetKillY(tuning.Rules.PitY)
	manager.SetTransitionDuration(tuning.Rules.TransitionDuration)

	return &Controller{
		tuning:   tuning,
		manager:  manager,
		players:  players,
		levels:   levels,
		resolver: system.NewCollisionResolver(&tuning.Collision, players, nil),
		store:    store,
		logger:   logger,
		state:    state.StateMenu,
	}
}

// SetTuning swaps every tuning section in place, e.g. after a hot reload
func (c *Controller) SetTuning(t *config.Tuning) {
	if t == nil {
		return
	}
	c.tuning = t
	c.players.SetConfig(&t.Player)
	c.resolver.SetConfig(&t.Collision)
	c.resolver.SetLevel(c.manager.Current())
	c.levels.SetKillY(t.Rules.PitY)
	c.manager.SetTransitionDuration(t.Rules.TransitionDuration)
	c.logger.Info("tuning applied")
}

// SetAutoSave enables saving on game over and level recap, and restoring
// the saved campaign when a game starts
func (c *Controller) SetAutoSave(enabled bool) {
	c.autoSave = enabled
}

// AutoSave returns true if auto-save is enabled
func (c *Controller) AutoSave() bool {
	return c.autoSave
}

// State returns the current game state
func (c *Controller) State() state.GameState {
	return c.state
}

// Step returns the current end-of-level sequence step
func (c *Controller) Step() state.SequenceStep {
	return c.seq.step
}

// Manager returns the level manager
func (c *Controller) Manager() *campaign.Manager {
	return c.manager
}

// Level returns the level being played, or nil
func (c *Controller) Level() *level.Level {
	return c.manager.Current()
}

// Players returns the player controller
func (c *Controller) Players() *system.PlayerController {
	return c.players
}

// Events returns and clears the gameplay events since the last call
func (c *Controller) Events() []system.Event {
	return c.events.Drain()
}

// Buttons returns the clickable buttons of the current state
func (c *Controller) Buttons() []Button {
	w, h := c.tuning.Display.ScreenWidth, c.tuning.Display.ScreenHeight
	switch c.state {
	case state.StateLevelRecap:
		if c.manager.HasRemaining() {
			return layoutButtons(w, h, ButtonNext, ButtonRetry, ButtonQuit)
		}
		return layoutButtons(w, h, ButtonRetry, ButtonQuit)
	case state.StateGameOver, state.StateVictory:
		return layoutButtons(w, h, ButtonRetry, ButtonQuit)
	default:
		return nil
	}
}

// Update advances the game by one tick
func (c *Controller) Update(in system.InputState, dt float64) error {
	c.manager.Update(dt)
	c.syncLevel()

	switch c.state {
	case state.StateMenu:
		if in.Confirm {
			c.initialise()
		}

	case state.StatePlaying:
		c.updatePlaying(in, dt)

	case state.StatePaused:
		if in.Pause {
			c.state = state.StatePlaying
		}

	case state.StateGameOver:
		switch {
		case in.Confirm:
			c.retry()
		case in.Menu:
			c.state = state.StateMenu
		case in.MouseClick:
			return c.click(in)
		}

	case state.StateVictory:
		switch {
		case in.Confirm:
			c.state = state.StateMenu
		case in.MouseClick:
			return c.click(in)
		}

	case state.StateLevelTransition:
		if !c.manager.InTransition() {
			c.state = state.StatePlaying
		}

	case state.StateLevelRecap:
		switch {
		case in.Confirm:
			c.advance()
		case in.MouseClick:
			return c.click(in)
		}

	case state.StateEndLevelSequence:
		c.updateSequence(dt)
	}

	return nil
}

// syncLevel rebinds the resolver when the manager switched levels
func (c *Controller) syncLevel() {
	if lvl := c.manager.Current(); lvl != c.resolver.Level() {
		c.resolver.SetLevel(lvl)
	}
}

func (c *Controller) initialise() {
	restored := c.autoSave && c.LoadProgress()
	if !restored && !c.manager.LoadFirst() {
		c.logger.Error("no playable level", "sources", c.manager.SourceCount())
		return
	}

	c.ensurePlayer()
	c.resolver.SetLevel(c.manager.Current())
	c.seq.reset()
	c.state = state.StatePlaying
}

// ensurePlayer gives the current level a player at its start if it has none
func (c *Controller) ensurePlayer() {
	lvl := c.manager.Current()
	if lvl != nil && lvl.Player == nil {
		lvl.SetPlayer(entity.NewPlayer(lvl.StartX, lvl.StartY))
	}
}

func (c *Controller) updatePlaying(in system.InputState, dt float64) {
	lvl := c.manager.Current()
	if lvl == nil || lvl.Player == nil {
		return
	}
	p := lvl.Player

	system.ApplyInput(c.players, p, in)
	c.levels.Update(lvl, dt)
	lvl.ClampPlayer()
	c.checkPit(lvl)

	c.resolver.Resolve()
	for _, e := range c.resolver.Events() {
		c.events.Emit(e)
	}
	lvl.PurgeInactive()

	c.checkEnd(lvl)

	if c.state == state.StatePlaying && in.Pause {
		c.state = state.StatePaused
	}
}

// checkPit costs a life when the player drops below the pit line and puts
// them back at the respawn point
func (c *Controller) checkPit(lvl *level.Level) {
	p := lvl.Player
	if !p.CanAct() || p.Y >= c.tuning.Rules.PitY {
		return
	}
	c.players.LoseLifeAndRespawn(p, lvl.RespawnX, lvl.RespawnY)
	c.events.Emit(system.PlayerFell{Lives: p.Lives})
	c.logger.Debug("player fell", "level", lvl.Name, "lives", p.Lives)
}

func (c *Controller) checkEnd(lvl *level.Level) {
	p := lvl.Player

	if p.Lives <= 0 {
		c.state = state.StateGameOver
		c.logger.Info("game over", "level", lvl.Name, "score", lvl.Progression.Score)
		c.autoSaveProgress()
		return
	}

	if lvl.Flag != nil && lvl.Flag.Touched {
		c.seq.start(&c.tuning.Sequence, p, lvl.Flag)
		c.state = state.StateEndLevelSequence
		return
	}

	if lvl.Finished() && !c.manager.InTransition() {
		c.enterRecap()
	}
}

func (c *Controller) updateSequence(dt float64) {
	lvl := c.manager.Current()
	if lvl == nil {
		return
	}
	if !c.seq.update(&c.tuning.Sequence, lvl, dt) {
		return
	}

	lvl.Finish(true)
	c.seq.reset()
	if p := lvl.Player; p != nil {
		p.Visible = true
		p.SetAlpha(1)
	}
	c.enterRecap()
}

func (c *Controller) enterRecap() {
	c.state = state.StateLevelRecap
	c.manager.RecordCurrent()
	if lvl := c.manager.Current(); lvl != nil {
		c.logger.Info("level complete", "level", lvl.Name, "score", lvl.Progression.Score, "stars", lvl.Progression.Stars)
	}
	c.autoSaveProgress()
}

func (c *Controller) click(in system.InputState) error {
	kind, ok := buttonAt(c.Buttons(), float64(in.MouseX), float64(in.MouseY))
	if !ok {
		return nil
	}

	switch kind {
	case ButtonNext:
		c.advance()
	case ButtonRetry:
		c.retry()
	case ButtonQuit:
		return ErrQuit
	}
	return nil
}

func (c *Controller) retry() {
	c.manager.Reload()
	c.resolver.SetLevel(c.manager.Current())
	c.seq.reset()
	c.state = state.StatePlaying
}

// advance moves on to the next level, or to victory after the last one
func (c *Controller) advance() {
	if !c.manager.HasRemaining() {
		c.state = state.StateVictory
		c.logger.Info("campaign complete", "score", c.manager.TotalScore(), "stars", c.manager.TotalStars())
		return
	}
	if !c.manager.Next() {
		return
	}

	c.ensurePlayer()
	c.resolver.SetLevel(c.manager.Current())
	c.seq.reset()
	c.state = state.StateLevelTransition
}

func (c *Controller) autoSaveProgress() {
	if c.autoSave {
		c.SaveProgress()
	}
}

// SaveProgress writes the campaign to the store
func (c *Controller) SaveProgress() bool {
	if c.store == nil {
		return false
	}
	if err := c.store.Save(c.manager.Snapshot()); err != nil {
		c.logger.Warn("save failed", "err", err)
		return false
	}
	return true
}

// LoadProgress restores the campaign from the store
func (c *Controller) LoadProgress() bool {
	if c.store == nil {
		return false
	}
	snap, err := c.store.Load()
	if errors.Is(err, storage.ErrNotFound) {
		return false
	}
	if err != nil {
		c.logger.Warn("load failed", "err", err)
		return false
	}
	if !c.manager.Restore(snap) {
		return false
	}

	c.ensurePlayer()
	c.resolver.SetLevel(c.manager.Current())
	return true
}
