package system

import "github.com/younwookim/plumber/internal/domain/level"

// DefaultKillY is the height below which a fallen enemy is dropped
const DefaultKillY = -100.0

// LevelSystem advances everything that lives in a level by one tick
type LevelSystem struct {
	players *PlayerController
	killY   float64
}

// NewLevelSystem creates a new level system
func NewLevelSystem(players *PlayerController) *LevelSystem {
	return &LevelSystem{players: players, killY: DefaultKillY}
}

// SetKillY moves the line below which enemies are deactivated
func (s *LevelSystem) SetKillY(y float64) {
	s.killY = y
}

// Update runs player physics, entity updates, progression and objective checks.
// Finished levels are frozen.
func (s *LevelSystem) Update(lvl *level.Level, dt float64) {
	if lvl == nil || lvl.Finished() {
		return
	}

	s.players.Update(lvl.Player, dt)

	for _, e := range lvl.Enemies {
		e.Update(dt)
		if e.Active && e.Y < s.killY {
			e.Active = false
		}
	}
	for _, pu := range lvl.PowerUps {
		pu.Update(dt)
	}
	if lvl.Flag != nil {
		lvl.Flag.Update(dt)
	}

	lvl.Progression.Tick(dt)
	lvl.EvaluateObjectives()
	lvl.CheckVictory()
}
