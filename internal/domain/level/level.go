// Package level holds the per-level game model: entities, objectives and
// running progression stats.
package level

import (
	"math"

	"github.com/younwookim/plumber/internal/domain/entity"
)

// Default player placement used when a level source does not define one
const (
	DefaultStartX = 100.0
	DefaultStartY = 64.0
)

// Reach-end zone half extents around the end position
const (
	EndZoneX = 100.0
	EndZoneY = 200.0
)

// Level is one playable map and everything living in it
type Level struct {
	Name          string
	Width, Height float64

	Player    *entity.Player
	Enemies   []*entity.Enemy
	Pickups   []*entity.Pickup
	Obstacles []*entity.Obstacle
	PowerUps  []*entity.PowerUp
	Flag      *entity.GoalFlag

	Objectives  []*Objective
	Progression *Progression

	StartX, StartY     float64
	RespawnX, RespawnY float64
	// End position for the reach-end objective; inert while EndX <= 0
	EndX, EndY float64

	TotalCoins   int
	TotalEnemies int

	finished       bool
	victoryReached bool
}

// New creates an empty level with the default reach-end objective
func New(name string, width, height float64) *Level {
	l := &Level{
		Name:        name,
		Width:       width,
		Height:      height,
		Progression: NewProgression(name),
		StartX:      DefaultStartX,
		StartY:      DefaultStartY,
		RespawnX:    DefaultStartX,
		RespawnY:    DefaultStartY,
		EndX:        -1,
		EndY:        -1,
	}
	l.AddObjective(NewObjective(ObjectiveReachEnd, 1, "Reach the end of the level"))
	return l
}

// SetStart sets where the player begins and respawns
func (l *Level) SetStart(x, y float64) {
	l.StartX, l.StartY = x, y
	l.RespawnX, l.RespawnY = x, y
}

// SetRespawn overrides the respawn point used after falling into a pit
func (l *Level) SetRespawn(x, y float64) {
	l.RespawnX, l.RespawnY = x, y
}

// SetEnd sets the reach-end target position
func (l *Level) SetEnd(x, y float64) {
	l.EndX, l.EndY = x, y
}

// SetPlayer installs the level's single player
func (l *Level) SetPlayer(p *entity.Player) {
	l.Player = p
}

// AddEnemy adds an enemy, limiting it to the castle if a flag exists
func (l *Level) AddEnemy(e *entity.Enemy) {
	l.Enemies = append(l.Enemies, e)
	l.TotalEnemies++
	if l.Flag != nil {
		e.SetBounds(0, l.Flag.CastleLimit())
	}
}

// AddPickup adds a pickup placed by the level source
func (l *Level) AddPickup(p *entity.Pickup) {
	l.Pickups = append(l.Pickups, p)
	if p.Kind == entity.PickupCoin {
		l.TotalCoins++
	}
}

// SpawnPickup adds a pickup created during play. It does not count
// towards the level's initial coin total.
func (l *Level) SpawnPickup(p *entity.Pickup) {
	l.Pickups = append(l.Pickups, p)
}

// AddObstacle adds static geometry
func (l *Level) AddObstacle(o *entity.Obstacle) {
	l.Obstacles = append(l.Obstacles, o)
}

// AddPowerUp adds a power-up
func (l *Level) AddPowerUp(p *entity.PowerUp) {
	l.PowerUps = append(l.PowerUps, p)
}

// SetFlag installs the goal flag and bounds every enemy to the castle
func (l *Level) SetFlag(f *entity.GoalFlag) {
	l.Flag = f
	if f == nil {
		return
	}
	for _, e := range l.Enemies {
		e.SetBounds(0, f.CastleLimit())
	}
}

// AddObjective appends a completion condition
func (l *Level) AddObjective(o *Objective) {
	l.Objectives = append(l.Objectives, o)
}

// NotifyCoinCollected updates progression for a collected coin
func (l *Level) NotifyCoinCollected() {
	l.Progression.AddCoin()
}

// NotifyEnemyDefeated updates progression for a defeated enemy
func (l *Level) NotifyEnemyDefeated() {
	l.Progression.EnemyDefeated()
}

// EvaluateObjectives refreshes every objective from the current state
func (l *Level) EvaluateObjectives() {
	for _, o := range l.Objectives {
		switch o.Kind {
		case ObjectiveReachEnd:
			if l.EndX > 0 && l.Player != nil {
				dx := math.Abs(l.Player.X - l.EndX)
				dy := math.Abs(l.Player.Y - l.EndY)
				if dx < EndZoneX && dy < EndZoneY {
					o.Complete()
				}
			}
		case ObjectiveCollectCoins:
			o.Set(l.Progression.Coins)
		case ObjectiveDefeatEnemies:
			o.Set(l.Progression.EnemiesDefeated)
		case ObjectiveSurviveTime:
			o.Set(int(l.Progression.ElapsedTime))
		}
	}
}

// AllObjectivesMet returns true when every objective is accomplished
func (l *Level) AllObjectivesMet() bool {
	for _, o := range l.Objectives {
		if !o.Accomplished {
			return false
		}
	}
	return true
}

// CheckVictory finishes the level the first time all objectives are met.
// Returns true only on that first time.
func (l *Level) CheckVictory() bool {
	if l.Player == nil || l.victoryReached {
		return false
	}
	if !l.AllObjectivesMet() {
		return false
	}
	l.victoryReached = true
	l.Finish(true)
	return true
}

// Finish ends the level. A victory with a player records completion stats.
func (l *Level) Finish(victory bool) {
	l.finished = true
	if victory && l.Player != nil {
		l.Progression.MarkCompleted(l.TotalCoins, l.Player.Lives)
	}
}

// Finished returns true once the level has ended
func (l *Level) Finished() bool {
	return l.finished
}

// Reset prepares the level for a new attempt.
// Enemy health is left as it is; only the active flag comes back.
func (l *Level) Reset() {
	l.finished = false
	l.victoryReached = false
	l.Progression.Reset()
	for _, o := range l.Objectives {
		o.Reset()
	}
	for _, e := range l.Enemies {
		e.Active = true
	}
	for _, p := range l.Pickups {
		p.Active = true
		p.Collected = false
	}
	if l.Flag != nil {
		l.Flag.Reset()
	}
	if l.Player != nil {
		l.Player.Reset(l.StartX, l.StartY)
	}
}

// PurgeInactive drops deactivated entities from every collection
func (l *Level) PurgeInactive() {
	l.Enemies = purge(l.Enemies)
	l.Pickups = purge(l.Pickups)
	l.Obstacles = purge(l.Obstacles)
	l.PowerUps = purge(l.PowerUps)
}

type activatable interface {
	IsActive() bool
}

func purge[T activatable](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if it.IsActive() {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}

// ClampPlayer keeps the player inside the level horizontally.
// Returns true if the position was corrected.
func (l *Level) ClampPlayer() bool {
	p := l.Player
	if p == nil {
		return false
	}
	if p.X < 0 {
		p.X = 0
		p.VX = 0
		return true
	}
	if p.X+p.W > l.Width {
		p.X = l.Width - p.W
		p.VX = 0
		return true
	}
	return false
}
