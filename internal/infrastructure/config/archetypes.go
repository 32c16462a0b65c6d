package config

import "github.com/younwookim/plumber/internal/domain/entity"

// EnemyArchetype describes the stats of an enemy type referenced by level files
type EnemyArchetype struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Speed          float64 `yaml:"speed"` // Signed; negative walks left
	Gravity        float64 `yaml:"gravity"`
	Health         int     `yaml:"health"`
	Damage         int     `yaml:"damage"`
	Score          int     `yaml:"score"`
	Behavior       string  `yaml:"behavior"`
	PatrolDistance float64 `yaml:"patrolDistance"`
}

// DefaultGroundArchetype returns the stats of the basic walking enemy
func DefaultGroundArchetype() EnemyArchetype {
	return EnemyArchetype{
		Width:          entity.GroundEnemySize,
		Height:         entity.GroundEnemySize,
		Speed:          entity.GroundEnemySpeed,
		Gravity:        entity.GroundEnemyGravity,
		Health:         entity.DefaultEnemyHealth,
		Damage:         entity.DefaultEnemyDamage,
		Score:          entity.DefaultEnemyScore,
		Behavior:       "patrol",
		PatrolDistance: entity.DefaultPatrolLength,
	}
}

// Archetype returns the archetype for a type tag, falling back to "ground"
func (t *Tuning) Archetype(kind string) EnemyArchetype {
	if a, ok := t.Enemies[kind]; ok {
		return a
	}
	if a, ok := t.Enemies["ground"]; ok {
		return a
	}
	return DefaultGroundArchetype()
}

// NewEnemy builds an enemy at (x, y) from the archetype
func (a EnemyArchetype) NewEnemy(x, y float64) *entity.Enemy {
	e := entity.NewGroundEnemy(x, y)
	if a.Width > 0 {
		e.W = a.Width
	}
	if a.Height > 0 {
		e.H = a.Height
	}
	if a.Speed != 0 {
		e.VX = a.Speed
	}
	if a.Gravity != 0 {
		e.Gravity = a.Gravity
	}
	if a.Health > 0 {
		e.Health = a.Health
	}
	if a.Damage > 0 {
		e.Damage = a.Damage
	}
	if a.Score > 0 {
		e.ScoreValue = a.Score
	}
	if a.Behavior == "patrol" {
		e.Behavior = entity.NewPatrol(a.PatrolDistance)
	}
	return e
}
