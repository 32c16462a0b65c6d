package entity

import "math"

// EnemyKind identifies the enemy variant
type EnemyKind int

const (
	EnemyGround EnemyKind = iota
)

// String returns the string representation of the enemy kind
func (k EnemyKind) String() string {
	switch k {
	case EnemyGround:
		return "ground"
	default:
		return "unknown"
	}
}

// Ground enemy defaults
const (
	GroundEnemySize    = 32
	GroundEnemySpeed   = -50.0
	GroundEnemyGravity = -800.0

	DefaultEnemyScore   = 100
	DefaultEnemyHealth  = 1
	DefaultEnemyDamage  = 1
	DefaultPatrolLength = 100.0
)

// Behavior drives an enemy's horizontal movement each tick
type Behavior interface {
	Execute(e *Enemy, dt float64)
}

// Enemy represents an enemy entity
type Enemy struct {
	Body

	Kind       EnemyKind
	Health     int
	Damage     int
	ScoreValue int
	Gravity    float64
	Behavior   Behavior
	Grounded   bool

	// Horizontal movement bounds
	MinX, MaxX float64
}

// NewGroundEnemy creates a walking enemy with default stats
func NewGroundEnemy(x, y float64) *Enemy {
	e := &Enemy{
		Body:       NewBody(x, y, GroundEnemySize, GroundEnemySize),
		Kind:       EnemyGround,
		Health:     DefaultEnemyHealth,
		Damage:     DefaultEnemyDamage,
		ScoreValue: DefaultEnemyScore,
		Gravity:    GroundEnemyGravity,
		MinX:       math.Inf(-1),
		MaxX:       math.Inf(1),
	}
	e.VX = GroundEnemySpeed
	return e
}

// SetBounds limits horizontal movement to [minX, maxX]
func (e *Enemy) SetBounds(minX, maxX float64) {
	e.MinX = minX
	e.MaxX = maxX
}

// TakeDamage applies damage to the enemy. Returns true if it died.
func (e *Enemy) TakeDamage(damage int) bool {
	e.Health -= damage
	if e.Health <= 0 {
		e.Active = false
		return true
	}
	return false
}

// IsAlive returns true if enemy is still alive
func (e *Enemy) IsAlive() bool {
	return e.Health > 0 && e.Active
}

// ReverseDirection flips horizontal velocity
func (e *Enemy) ReverseDirection() {
	e.VX = -e.VX
}

// Update runs the behavior, applies gravity and keeps the enemy's X within bounds
func (e *Enemy) Update(dt float64) {
	if !e.Active {
		return
	}
	e.Grounded = false

	if e.Behavior != nil {
		e.Behavior.Execute(e, dt)
	}

	e.VY += e.Gravity * dt
	e.Integrate(dt)

	if e.X < e.MinX {
		e.X = e.MinX
		e.ReverseDirection()
	} else if e.X > e.MaxX {
		e.X = e.MaxX
		e.ReverseDirection()
	}
}

// Land places the enemy on a surface at height y
func (e *Enemy) Land(y float64) {
	e.Y = y
	e.VY = 0
	e.Grounded = true
}

// Patrol walks back and forth around the spawn point
type Patrol struct {
	Distance float64

	spawnX  float64
	started bool
}

// NewPatrol creates a patrol behavior; non-positive distances use the default
func NewPatrol(distance float64) *Patrol {
	if distance <= 0 {
		distance = DefaultPatrolLength
	}
	return &Patrol{Distance: distance}
}

// Execute implements Behavior
func (p *Patrol) Execute(e *Enemy, dt float64) {
	if !p.started {
		p.spawnX = e.X
		p.started = true
	}

	offset := e.X - p.spawnX
	if math.Abs(offset) < p.Distance {
		return
	}
	// Only turn while heading away, otherwise the enemy would jitter at the edge
	if (offset > 0 && e.VX > 0) || (offset < 0 && e.VX < 0) {
		e.ReverseDirection()
	}
}

// SpawnX returns the recorded spawn position and whether it has been recorded
func (p *Patrol) SpawnX() (float64, bool) {
	return p.spawnX, p.started
}
