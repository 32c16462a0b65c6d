package system

import "github.com/younwookim/plumber/internal/domain/entity"

// Event is a gameplay effect produced during a tick, drained by the presentation layer
type Event interface {
	isEvent()
}

// CoinCollected is emitted when the player picks up a coin or bonus pickup
type CoinCollected struct {
	Pickup *entity.Pickup
	Value  int
}

func (CoinCollected) isEvent() {}

// PowerUpCollected is emitted when the player picks up a power-up
type PowerUpCollected struct {
	Kind entity.PowerUpKind
}

func (PowerUpCollected) isEvent() {}

// EnemyStomped is emitted when the player lands on an enemy
type EnemyStomped struct {
	Enemy  *entity.Enemy
	Killed bool
	Score  int
}

func (EnemyStomped) isEvent() {}

// PlayerHurt is emitted when an enemy damages the player
type PlayerHurt struct {
	Form  entity.Transformation // Form after the hit
	Lives int
	Died  bool
}

func (PlayerHurt) isEvent() {}

// BlockStruck is emitted when the player hits a block from below
type BlockStruck struct {
	Obstacle *entity.Obstacle
	Kind     entity.ObstacleKind // Kind at the moment of the hit
	Spawned  *entity.Pickup      // Coin released by a question block, if any
}

func (BlockStruck) isEvent() {}

// BrickBroken is emitted when a big player destroys a brick
type BrickBroken struct {
	Obstacle *entity.Obstacle
}

func (BrickBroken) isEvent() {}

// FlagTouched is emitted once, when the player first reaches the goal flag
type FlagTouched struct {
	Flag *entity.GoalFlag
}

func (FlagTouched) isEvent() {}

// PlayerFell is emitted when the player drops below the pit line
type PlayerFell struct {
	Lives int
}

func (PlayerFell) isEvent() {}

// EventQueue collects events in emission order
type EventQueue struct {
	events []Event
}

// Emit appends an event
func (q *EventQueue) Emit(e Event) {
	q.events = append(q.events, e)
}

// Drain returns the pending events and empties the queue
func (q *EventQueue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of pending events
func (q *EventQueue) Len() int {
	return len(q.events)
}
