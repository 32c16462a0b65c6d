package entity

// MovementState is the discrete movement state derived from velocity
type MovementState int

const (
	MoveIdle MovementState = iota
	MoveWalking
	MoveJumping
	MoveFalling
	MoveDead
)

// String returns the string representation of the movement state
func (s MovementState) String() string {
	switch s {
	case MoveIdle:
		return "Idle"
	case MoveWalking:
		return "Walking"
	case MoveJumping:
		return "Jumping"
	case MoveFalling:
		return "Falling"
	case MoveDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// Transformation is the player's power level
type Transformation int

const (
	FormSmall Transformation = iota
	FormBig
	FormFire
)

// String returns the string representation of the transformation
func (t Transformation) String() string {
	switch t {
	case FormSmall:
		return "Small"
	case FormBig:
		return "Big"
	case FormFire:
		return "Fire"
	default:
		return "Unknown"
	}
}

// Hitbox sizes per transformation
const (
	PlayerWidth       = 32
	PlayerSmallHeight = 32
	PlayerBigHeight   = 48

	DefaultLives = 3
)

// HitboxSize returns the width and height used by a transformation
func (t Transformation) HitboxSize() (w, h float64) {
	if t == FormSmall {
		return PlayerWidth, PlayerSmallHeight
	}
	return PlayerWidth, PlayerBigHeight
}

// Player represents the player entity
type Player struct {
	Body

	Lives int
	Score int
	Coins int

	Grounded       bool
	CanJump        bool
	State          MovementState
	Transformation Transformation

	// Invincibility counts up from 0 while Invincible is set
	Invincible      bool
	InvincibleTimer float64

	// Presentation state used by the end-of-level sequence
	Visible bool
	Alpha   float64

	// Timers
	TimeSinceGround float64 // Coyote time accumulator
	JumpBufferTimer float64

	JumpHeld bool
	// Desired horizontal direction (-1, 0, 1), cleared after every physics step
	Intent float64
}

// NewPlayer creates a big player with default lives at the given position
func NewPlayer(x, y float64) *Player {
	w, h := FormBig.HitboxSize()
	return &Player{
		Body:           NewBody(x, y, w, h),
		Lives:          DefaultLives,
		CanJump:        true,
		State:          MoveIdle,
		Transformation: FormBig,
		Visible:        true,
		Alpha:          1,
	}
}

// IsDead returns true once the player has run out of lives
func (p *Player) IsDead() bool {
	return p.State == MoveDead
}

// IsInvincible returns true if player is currently invincible
func (p *Player) IsInvincible() bool {
	return p.Invincible
}

// CanAct returns true if the player accepts commands
func (p *Player) CanAct() bool {
	return p.Active && p.State != MoveDead
}

// SetTransformation switches the power level and resizes the hitbox.
// The bottom edge is kept in place so the feet stay planted.
func (p *Player) SetTransformation(t Transformation) {
	p.Transformation = t
	p.W, p.H = t.HitboxSize()
}

// StartInvincibility begins a fresh invincibility window
func (p *Player) StartInvincibility() {
	p.Invincible = true
	p.InvincibleTimer = 0
}

// Land snaps the player onto a surface at height y
func (p *Player) Land(y float64) {
	p.Y = y
	p.VY = 0
	p.Grounded = true
	p.CanJump = true
}

// SetAlpha sets opacity clamped to [0, 1]
func (p *Player) SetAlpha(a float64) {
	p.Alpha = max(0, min(1, a))
}

// Reset restores the player for a fresh attempt at (x, y).
// The transformation is kept.
func (p *Player) Reset(x, y float64) {
	p.SetPosition(x, y)
	p.SetVelocity(0, 0)
	p.Lives = DefaultLives
	p.Coins = 0
	p.Grounded = false
	p.CanJump = true
	p.State = MoveIdle
	p.Active = true
	p.Visible = true
	p.Alpha = 1
	p.TimeSinceGround = 0
	p.JumpBufferTimer = 0
	p.JumpHeld = false
	p.Intent = 0
}
