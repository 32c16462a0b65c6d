package system

import (
	"github.com/younwookim/plumber/internal/domain/entity"
	"github.com/younwookim/plumber/internal/infrastructure/config"
)

// PlayerController applies the player movement model and the rules that
// change the player's form, lives and score.
type PlayerController struct {
	config *config.PlayerTuning
}

// NewPlayerController creates a new player controller
func NewPlayerController(cfg *config.PlayerTuning) *PlayerController {
	return &PlayerController{config: cfg}
}

// SetConfig swaps the tuning used from the next tick on
func (c *PlayerController) SetConfig(cfg *config.PlayerTuning) {
	c.config = cfg
}

// Update advances the player by one tick
func (c *PlayerController) Update(p *entity.Player, dt float64) {
	if p == nil || !p.CanAct() {
		return
	}

	c.updateInvincibility(p, dt)
	c.applyHorizontal(p, dt)
	c.applyGravity(p, dt)
	c.updateCoyote(p, dt)
	c.updateJumpBuffer(p, dt)

	p.Integrate(dt)

	if p.Y <= c.config.SafetyFloor {
		p.Land(c.config.SafetyFloor)
	}

	c.updateState(p)
	p.Intent = 0
}

func (c *PlayerController) updateInvincibility(p *entity.Player, dt float64) {
	if !p.Invincible {
		return
	}
	p.InvincibleTimer += dt
	if p.InvincibleTimer >= c.config.InvincibleDuration {
		p.Invincible = false
		p.InvincibleTimer = 0
	}
}

func (c *PlayerController) applyHorizontal(p *entity.Player, dt float64) {
	cfg := c.config

	if p.Intent != 0 {
		accel := cfg.AirAcceleration
		if p.Grounded {
			accel = cfg.Acceleration
		}
		p.VX += p.Intent * accel * dt
		p.VX = max(-cfg.MaxSpeed, min(cfg.MaxSpeed, p.VX))
		return
	}

	if p.VX == 0 {
		return
	}
	decel := cfg.Deceleration
	if !p.Grounded {
		decel /= 2
	}
	// Stop at zero instead of overshooting into the other direction
	if p.VX > 0 {
		p.VX = max(0, p.VX-decel*dt)
	} else {
		p.VX = min(0, p.VX+decel*dt)
	}
}

func (c *PlayerController) applyGravity(p *entity.Player, dt float64) {
	cfg := c.config

	g := cfg.RiseGravity
	switch {
	case p.VY < 0:
		g = cfg.FallGravity
	case p.VY > 0 && !p.JumpHeld:
		g = cfg.CutGravity
	}
	p.VY += g * dt

	// Variable jump height
	if !p.JumpHeld && p.VY > cfg.MinJumpVelocity {
		p.VY = cfg.MinJumpVelocity
	}
	if p.VY < cfg.TerminalVelocity {
		p.VY = cfg.TerminalVelocity
	}
}

func (c *PlayerController) updateCoyote(p *entity.Player, dt float64) {
	if p.Grounded {
		p.TimeSinceGround = 0
		return
	}
	p.TimeSinceGround += dt
}

func (c *PlayerController) updateJumpBuffer(p *entity.Player, dt float64) {
	if p.JumpBufferTimer <= 0 {
		return
	}
	p.JumpBufferTimer -= dt
	if p.JumpBufferTimer > 0 && p.Grounded {
		c.launch(p)
		p.JumpBufferTimer = 0
	}
}

func (c *PlayerController) updateState(p *entity.Player) {
	switch {
	case p.VY > 0:
		p.State = entity.MoveJumping
		p.Grounded = false
	case p.VY < 0 && !p.Grounded:
		p.State = entity.MoveFalling
	case p.VX != 0:
		p.State = entity.MoveWalking
	default:
		p.State = entity.MoveIdle
	}
}

func (c *PlayerController) launch(p *entity.Player) {
	p.VY = c.config.JumpVelocity
	p.Grounded = false
	p.CanJump = false
	p.TimeSinceGround = c.config.CoyoteTime
	p.State = entity.MoveJumping
	p.JumpHeld = true
}

// Jump starts a jump when grounded or within coyote time, otherwise buffers it
func (c *PlayerController) Jump(p *entity.Player) {
	if p == nil || !p.CanAct() {
		return
	}

	onGround := p.Grounded || p.TimeSinceGround < c.config.CoyoteTime
	switch {
	case onGround && p.CanJump:
		c.launch(p)
	case !p.Grounded:
		p.JumpBufferTimer = c.config.JumpBuffer
	}
	p.JumpHeld = true
}

// ReleaseJump marks the jump button as released
func (c *PlayerController) ReleaseJump(p *entity.Player) {
	if p == nil || !p.CanAct() {
		return
	}
	p.JumpHeld = false
}

// MoveLeft sets the desired direction to the left for this tick
func (c *PlayerController) MoveLeft(p *entity.Player) {
	if p == nil || !p.CanAct() {
		return
	}
	p.Intent = -1
}

// MoveRight sets the desired direction to the right for this tick
func (c *PlayerController) MoveRight(p *entity.Player) {
	if p == nil || !p.CanAct() {
		return
	}
	p.Intent = 1
}

// Stop clears the desired direction
func (c *PlayerController) Stop(p *entity.Player) {
	if p == nil || !p.CanAct() {
		return
	}
	p.Intent = 0
}

// TakeDamage downgrades the player one step: fire, big, small, then a life.
// Returns true if the player lost its last life.
func (c *PlayerController) TakeDamage(p *entity.Player) bool {
	if p == nil || !p.CanAct() || p.Invincible {
		return false
	}

	switch p.Transformation {
	case entity.FormFire:
		p.SetTransformation(entity.FormBig)
	case entity.FormBig:
		p.SetTransformation(entity.FormSmall)
	default:
		p.Lives--
	}

	if p.Lives <= 0 {
		c.die(p)
		return true
	}
	p.StartInvincibility()
	return false
}

func (c *PlayerController) die(p *entity.Player) {
	p.Lives = 0
	p.State = entity.MoveDead
	p.Active = false
	p.Grounded = false
	p.Invincible = false
	p.VX = 0
	p.VY = c.config.DeathBounce
}

// LoseLifeAndRespawn costs one life and puts the player back at (x, y).
// Returns true if that was the last life.
func (c *PlayerController) LoseLifeAndRespawn(p *entity.Player, x, y float64) bool {
	if p == nil || !p.CanAct() {
		return false
	}

	p.Lives--
	if p.Lives <= 0 {
		c.die(p)
		return true
	}

	p.SetPosition(x, y)
	p.SetVelocity(0, 0)
	p.Grounded = false
	p.CanJump = true
	p.TimeSinceGround = 0
	p.JumpBufferTimer = 0
	p.State = entity.MoveIdle
	return false
}

// ApplyPowerUp applies the effect of a collected power-up
func (c *PlayerController) ApplyPowerUp(p *entity.Player, kind entity.PowerUpKind) {
	if p == nil || !p.CanAct() {
		return
	}

	bonus := c.config.PowerUpBonus
	switch kind {
	case entity.PowerMushroom:
		if p.Transformation == entity.FormSmall {
			p.SetTransformation(entity.FormBig)
			return
		}
		p.Score += bonus
	case entity.PowerFireFlower:
		if p.Transformation == entity.FormFire {
			p.Score += bonus
			return
		}
		p.SetTransformation(entity.FormFire)
	case entity.PowerOneUp:
		p.Lives++
		p.Score += c.config.OneUpBonus
	case entity.PowerStar:
		p.StartInvincibility()
		p.Score += bonus
	}
}

// AddCoins credits n coins. Every crossed multiple of CoinsPerLife grants a life.
func (c *PlayerController) AddCoins(p *entity.Player, n int) {
	if p == nil || n <= 0 {
		return
	}

	per := c.config.CoinsPerLife
	before := p.Coins
	p.Coins += n
	p.Score += n * c.config.CoinScore
	if per > 0 {
		p.Lives += p.Coins/per - before/per
	}
}
