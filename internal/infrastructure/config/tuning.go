package config

import (
	"errors"
	"fmt"
)

// Tuning is the root config for tuning.yaml. Every gameplay constant lives here.
type Tuning struct {
	Display   DisplayConfig             `yaml:"display"`
	Player    PlayerTuning              `yaml:"player"`
	Collision CollisionTuning           `yaml:"collision"`
	Sequence  SequenceTuning            `yaml:"sequence"`
	Rules     RulesTuning               `yaml:"rules"`
	Enemies   map[string]EnemyArchetype `yaml:"enemies"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screenWidth"`
	ScreenHeight int    `yaml:"screenHeight"`
	Scale        int    `yaml:"scale"`
	Framerate    int    `yaml:"framerate"`
	Title        string `yaml:"title"`
}

// PlayerTuning configures the player movement model
type PlayerTuning struct {
	MaxSpeed        float64 `yaml:"maxSpeed"`
	Acceleration    float64 `yaml:"acceleration"`
	AirAcceleration float64 `yaml:"airAcceleration"`
	Deceleration    float64 `yaml:"deceleration"` // Halved while airborne

	JumpVelocity     float64 `yaml:"jumpVelocity"`
	MinJumpVelocity  float64 `yaml:"minJumpVelocity"` // Upward speed cap once jump is released
	RiseGravity      float64 `yaml:"riseGravity"`     // Rising with jump held
	CutGravity       float64 `yaml:"cutGravity"`      // Rising with jump released
	FallGravity      float64 `yaml:"fallGravity"`
	TerminalVelocity float64 `yaml:"terminalVelocity"`

	CoyoteTime float64 `yaml:"coyoteTime"`
	JumpBuffer float64 `yaml:"jumpBuffer"`

	SafetyFloor        float64 `yaml:"safetyFloor"`
	InvincibleDuration float64 `yaml:"invincibleDuration"`
	DeathBounce        float64 `yaml:"deathBounce"`

	CoinsPerLife int `yaml:"coinsPerLife"`
	CoinScore    int `yaml:"coinScore"`
	PowerUpBonus int `yaml:"powerUpBonus"`
	OneUpBonus   int `yaml:"oneUpBonus"`
}

// CollisionTuning configures the collision resolver
type CollisionTuning struct {
	ProximityRadius float64 `yaml:"proximityRadius"`
	StompTolerance  float64 `yaml:"stompTolerance"`
	StompBounce     float64 `yaml:"stompBounce"`
	KnockbackX      float64 `yaml:"knockbackX"`
	KnockbackY      float64 `yaml:"knockbackY"`

	// Ground probe under the feet: inset from each side and depth
	ProbeInset float64 `yaml:"probeInset"`
	ProbeDepth float64 `yaml:"probeDepth"`

	BrickScore     int `yaml:"brickScore"`
	BlockCoinValue int `yaml:"blockCoinValue"`

	// Broadphase cell size
	CellSize int `yaml:"cellSize"`
}

// SequenceTuning configures the scripted end-of-level sequence
type SequenceTuning struct {
	SlideSpeed    float64 `yaml:"slideSpeed"` // Downward speed along the pole
	WalkSpeed     float64 `yaml:"walkSpeed"`
	FadeDuration  float64 `yaml:"fadeDuration"`
	EnterDuration float64 `yaml:"enterDuration"`
	PoleOffset    float64 `yaml:"poleOffset"` // Pole X relative to the flag X
	CastleOffset  float64 `yaml:"castleOffset"`
	DoorOffset    float64 `yaml:"doorOffset"` // Door center relative to the castle X
}

// RulesTuning holds level-wide rules
type RulesTuning struct {
	PitY               float64 `yaml:"pitY"`
	TransitionDuration float64 `yaml:"transitionDuration"`
}

// DefaultTuning returns the shipped tuning values
func DefaultTuning() *Tuning {
	return &Tuning{
		Display: DisplayConfig{
			ScreenWidth:  800,
			ScreenHeight: 480,
			Scale:        1,
			Framerate:    60,
			Title:        "plumber",
		},
		Player: PlayerTuning{
			MaxSpeed:           250,
			Acceleration:       1200,
			AirAcceleration:    900,
			Deceleration:       1500,
			JumpVelocity:       700,
			MinJumpVelocity:    250,
			RiseGravity:        -1100,
			CutGravity:         -1600,
			FallGravity:        -2000,
			TerminalVelocity:   -600,
			CoyoteTime:         0.12,
			JumpBuffer:         0.15,
			SafetyFloor:        32,
			InvincibleDuration: 2.0,
			DeathBounce:        400,
			CoinsPerLife:       100,
			CoinScore:          10,
			PowerUpBonus:       1000,
			OneUpBonus:         500,
		},
		Collision: CollisionTuning{
			ProximityRadius: 200,
			StompTolerance:  8,
			StompBounce:     350,
			KnockbackX:      250,
			KnockbackY:      250,
			ProbeInset:      2,
			ProbeDepth:      2,
			BrickScore:      50,
			BlockCoinValue:  10,
			CellSize:        32,
		},
		Sequence: SequenceTuning{
			SlideSpeed:    150,
			WalkSpeed:     100,
			FadeDuration:  0.5,
			EnterDuration: 2.0,
			PoleOffset:    12,
			CastleOffset:  150,
			DoorOffset:    64,
		},
		Rules: RulesTuning{
			PitY:               -100,
			TransitionDuration: 2.0,
		},
		Enemies: map[string]EnemyArchetype{
			"ground": DefaultGroundArchetype(),
		},
	}
}

// Validate rejects values that would break the simulation
func (t *Tuning) Validate() error {
	var errs []error
	if t.Display.Framerate <= 0 {
		errs = append(errs, fmt.Errorf("display.framerate must be positive, got %d", t.Display.Framerate))
	}
	if t.Player.MaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("player.maxSpeed must be positive, got %g", t.Player.MaxSpeed))
	}
	if t.Player.CoinsPerLife <= 0 {
		errs = append(errs, fmt.Errorf("player.coinsPerLife must be positive, got %d", t.Player.CoinsPerLife))
	}
	if t.Collision.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("collision.cellSize must be positive, got %d", t.Collision.CellSize))
	}
	if t.Rules.TransitionDuration < 0 {
		errs = append(errs, fmt.Errorf("rules.transitionDuration must not be negative, got %g", t.Rules.TransitionDuration))
	}
	return errors.Join(errs...)
}
