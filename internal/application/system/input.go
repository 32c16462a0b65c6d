package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/plumber/internal/domain/entity"
)

// InputSource produces one input snapshot per tick
type InputSource interface {
	GetInput() InputState
}

// InputState holds the current input state
type InputState struct {
	Left         bool
	Right        bool
	JumpPressed  bool
	JumpHeld     bool
	JumpReleased bool
	Pause        bool
	Confirm      bool
	Menu         bool
	MouseX       int
	MouseY       int
	MouseClick   bool
}

// InputSystem reads keyboard and mouse through ebiten
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

var (
	leftKeys  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	jumpKeys  = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW}
	pauseKeys = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP}
)

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	mx, my := ebiten.CursorPosition()
	return InputState{
		Left:         anyPressed(leftKeys),
		Right:        anyPressed(rightKeys),
		JumpPressed:  anyJustPressed(jumpKeys),
		JumpHeld:     anyPressed(jumpKeys),
		JumpReleased: anyJustReleased(jumpKeys),
		Pause:        anyJustPressed(pauseKeys),
		Confirm:      inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		Menu:         inpututil.IsKeyJustPressed(ebiten.KeyM),
		MouseX:       mx,
		MouseY:       my,
		MouseClick:   inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func anyJustReleased(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}

// ApplyInput turns an input snapshot into player commands
func ApplyInput(c *PlayerController, p *entity.Player, in InputState) {
	switch {
	case in.Left && !in.Right:
		c.MoveLeft(p)
	case in.Right && !in.Left:
		c.MoveRight(p)
	default:
		c.Stop(p)
	}

	if in.JumpPressed {
		c.Jump(p)
	}
	if in.JumpReleased {
		c.ReleaseJump(p)
	}
}
