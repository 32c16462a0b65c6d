// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/plumber/internal/application/scene"
	"github.com/younwookim/plumber/internal/infrastructure/config"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	display config.DisplayConfig
	dt      float64
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, display config.DisplayConfig) *Game {
	dt := 1.0 / 60.0 // Default to 60 FPS
	if display.Framerate > 0 {
		dt = 1.0 / float64(display.Framerate)
	}

	g := &Game{
		current: initialScene,
		display: display,
		dt:      dt,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}

	// Handle scene transition
	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.display.ScreenWidth, g.display.ScreenHeight
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// DT returns the delta time passed to each scene update
func (g *Game) DT() float64 {
	return g.dt
}

// Run opens the window and blocks until the game loop ends
func (g *Game) Run() error {
	scale := max(g.display.Scale, 1)
	ebiten.SetWindowSize(g.display.ScreenWidth*scale, g.display.ScreenHeight*scale)
	ebiten.SetWindowTitle(g.display.Title)
	if g.display.Framerate > 0 {
		ebiten.SetTPS(g.display.Framerate)
	}

	return ebiten.RunGame(g)
}
