// Package scene holds the contract between the ebiten loop and a screen.
// The platformer runs a single screen, playing.Playing, which shows the
// menu, the level and the recap as controller states rather than as
// separate scenes.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is driven by game.Game once per frame
type Scene interface {
	// Update advances one fixed step of dt seconds. A non-nil next scene
	// replaces this one; an error stops the loop (controller.ErrQuit for a
	// requested quit).
	Update(dt float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	// OnEnter runs when the scene becomes current
	OnEnter()

	// OnExit runs when the scene is replaced or the game stops; the
	// playing scene flushes its input recording here.
	OnExit()
}
