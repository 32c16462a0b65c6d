// Package playing provides the main gameplay scene.
package playing

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/plumber/internal/application/controller"
	"github.com/younwookim/plumber/internal/application/scene"
	"github.com/younwookim/plumber/internal/application/state"
	"github.com/younwookim/plumber/internal/application/system"
	"github.com/younwookim/plumber/internal/domain/entity"
	"github.com/younwookim/plumber/internal/domain/level"
	"github.com/younwookim/plumber/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{92, 148, 252, 255}
	colorGround   = color.RGBA{160, 82, 45, 255}
	colorQuestion = color.RGBA{230, 170, 30, 255}
	colorBrick    = color.RGBA{180, 70, 40, 255}
	colorPlatform = color.RGBA{120, 120, 140, 255}
	colorPlayer   = color.RGBA{220, 40, 40, 255}
	colorEnemy    = color.RGBA{130, 70, 20, 255}
	colorGold     = color.RGBA{255, 215, 0, 255}
	colorBonus    = color.RGBA{80, 220, 220, 255}
	colorPole     = color.RGBA{200, 200, 200, 255}
	colorFlag     = color.RGBA{40, 180, 40, 255}
	colorButton   = color.RGBA{40, 40, 60, 230}
)

var powerUpColors = map[entity.PowerUpKind]color.RGBA{
	entity.PowerMushroom:   {230, 60, 60, 255},
	entity.PowerFireFlower: {255, 120, 0, 255},
	entity.PowerOneUp:      {60, 200, 60, 255},
	entity.PowerStar:       {255, 240, 80, 255},
}

// Playing is the main gameplay scene
type Playing struct {
	ctrl    *controller.Controller
	input   system.InputSource
	tunings <-chan *config.Tuning
	logger  *log.Logger

	screenW int
	screenH int

	// Input recording
	recorder       *Recorder
	recordFilename string
}

// New creates a new Playing scene driving ctrl with input.
// If recordPath is not empty, gameplay will be recorded.
func New(ctrl *controller.Controller, input system.InputSource, display config.DisplayConfig, logger *log.Logger, recordPath string) *Playing {
	if logger == nil {
		logger = log.Default()
	}

	p := &Playing{
		ctrl:           ctrl,
		input:          input,
		logger:         logger,
		screenW:        display.ScreenWidth,
		screenH:        display.ScreenHeight,
		recordFilename: recordPath,
	}

	if recordPath != "" {
		p.recorder = NewRecorder(ctrl.Manager().CurrentSource())
		logger.Info("recording enabled", "path", recordPath)
	}

	return p
}

// WatchTuning applies every tuning published on ch between ticks
func (p *Playing) WatchTuning(ch <-chan *config.Tuning) {
	p.tunings = ch
}

// Controller returns the driven game controller
func (p *Playing) Controller() *controller.Controller {
	return p.ctrl
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.applyTuning()

	// F5: Save recording manually
	if p.recorder != nil && inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		p.saveRecording()
	}

	input := p.input.GetInput()
	if p.recorder != nil {
		p.recorder.RecordFrame(input)
	}

	err := p.ctrl.Update(input, dt)
	for _, ev := range p.ctrl.Events() {
		p.logEvent(ev)
	}
	if err != nil {
		if errors.Is(err, controller.ErrQuit) {
			p.saveRecording()
		}
		return nil, err
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) applyTuning() {
	for {
		select {
		case t, ok := <-p.tunings:
			if !ok {
				p.tunings = nil
				return
			}
			p.ctrl.SetTuning(t)
		default:
			return
		}
	}
}

func (p *Playing) logEvent(ev system.Event) {
	switch e := ev.(type) {
	case system.CoinCollected:
		p.logger.Debug("coin collected", "value", e.Value)
	case system.PowerUpCollected:
		p.logger.Debug("power-up collected", "kind", e.Kind)
	case system.EnemyStomped:
		p.logger.Debug("enemy stomped", "killed", e.Killed, "score", e.Score)
	case system.PlayerHurt:
		p.logger.Debug("player hurt", "form", e.Form, "lives", e.Lives, "died", e.Died)
	case system.BlockStruck:
		p.logger.Debug("block struck", "kind", e.Kind)
	case system.BrickBroken:
		p.logger.Debug("brick broken")
	case system.FlagTouched:
		p.logger.Debug("flag touched")
	case system.PlayerFell:
		p.logger.Debug("player fell", "lives", e.Lives)
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		p.logger.Error("failed to save recording", "err", err)
	} else {
		p.logger.Info("recording saved", "path", filename, "frames", p.recorder.FrameCount())
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	lvl := p.ctrl.Level()
	if lvl != nil && p.ctrl.State() != state.StateMenu {
		camX := p.cameraX(lvl)
		p.drawObstacles(screen, lvl, camX)
		p.drawItems(screen, lvl, camX)
		p.drawEnemies(screen, lvl, camX)
		p.drawFlag(screen, lvl, camX)
		p.drawPlayer(screen, lvl, camX)
		p.drawUI(screen, lvl)
	}

	switch p.ctrl.State() {
	case state.StateMenu:
		p.drawMessage(screen, color.RGBA{0, 0, 0, 160}, "PLUMBER\n\nPress ENTER to start")
	case state.StatePaused:
		p.drawMessage(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nPress ESC to resume")
	case state.StateLevelTransition:
		m := p.ctrl.Manager()
		alpha := uint8(255 * (1 - m.TransitionProgress()))
		p.drawMessage(screen, color.RGBA{0, 0, 0, alpha}, fmt.Sprintf("LEVEL %d", m.Index()+1))
	case state.StateGameOver:
		p.drawMessage(screen, color.RGBA{100, 0, 0, 180}, "GAME OVER\n\nENTER: retry  M: menu")
	case state.StateLevelRecap:
		p.drawMessage(screen, color.RGBA{0, 0, 0, 180}, p.recapText(lvl))
	case state.StateVictory:
		m := p.ctrl.Manager()
		text := fmt.Sprintf("YOU WIN!\n\nTotal score: %d\nStars: %d/%d", m.TotalScore(), m.TotalStars(), m.MaxStars())
		p.drawMessage(screen, color.RGBA{0, 60, 0, 180}, text)
	}

	p.drawButtons(screen)
}

// cameraX follows the player, clamped to the level
func (p *Playing) cameraX(lvl *level.Level) float64 {
	if lvl.Player == nil {
		return 0
	}
	camX := lvl.Player.Bounds().CenterX() - float64(p.screenW)/2
	maxCamX := lvl.Width - float64(p.screenW)
	if camX > maxCamX {
		camX = maxCamX
	}
	if camX < 0 {
		camX = 0
	}
	return camX
}

// toScreen converts a Y-up world rect to Y-down screen space
func (p *Playing) toScreen(r entity.Rect, camX float64) (x, y, w, h float64) {
	return r.X - camX, float64(p.screenH) - r.Top(), r.W, r.H
}

func (p *Playing) fillRect(screen *ebiten.Image, r entity.Rect, camX float64, c color.Color) {
	x, y, w, h := p.toScreen(r, camX)
	if x+w < 0 || x > float64(p.screenW) {
		return
	}
	ebitenutil.DrawRect(screen, x, y, w, h, c)
}

func (p *Playing) drawObstacles(screen *ebiten.Image, lvl *level.Level, camX float64) {
	for _, o := range lvl.Obstacles {
		if !o.IsActive() {
			continue
		}

		var c color.Color
		switch o.Kind {
		case entity.BlockQuestion:
			c = colorQuestion
		case entity.BlockBrick:
			c = colorBrick
		case entity.BlockPlatform:
			c = colorPlatform
		default:
			c = colorGround
		}
		p.fillRect(screen, o.Bounds(), camX, c)
	}
}

func (p *Playing) drawItems(screen *ebiten.Image, lvl *level.Level, camX float64) {
	for _, pk := range lvl.Pickups {
		if !pk.CanCollect() {
			continue
		}
		c := colorGold
		if pk.Kind == entity.PickupBonus {
			c = colorBonus
		}
		p.fillRect(screen, pk.Bounds(), camX, c)
	}

	for _, pu := range lvl.PowerUps {
		if !pu.CanCollect() {
			continue
		}
		p.fillRect(screen, pu.Bounds(), camX, powerUpColors[pu.Kind])
	}
}

func (p *Playing) drawEnemies(screen *ebiten.Image, lvl *level.Level, camX float64) {
	for _, e := range lvl.Enemies {
		if !e.IsAlive() {
			continue
		}
		p.fillRect(screen, e.Bounds(), camX, colorEnemy)
	}
}

func (p *Playing) drawFlag(screen *ebiten.Image, lvl *level.Level, camX float64) {
	f := lvl.Flag
	if f == nil {
		return
	}

	pole := entity.Rect{X: f.X + f.W/2 - 2, Y: f.Y, W: 4, H: f.PoleHeight}
	p.fillRect(screen, pole, camX, colorPole)

	// The cloth slides down the pole once touched
	clothY := f.Y + f.PoleHeight - 24
	if f.Touched {
		clothY = max(f.Y, clothY-f.AnimationTime*f.PoleHeight)
	}
	cloth := entity.Rect{X: pole.X - 28, Y: clothY, W: 28, H: 20}
	p.fillRect(screen, cloth, camX, colorFlag)
}

func (p *Playing) drawPlayer(screen *ebiten.Image, lvl *level.Level, camX float64) {
	pl := lvl.Player
	if pl == nil || !pl.Visible || pl.IsDead() {
		return
	}

	// Flash when invincible
	if pl.IsInvincible() && int(pl.InvincibleTimer*10)%2 == 0 {
		return
	}

	c := colorPlayer
	c.A = uint8(float64(c.A) * pl.Alpha)
	c.R = uint8(float64(c.R) * pl.Alpha)
	c.G = uint8(float64(c.G) * pl.Alpha)
	c.B = uint8(float64(c.B) * pl.Alpha)
	p.fillRect(screen, pl.Bounds(), camX, c)
}

func (p *Playing) drawUI(screen *ebiten.Image, lvl *level.Level) {
	var sb strings.Builder
	if pl := lvl.Player; pl != nil {
		fmt.Fprintf(&sb, "%s  SCORE %06d  COINS %02d  LIVES %d  TIME %.0f\n",
			lvl.Name, pl.Score, pl.Coins, pl.Lives, lvl.Progression.ElapsedTime)
	}
	for _, o := range lvl.Objectives {
		sb.WriteString(o.String())
		sb.WriteByte('\n')
	}
	ebitenutil.DebugPrint(screen, sb.String())

	ebitenutil.DebugPrintAt(screen, "A/D: Move | Space: Jump | ESC: Pause", 10, p.screenH-20)
}

func (p *Playing) recapText(lvl *level.Level) string {
	if lvl == nil {
		return "LEVEL COMPLETE"
	}
	prog, ok := p.ctrl.Manager().Progress(lvl.Name)
	if !ok {
		return "LEVEL COMPLETE"
	}
	return "LEVEL COMPLETE\n\n" + prog.Summary()
}

func (p *Playing) drawMessage(screen *ebiten.Image, overlay color.Color, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-80, 40)
}

func (p *Playing) drawButtons(screen *ebiten.Image) {
	for _, b := range p.ctrl.Buttons() {
		ebitenutil.DrawRect(screen, b.X, b.Y, b.W, b.H, colorButton)
		label := b.Kind.String()
		ebitenutil.DebugPrintAt(screen, label, int(b.X+b.W/2)-len(label)*3, int(b.Y+b.H/2)-8)
	}
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
