package controller

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/plumber/internal/application/state"
	"github.com/younwookim/plumber/internal/domain/entity"
	"github.com/younwookim/plumber/internal/domain/level"
	"github.com/younwookim/plumber/internal/infrastructure/config"
)

// sequence is the scripted walk from the flag into the castle
type sequence struct {
	step    state.SequenceStep
	timer   float64
	castleX float64
	fade    *gween.Tween
}

func (s *sequence) reset() {
	*s = sequence{}
}

func (s *sequence) advance(step state.SequenceStep) {
	s.step = step
	s.timer = 0
}

// start puts the player on the pole and begins the slide
func (s *sequence) start(cfg *config.SequenceTuning, p *entity.Player, f *entity.GoalFlag) {
	s.reset()
	s.castleX = f.X - cfg.CastleOffset + cfg.DoorOffset
	s.advance(state.StepFlagSlide)

	pole := f.X + cfg.PoleOffset
	p.SetPosition(pole-p.W/2, p.Y)
	p.Visible = true
	p.SetAlpha(1)
}

// update runs one tick of the sequence. Returns true once the player is
// inside and the level can be closed.
func (s *sequence) update(cfg *config.SequenceTuning, lvl *level.Level, dt float64) bool {
	p, f := lvl.Player, lvl.Flag
	if p == nil || f == nil {
		return false
	}

	if f.IsActive() {
		f.Update(dt)
	}
	s.timer += dt

	switch s.step {
	case state.StepFlagSlide:
		p.SetVelocity(0, -cfg.SlideSpeed)
		p.Y += p.VY * dt
		if p.Y <= f.Y {
			p.Y = f.Y
			p.SetVelocity(0, 0)
			p.Grounded = true
			s.advance(state.StepWalkToCastle)
		}

	case state.StepWalkToCastle:
		p.SetVelocity(cfg.WalkSpeed, 0)
		p.X += p.VX * dt
		if p.X >= s.castleX {
			s.advance(state.StepEnterCastle)
			s.fade = gween.New(1, 0, float32(cfg.FadeDuration), ease.Linear)
		}

	case state.StepEnterCastle:
		p.SetVelocity(0, 0)
		if s.fade != nil {
			alpha, _ := s.fade.Update(float32(dt))
			p.SetAlpha(float64(alpha))
		}
		if s.timer >= cfg.EnterDuration {
			s.advance(state.StepAwaitMenu)
		}

	case state.StepAwaitMenu:
		return true
	}
	return false
}
