package system

import (
	"cmp"
	"math"
	"slices"

	"github.com/solarlune/resolv"
	"github.com/younwookim/plumber/internal/domain/entity"
	"github.com/younwookim/plumber/internal/domain/level"
	"github.com/younwookim/plumber/internal/infrastructure/config"
)

const (
	tagSolid = "solid"
	tagProbe = "probe"
)

// CollisionResolver resolves contacts between the player, enemies, items and
// level geometry once per tick. Solid obstacles are indexed in a resolv.Space.
type CollisionResolver struct {
	config  *config.CollisionTuning
	players *PlayerController

	level   *level.Level
	space   *resolv.Space
	probe   *resolv.Object
	objects map[*entity.Obstacle]*resolv.Object
	order   map[*entity.Obstacle]int

	// World position of the space's first cell; resolv only indexes
	// non-negative cells
	originX, originY float64

	events EventQueue
}

// NewCollisionResolver creates a resolver bound to lvl (which may be nil)
func NewCollisionResolver(cfg *config.CollisionTuning, players *PlayerController, lvl *level.Level) *CollisionResolver {
	r := &CollisionResolver{
		config:  cfg,
		players: players,
	}
	r.SetLevel(lvl)
	return r
}

// SetConfig swaps the tuning used from the next Resolve on
func (r *CollisionResolver) SetConfig(cfg *config.CollisionTuning) {
	r.config = cfg
}

// Level returns the level the resolver is bound to
func (r *CollisionResolver) Level() *level.Level {
	return r.level
}

// SetLevel rebuilds the broadphase for lvl
func (r *CollisionResolver) SetLevel(lvl *level.Level) {
	r.level = lvl
	r.objects = make(map[*entity.Obstacle]*resolv.Object)
	r.order = make(map[*entity.Obstacle]int)
	r.space = nil
	r.probe = nil
	r.originX, r.originY = 0, 0
	if lvl == nil {
		return
	}

	cell := max(r.config.CellSize, 1)
	w, h := lvl.Width, lvl.Height
	for _, o := range lvl.Obstacles {
		b := o.Bounds()
		r.originX = min(r.originX, math.Floor(b.X))
		r.originY = min(r.originY, math.Floor(b.Y))
		w = max(w, b.Right())
		h = max(h, b.Top())
	}
	r.space = resolv.NewSpace(int(w-r.originX)+cell, int(h-r.originY)+cell, cell, cell)

	for i, o := range lvl.Obstacles {
		r.order[o] = i
		if !o.Blocks() {
			continue
		}
		obj := resolv.NewObject(o.X-r.originX, o.Y-r.originY, o.W, o.H, tagSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, o.W, o.H))
		obj.Data = o
		r.space.Add(obj)
		r.objects[o] = obj
	}

	r.probe = resolv.NewObject(0, 0, 1, 1, tagProbe)
	r.space.Add(r.probe)
}

// Events returns and clears the events produced since the last call
func (r *CollisionResolver) Events() []Event {
	return r.events.Drain()
}

// nearbySolids returns solid obstacles whose cells come within margin of box,
// in level order
func (r *CollisionResolver) nearbySolids(box entity.Rect, margin float64) []*entity.Obstacle {
	if r.space == nil {
		return nil
	}

	area := box.Expand(margin)
	r.probe.X, r.probe.Y = area.X-r.originX, area.Y-r.originY
	r.probe.W, r.probe.H = area.W, area.H
	r.probe.Update()

	check := r.probe.Check(0, 0, tagSolid)
	if check == nil {
		return nil
	}

	found := make([]*entity.Obstacle, 0, len(check.Objects))
	for _, obj := range check.Objects {
		if o, ok := obj.Data.(*entity.Obstacle); ok && o.Blocks() {
			found = append(found, o)
		}
	}
	slices.SortFunc(found, func(a, b *entity.Obstacle) int {
		return cmp.Compare(r.order[a], r.order[b])
	})
	return found
}

func (r *CollisionResolver) solidAt(box entity.Rect) bool {
	for _, o := range r.nearbySolids(box, 0) {
		if box.Overlaps(o.Bounds()) {
			return true
		}
	}
	return false
}

func (r *CollisionResolver) removeObstacle(o *entity.Obstacle) {
	if obj, ok := r.objects[o]; ok {
		r.space.Remove(obj)
		delete(r.objects, o)
	}
}

// Resolve runs every collision pass for the current tick
func (r *CollisionResolver) Resolve() {
	lvl := r.level
	if lvl == nil || lvl.Player == nil || !lvl.Player.IsActive() {
		return
	}
	p := lvl.Player

	r.resolvePlayerObstacles(p)
	r.resolvePlayerEnemies(p)
	r.resolvePlayerPickups(p)
	r.resolvePlayerPowerUps(p)
	r.resolvePlayerFlag(p)

	for _, e := range lvl.Enemies {
		if e.IsAlive() {
			r.resolveEnemyObstacles(e)
		}
	}
	for _, pu := range lvl.PowerUps {
		if pu.IsActive() && !pu.Emerging {
			r.resolvePowerUpObstacles(pu)
		}
	}
}

func (r *CollisionResolver) resolvePlayerObstacles(p *entity.Player) {
	preVY := p.VY
	box := p.Bounds()
	candidates := r.nearbySolids(box, r.config.ProximityRadius)

	// Horizontal pass: push out sideways, velocity untouched
	for _, o := range candidates {
		ob := o.Bounds()
		if !o.Blocks() || !box.Overlaps(ob) {
			continue
		}
		ov := entity.OverlapOf(box, ob)
		if ov.MinX() >= ov.MinY() {
			continue
		}
		if ov.Left < ov.Right {
			p.X = ob.X - box.W
		} else {
			p.X = ob.Right()
		}
		box = p.Bounds()
	}

	// Vertical pass: landing and ceilings. Ties go here.
	landed := false
	for _, o := range candidates {
		ob := o.Bounds()
		if !o.Blocks() || !box.Overlaps(ob) {
			continue
		}
		ov := entity.OverlapOf(box, ob)
		if ov.MinY() > ov.MinX() {
			continue
		}
		if ov.Bottom < ov.Top {
			p.Land(ob.Top())
			landed = true
		} else if p.VY > 0 {
			p.Y = ob.Y - box.H
			p.VY = 0
			r.strikeBlock(o, p)
		}
		box = p.Bounds()
	}

	if landed || preVY > 0 {
		return
	}
	inset, depth := r.config.ProbeInset, r.config.ProbeDepth
	feet := entity.Rect{X: box.X + inset, Y: box.Y - depth, W: box.W - 2*inset, H: depth}
	if !r.solidAt(feet) {
		p.Grounded = false
	}
}

// strikeBlock applies the effect of hitting a block from below
func (r *CollisionResolver) strikeBlock(o *entity.Obstacle, p *entity.Player) {
	kind := o.Kind
	switch kind {
	case entity.BlockQuestion:
		coin := entity.NewPickup(o.X, o.Bounds().Top(), entity.PickupCoin, r.config.BlockCoinValue)
		r.level.SpawnPickup(coin)
		o.Kind = entity.BlockNormal
		r.events.Emit(BlockStruck{Obstacle: o, Kind: kind, Spawned: coin})
	case entity.BlockBrick:
		if p.Transformation != entity.FormSmall && o.Destroy() {
			p.Score += r.config.BrickScore
			r.removeObstacle(o)
			r.events.Emit(BrickBroken{Obstacle: o})
			return
		}
		r.events.Emit(BlockStruck{Obstacle: o, Kind: kind})
	default:
		r.events.Emit(BlockStruck{Obstacle: o, Kind: kind})
	}
}

func (r *CollisionResolver) resolvePlayerEnemies(p *entity.Player) {
	cfg := r.config

	for _, e := range r.level.Enemies {
		if !p.IsActive() {
			return
		}
		if !e.IsAlive() {
			continue
		}
		box, eb := p.Bounds(), e.Bounds()
		if !box.Overlaps(eb) {
			continue
		}

		ov := entity.OverlapOf(box, eb)
		if ov.MinY() < ov.MinX()+cfg.StompTolerance && p.VY <= 0 && ov.Bottom < ov.Top {
			killed := e.TakeDamage(1)
			p.Score += e.ScoreValue
			p.VY = cfg.StompBounce
			if killed {
				r.level.NotifyEnemyDefeated()
			}
			r.events.Emit(EnemyStomped{Enemy: e, Killed: killed, Score: e.ScoreValue})
			continue
		}

		if p.IsInvincible() {
			continue
		}
		died := r.players.TakeDamage(p)
		if !died {
			dir := 1.0
			if p.X < e.X {
				dir = -1
			}
			p.SetVelocity(dir*cfg.KnockbackX, cfg.KnockbackY)
		}
		r.events.Emit(PlayerHurt{Form: p.Transformation, Lives: p.Lives, Died: died})
	}
}

func (r *CollisionResolver) resolvePlayerPickups(p *entity.Player) {
	box := p.Bounds()
	for _, pk := range r.level.Pickups {
		if !pk.CanCollect() || !box.Overlaps(pk.Bounds()) {
			continue
		}
		pk.Collect()
		p.Score += pk.Value
		if pk.Kind == entity.PickupCoin {
			r.players.AddCoins(p, 1)
			r.level.NotifyCoinCollected()
		}
		r.events.Emit(CoinCollected{Pickup: pk, Value: pk.Value})
	}
}

func (r *CollisionResolver) resolvePlayerPowerUps(p *entity.Player) {
	box := p.Bounds()
	for _, pu := range r.level.PowerUps {
		if !pu.CanCollect() || !box.Overlaps(pu.Bounds()) {
			continue
		}
		pu.Collect()
		r.players.ApplyPowerUp(p, pu.Kind)
		r.events.Emit(PowerUpCollected{Kind: pu.Kind})
	}
}

func (r *CollisionResolver) resolvePlayerFlag(p *entity.Player) {
	f := r.level.Flag
	if f == nil || !p.Bounds().Overlaps(f.Bounds()) {
		return
	}
	if f.Touch() {
		r.events.Emit(FlagTouched{Flag: f})
	}
}

// standsOn reports whether a contact with ob should be treated as ground:
// feet within the step tolerance of its top and not moving up
func (r *CollisionResolver) standsOn(box, ob entity.Rect, vy float64) bool {
	return vy <= 0 && box.Y >= ob.Top()-r.config.StompTolerance
}

func (r *CollisionResolver) resolveEnemyObstacles(e *entity.Enemy) {
	for _, o := range r.nearbySolids(e.Bounds(), 0) {
		box, ob := e.Bounds(), o.Bounds()
		if !box.Overlaps(ob) {
			continue
		}
		ov := entity.OverlapOf(box, ob)
		if ov.MinY() <= ov.MinX() {
			if ov.Bottom < ov.Top {
				e.Land(ob.Top())
			} else {
				e.Y = ob.Y - box.H
				e.VY = min(e.VY, 0)
			}
			continue
		}
		// Wall: step back out and turn around
		if ov.Left < ov.Right {
			e.X = ob.X - box.W
		} else {
			e.X = ob.Right()
		}
		e.ReverseDirection()
	}
}

func (r *CollisionResolver) resolvePowerUpObstacles(pu *entity.PowerUp) {
	for _, o := range r.nearbySolids(pu.Bounds(), 0) {
		box, ob := pu.Bounds(), o.Bounds()
		if !box.Overlaps(ob) {
			continue
		}
		ov := entity.OverlapOf(box, ob)
		if ov.MinY() <= ov.MinX() || r.standsOn(box, ob, pu.VY) {
			if ov.Bottom < ov.Top && pu.VY <= 0 {
				pu.Land(ob.Top())
			}
			continue
		}
		if ov.Left < ov.Right {
			pu.X = ob.X - box.W
		} else {
			pu.X = ob.Right()
		}
		pu.ReverseDirection()
	}
}
