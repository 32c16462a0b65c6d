package levelsource

import (
	"fmt"

	"github.com/lafriks/go-tiled"
	"github.com/younwookim/plumber/internal/domain/level"
)

// Object group names. The second name of each pair is the legacy spelling.
var (
	groupPlayer    = []string{"Player", "Joueur"}
	groupEnemies   = []string{"Enemies", "Ennemis"}
	groupPickups   = []string{"Pickups", "Objets"}
	groupPowerUps  = []string{"PowerUps"}
	groupFlag      = []string{"Flag", "Drapeau"}
	groupObstacles = []string{"Obstacles"}
	groupEnd       = []string{"End", "Fin"}
	groupRespawn   = []string{"Respawn"}
	groupGoals     = []string{"Objectives", "Objectifs"}
)

type tmxMap struct {
	m      *tiled.Map
	height float64
}

// objects returns every object from the groups matching any of names
func (t tmxMap) objects(names []string) []*tiled.Object {
	var out []*tiled.Object
	for _, og := range t.m.ObjectGroups {
		for _, name := range names {
			if og.Name == name {
				out = append(out, og.Objects...)
				break
			}
		}
	}
	return out
}

func (t tmxMap) first(names []string) *tiled.Object {
	if objs := t.objects(names); len(objs) > 0 {
		return objs[0]
	}
	return nil
}

// pos converts a Tiled object (Y down, top-left origin) to world space
// (Y up, bottom-left origin)
func (t tmxMap) pos(o *tiled.Object) (x, y float64) {
	return o.X, t.height - (o.Y + o.Height)
}

func (l *FSLoader) loadTMX(source string) (*level.Level, error) {
	m, err := tiled.LoadFile(source, tiled.WithFileSystem(l.fsys))
	if err != nil {
		return nil, fmt.Errorf("failed to load TMX %s: %w", source, err)
	}

	width := float64(m.Width * m.TileWidth)
	height := float64(m.Height * m.TileHeight)
	t := tmxMap{m: m, height: height}
	b := &builder{tuning: l.tuning, lvl: level.New(LevelName(source), width, height)}

	for _, o := range t.objects(groupPlayer) {
		x, y := t.pos(o)
		b.player(x, y)
	}

	for _, o := range t.objects(groupEnemies) {
		x, y := t.pos(o)
		b.enemy(enemySpec{
			kind:           objectType(o, "ground"),
			x:              x,
			y:              y,
			behavior:       stringProp(o, "behavior", "comportement"),
			patrolDistance: floatProp(o, "patrolDistance", "distancePatrouille"),
			health:         intProp(o, "health", "pointsVie"),
			facingRight:    o.Properties.GetBool("facingRight"),
		})
	}

	for _, o := range t.objects(groupPickups) {
		x, y := t.pos(o)
		b.pickup(objectType(o, "coin"), x, y, intProp(o, "value", "valeur"))
	}

	for _, o := range t.objects(groupPowerUps) {
		x, y := t.pos(o)
		b.powerUp(objectType(o, "mushroom"), x, y)
	}

	for _, o := range t.objects(groupFlag) {
		x, y := t.pos(o)
		b.flag(x, y, floatProp(o, "poleHeight", "hauteur"))
	}

	for _, o := range t.objects(groupObstacles) {
		x, y := t.pos(o)
		b.obstacle(objectType(o, "normal"), x, y, o.Width, o.Height, o.Properties.GetBool("destructible"))
	}

	if o := t.first(groupEnd); o != nil {
		b.lvl.SetEnd(t.pos(o))
	}
	if o := t.first(groupRespawn); o != nil {
		b.lvl.SetRespawn(t.pos(o))
	}

	for _, o := range t.objects(groupGoals) {
		target := intProp(o, "target", "cible")
		if err := b.objective(objectType(o, ""), target, o.Name); err != nil {
			return nil, fmt.Errorf("failed to load TMX %s: %w", source, err)
		}
	}

	return b.lvl, nil
}

// objectType reads the "type" property, then the object's class
func objectType(o *tiled.Object, fallback string) string {
	if v := o.Properties.GetString("type"); v != "" {
		return v
	}
	if o.Class != "" {
		return o.Class
	}
	if o.Type != "" { //nolint:staticcheck // older maps use the type attribute
		return o.Type //nolint:staticcheck
	}
	return fallback
}

func stringProp(o *tiled.Object, names ...string) string {
	for _, n := range names {
		if v := o.Properties.GetString(n); v != "" {
			return v
		}
	}
	return ""
}

func floatProp(o *tiled.Object, names ...string) float64 {
	for _, n := range names {
		if v := o.Properties.GetFloat(n); v != 0 {
			return v
		}
	}
	return 0
}

func intProp(o *tiled.Object, names ...string) int {
	for _, n := range names {
		if v := o.Properties.GetInt(n); v != 0 {
			return v
		}
	}
	return 0
}
