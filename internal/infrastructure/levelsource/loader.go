// Package levelsource turns level files into playable levels. Tiled maps
// (.tmx) and JSON stage files (.json) are supported.
package levelsource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/younwookim/plumber/internal/domain/entity"
	"github.com/younwookim/plumber/internal/domain/level"
	"github.com/younwookim/plumber/internal/infrastructure/config"
)

// ErrUnknownFormat is returned for sources with an unsupported extension
var ErrUnknownFormat = errors.New("unknown level format")

// Loader loads a level by source id
type Loader interface {
	Load(source string) (*level.Level, error)
}

// FSLoader loads levels from an fs.FS, choosing the format by extension
type FSLoader struct {
	fsys   fs.FS
	tuning *config.Tuning
}

// NewFSLoader creates a loader reading from fsys. Enemy stats come from tuning.
func NewFSLoader(fsys fs.FS, tuning *config.Tuning) *FSLoader {
	if tuning == nil {
		tuning = config.DefaultTuning()
	}
	return &FSLoader{fsys: fsys, tuning: tuning}
}

// NewDirLoader creates a loader reading from a directory on disk
func NewDirLoader(dir string, tuning *config.Tuning) *FSLoader {
	return NewFSLoader(os.DirFS(dir), tuning)
}

// Load implements Loader
func (l *FSLoader) Load(source string) (*level.Level, error) {
	switch strings.ToLower(path.Ext(source)) {
	case ".tmx":
		return l.loadTMX(source)
	case ".json":
		return l.loadStage(source)
	default:
		return nil, fmt.Errorf("failed to load level %s: %w", source, ErrUnknownFormat)
	}
}

// LevelName derives a level name from its source path
func LevelName(source string) string {
	base := path.Base(strings.ReplaceAll(source, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// builder collects level contents in load order so flags bound the enemies
// regardless of which came first in the file
type builder struct {
	tuning *config.Tuning
	lvl    *level.Level
}

func (b *builder) player(x, y float64) {
	if b.lvl.Player != nil {
		return
	}
	b.lvl.SetStart(x, y)
	b.lvl.SetPlayer(entity.NewPlayer(x, y))
}

type enemySpec struct {
	kind           string
	x, y           float64
	behavior       string
	patrolDistance float64
	health         int
	facingRight    bool
}

func (b *builder) enemy(s enemySpec) {
	archetype := b.tuning.Archetype(s.kind)
	if s.behavior != "" {
		archetype.Behavior = normalizeBehavior(s.behavior)
	}
	if s.patrolDistance > 0 {
		archetype.PatrolDistance = s.patrolDistance
	}
	if s.health > 0 {
		archetype.Health = s.health
	}

	e := archetype.NewEnemy(s.x, s.y)
	if s.facingRight && e.VX < 0 {
		e.ReverseDirection()
	}
	b.lvl.AddEnemy(e)
}

func normalizeBehavior(tag string) string {
	switch strings.ToLower(tag) {
	case "patrol", "patrouille":
		return "patrol"
	default:
		return strings.ToLower(tag)
	}
}

func (b *builder) pickup(kind string, x, y float64, value int) {
	b.lvl.AddPickup(entity.NewPickup(x, y, entity.ParsePickupKind(kind), value))
}

func (b *builder) powerUp(kind string, x, y float64) {
	k, ok := entity.ParsePowerUpKind(kind)
	if !ok {
		k = entity.PowerMushroom
	}
	b.lvl.AddPowerUp(entity.NewPowerUp(x, y, k))
}

func (b *builder) obstacle(kind string, x, y, w, h float64, destructible bool) {
	o := entity.NewObstacle(x, y, w, h, entity.ParseObstacleKind(kind))
	if destructible {
		o.Destructible = true
	}
	b.lvl.AddObstacle(o)
}

func (b *builder) flag(x, y, poleHeight float64) {
	if b.lvl.Flag != nil {
		return
	}
	b.lvl.SetFlag(entity.NewGoalFlag(x, y, poleHeight))
}

func (b *builder) objective(kind string, target int, description string) error {
	k, ok := level.ParseObjectiveKind(kind)
	if !ok {
		return fmt.Errorf("unknown objective type %q", kind)
	}
	if k == level.ObjectiveReachEnd {
		return nil
	}
	if description == "" {
		description = k.String()
	}
	b.lvl.AddObjective(level.NewObjective(k, target, description))
	return nil
}
