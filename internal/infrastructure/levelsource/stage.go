package levelsource

import (
	"fmt"
	"io/fs"

	"github.com/younwookim/plumber/internal/domain/entity"
	"github.com/younwookim/plumber/internal/domain/level"
	"github.com/younwookim/plumber/internal/infrastructure/config"
)

func (l *FSLoader) loadStage(source string) (*level.Level, error) {
	data, err := fs.ReadFile(l.fsys, source)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", source, err)
	}
	cfg, err := config.ParseStage(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", source, err)
	}

	lvl, err := BuildStage(cfg, l.tuning)
	if err != nil {
		return nil, fmt.Errorf("failed to build stage %s: %w", source, err)
	}
	if cfg.Name == "" {
		lvl.Name = LevelName(source)
		lvl.Progression.LevelName = lvl.Name
	}
	return lvl, nil
}

// BuildStage creates a level from a decoded stage file
func BuildStage(cfg *config.StageConfig, tuning *config.Tuning) (*level.Level, error) {
	if tuning == nil {
		tuning = config.DefaultTuning()
	}
	ts := float64(cfg.Size.TileSize)
	rows := cfg.Layers.Collision

	width, height := float64(cfg.Size.Width), float64(cfg.Size.Height)
	if width <= 0 {
		for _, row := range rows {
			width = max(width, float64(len(row))*ts)
		}
	}
	if height <= 0 {
		height = float64(len(rows)) * ts
	}

	b := &builder{tuning: tuning, lvl: level.New(cfg.Name, width, height)}

	b.player(float64(cfg.PlayerSpawn.X), float64(cfg.PlayerSpawn.Y))
	if cfg.Respawn != nil {
		b.lvl.SetRespawn(float64(cfg.Respawn.X), float64(cfg.Respawn.Y))
	}
	if cfg.End != nil {
		b.lvl.SetEnd(float64(cfg.End.X), float64(cfg.End.Y))
	}

	for _, e := range cfg.Enemies {
		b.enemy(enemySpec{
			kind:           e.Type,
			x:              float64(e.X),
			y:              float64(e.Y),
			behavior:       e.Behavior,
			patrolDistance: e.PatrolDistance,
			health:         e.Health,
			facingRight:    e.FacingRight,
		})
	}
	for _, p := range cfg.Pickups {
		b.pickup(p.Type, float64(p.X), float64(p.Y), p.Value)
	}
	for _, p := range cfg.PowerUps {
		b.powerUp(p.Type, float64(p.X), float64(p.Y))
	}
	if cfg.Flag != nil {
		b.flag(float64(cfg.Flag.X), float64(cfg.Flag.Y), float64(cfg.Flag.PoleHeight))
	}

	buildCollisionLayer(b, rows, cfg.TileMapping, ts)
	for _, o := range cfg.Obstacles {
		r := o.Rect
		b.obstacle(o.Type, float64(r.X), float64(r.Y), float64(r.W), float64(r.H), o.Destructible)
	}

	for _, o := range cfg.Objectives {
		if err := b.objective(o.Type, o.Target, o.Description); err != nil {
			return nil, err
		}
	}

	return b.lvl, nil
}

// buildCollisionLayer turns the character grid into obstacles. The first row
// is the top of the level. Runs of plain blocks on a row merge into one
// obstacle; question blocks and bricks stay one tile each.
func buildCollisionLayer(b *builder, rows []string, mapping map[string]config.TileMappingConfig, ts float64) {
	n := len(rows)
	for r, row := range rows {
		y := float64(n-1-r) * ts
		cells := []rune(row)
		for c := 0; c < len(cells); {
			tile, ok := mapping[string(cells[c])]
			if !ok || !tile.Solid {
				c++
				continue
			}

			kind := entity.ParseObstacleKind(tile.Type)
			run := 1
			if kind == entity.BlockNormal || kind == entity.BlockPlatform {
				for c+run < len(cells) && cells[c+run] == cells[c] {
					run++
				}
			}
			b.obstacle(tile.Type, float64(c)*ts, y, float64(run)*ts, ts, tile.Destructible)
			c += run
		}
	}
}
