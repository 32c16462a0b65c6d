package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/plumber/internal/domain/entity"
	"github.com/younwookim/plumber/internal/domain/level"
)

func createTestLevel(obstacles ...*entity.Obstacle) *level.Level {
	lvl := level.New("test", 1000, 480)
	for _, o := range obstacles {
		lvl.AddObstacle(o)
	}
	return lvl
}

func createTestResolver(lvl *level.Level) *CollisionResolver {
	cfg := createTestTuning()
	return NewCollisionResolver(&cfg.Collision, NewPlayerController(&cfg.Player), lvl)
}

func TestCollisionResolver_Landing(t *testing.T) {
	platform := entity.NewObstacle(100, 100, 96, 32, entity.BlockPlatform)
	lvl := createTestLevel(platform)
	p := entity.NewPlayer(110, 128)
	p.VY = -200
	lvl.SetPlayer(p)
	r := createTestResolver(lvl)

	r.Resolve()

	assert.Equal(t, 132.0, p.Y)
	assert.Zero(t, p.VY)
	assert.True(t, p.Grounded)
}

func TestCollisionResolver_Idempotent(t *testing.T) {
	platform := entity.NewObstacle(100, 100, 96, 32, entity.BlockPlatform)
	lvl := createTestLevel(platform)
	p := entity.NewPlayer(110, 128)
	p.VY = -200
	lvl.SetPlayer(p)
	r := createTestResolver(lvl)

	r.Resolve()
	first := *p
	r.Resolve()

	assert.Equal(t, first, *p)
	assert.True(t, p.Grounded, "ground probe keeps a resting player grounded")
}

func TestCollisionResolver_GroundProbeClearsGrounded(t *testing.T) {
	lvl := createTestLevel(entity.NewObstacle(100, 100, 96, 32, entity.BlockPlatform))
	p := entity.NewPlayer(400, 300)
	p.Grounded = true
	lvl.SetPlayer(p)

	createTestResolver(lvl).Resolve()

	assert.False(t, p.Grounded)
}

func TestCollisionResolver_RisingPlayerKeepsGroundedFlag(t *testing.T) {
	lvl := createTestLevel()
	p := entity.NewPlayer(400, 300)
	p.Grounded = true
	p.VY = 100
	lvl.SetPlayer(p)

	createTestResolver(lvl).Resolve()

	assert.True(t, p.Grounded, "probe only runs when not rising")
}

func TestCollisionResolver_WallPushKeepsVelocity(t *testing.T) {
	lvl := createTestLevel(entity.NewObstacle(100, 100, 96, 32, entity.BlockNormal))
	p := entity.NewPlayer(70, 110)
	p.VX = 100
	lvl.SetPlayer(p)

	createTestResolver(lvl).Resolve()

	assert.Equal(t, 68.0, p.X)
	assert.Equal(t, 110.0, p.Y)
	assert.Equal(t, 100.0, p.VX)
}

func TestCollisionResolver_QuestionBlockSpawnsCoinOnce(t *testing.T) {
	block := entity.NewObstacle(100, 200, 32, 32, entity.BlockQuestion)
	lvl := createTestLevel(block)
	p := entity.NewPlayer(100, 160)
	p.VY = 300
	lvl.SetPlayer(p)
	r := createTestResolver(lvl)

	r.Resolve()

	assert.Equal(t, 152.0, p.Y)
	assert.Zero(t, p.VY)
	assert.Equal(t, entity.BlockNormal, block.Kind)
	require.Len(t, lvl.Pickups, 1)
	coin := lvl.Pickups[0]
	assert.Equal(t, 100.0, coin.X)
	assert.Equal(t, 232.0, coin.Y)
	assert.Equal(t, 10, coin.Value)
	assert.Zero(t, lvl.TotalCoins, "spawned coins are not part of the level total")

	events := r.Events()
	require.Len(t, events, 1)
	struck, ok := events[0].(BlockStruck)
	require.True(t, ok)
	assert.Equal(t, entity.BlockQuestion, struck.Kind)
	assert.Same(t, coin, struck.Spawned)

	// Second hit: block is spent
	p.Y = 160
	p.VY = 300
	r.Resolve()

	assert.Len(t, lvl.Pickups, 1)
}

func TestCollisionResolver_CeilingIgnoredWhenFalling(t *testing.T) {
	block := entity.NewObstacle(100, 200, 32, 32, entity.BlockQuestion)
	lvl := createTestLevel(block)
	p := entity.NewPlayer(100, 160)
	p.VY = -50
	lvl.SetPlayer(p)

	createTestResolver(lvl).Resolve()

	assert.Equal(t, entity.BlockQuestion, block.Kind)
	assert.Empty(t, lvl.Pickups)
}

func TestCollisionResolver_Brick(t *testing.T) {
	tests := []struct {
		name      string
		form      entity.Transformation
		wantBreak bool
	}{
		{"big breaks", entity.FormBig, true},
		{"fire breaks", entity.FormFire, true},
		{"small bounces", entity.FormSmall, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brick := entity.NewObstacle(100, 200, 32, 32, entity.BlockBrick)
			lvl := createTestLevel(brick)
			p := entity.NewPlayer(100, 0)
			p.SetTransformation(tt.form)
			p.Y = 200 - p.H + 8
			p.VY = 300
			lvl.SetPlayer(p)
			r := createTestResolver(lvl)

			r.Resolve()

			assert.Equal(t, !tt.wantBreak, brick.IsActive())
			if tt.wantBreak {
				assert.Equal(t, 50, p.Score)
				assert.IsType(t, BrickBroken{}, r.Events()[0])

				// Gone from the broadphase too
				p.Y = 200
				p.VY = -10
				r.Resolve()
				assert.Equal(t, 200.0, p.Y)
			} else {
				assert.Zero(t, p.Score)
			}
		})
	}
}

func createEnemyLevel(px, py, vy float64) (*level.Level, *entity.Player, *entity.Enemy) {
	lvl := createTestLevel()
	e := entity.NewGroundEnemy(200, 32)
	lvl.AddEnemy(e)
	p := entity.NewPlayer(px, py)
	p.VY = vy
	lvl.SetPlayer(p)
	return lvl, p, e
}

func TestCollisionResolver_Stomp(t *testing.T) {
	lvl, p, e := createEnemyLevel(200, 60, -100)
	r := createTestResolver(lvl)

	r.Resolve()

	assert.False(t, e.IsAlive())
	assert.Equal(t, 100, p.Score)
	assert.Equal(t, 350.0, p.VY)
	assert.Equal(t, entity.FormBig, p.Transformation)
	assert.Equal(t, 1, lvl.Progression.EnemiesDefeated)

	events := r.Events()
	require.Len(t, events, 1)
	stomp, ok := events[0].(EnemyStomped)
	require.True(t, ok)
	assert.True(t, stomp.Killed)
}

func TestCollisionResolver_StompToughEnemy(t *testing.T) {
	lvl, p, e := createEnemyLevel(200, 60, -100)
	e.Health = 2

	createTestResolver(lvl).Resolve()

	assert.True(t, e.IsAlive())
	assert.Equal(t, 1, e.Health)
	assert.Equal(t, 100, p.Score, "every stomp scores")
	assert.Zero(t, lvl.Progression.EnemiesDefeated)
}

func TestCollisionResolver_SideHit(t *testing.T) {
	lvl, p, e := createEnemyLevel(180, 32, 0)
	r := createTestResolver(lvl)

	r.Resolve()

	assert.True(t, e.IsAlive())
	assert.Equal(t, entity.FormSmall, p.Transformation)
	assert.True(t, p.IsInvincible())
	assert.Equal(t, -250.0, p.VX)
	assert.Equal(t, 250.0, p.VY)
	assert.Equal(t, 32.0, p.Y)

	hurt, ok := r.Events()[0].(PlayerHurt)
	require.True(t, ok)
	assert.Equal(t, entity.FormSmall, hurt.Form)
	assert.False(t, hurt.Died)
}

func TestCollisionResolver_SideHitFromRight(t *testing.T) {
	lvl, p, _ := createEnemyLevel(220, 32, 0)

	createTestResolver(lvl).Resolve()

	assert.Equal(t, 250.0, p.VX)
}

func TestCollisionResolver_InvinciblePlayerIgnoresEnemy(t *testing.T) {
	lvl, p, e := createEnemyLevel(180, 32, 0)
	p.StartInvincibility()
	r := createTestResolver(lvl)

	r.Resolve()

	assert.True(t, e.IsAlive())
	assert.Equal(t, entity.FormBig, p.Transformation)
	assert.Zero(t, p.VX)
	assert.Empty(t, r.Events())
}

func TestCollisionResolver_CollectCoin(t *testing.T) {
	lvl := createTestLevel()
	coin := entity.NewPickup(110, 40, entity.PickupCoin, 10)
	lvl.AddPickup(coin)
	p := entity.NewPlayer(100, 32)
	lvl.SetPlayer(p)
	r := createTestResolver(lvl)

	r.Resolve()

	assert.True(t, coin.Collected)
	assert.False(t, coin.IsActive())
	assert.Equal(t, 1, p.Coins)
	assert.Equal(t, 20, p.Score)
	assert.Equal(t, 1, lvl.Progression.Coins)

	r.Resolve()
	assert.Equal(t, 1, p.Coins, "collected once")
}

func TestCollisionResolver_PowerUp(t *testing.T) {
	lvl := createTestLevel()
	pu := entity.NewPowerUp(100, 32, entity.PowerMushroom)
	pu.StartEmerging()
	lvl.AddPowerUp(pu)
	p := entity.NewPlayer(100, 32)
	lvl.SetPlayer(p)
	r := createTestResolver(lvl)

	r.Resolve()
	assert.False(t, pu.Collected, "emerging power-ups cannot be taken")

	pu.Emerging = false
	r.Resolve()

	assert.True(t, pu.Collected)
	assert.Equal(t, 1000, p.Score)
	assert.Equal(t, PowerUpCollected{Kind: entity.PowerMushroom}, r.Events()[0])
}

func TestCollisionResolver_FlagTouchedOnce(t *testing.T) {
	lvl := createTestLevel()
	lvl.SetFlag(entity.NewGoalFlag(300, 32, 160))
	p := entity.NewPlayer(290, 32)
	lvl.SetPlayer(p)
	r := createTestResolver(lvl)

	r.Resolve()
	r.Resolve()

	assert.True(t, lvl.Flag.Touched)
	assert.Len(t, r.Events(), 1)
}

func TestCollisionResolver_EnemyTurnsAtWall(t *testing.T) {
	wall := entity.NewObstacle(200, 32, 32, 96, entity.BlockNormal)
	lvl := createTestLevel(wall)
	e := entity.NewGroundEnemy(170, 32)
	e.VX = 50
	lvl.AddEnemy(e)
	lvl.SetPlayer(entity.NewPlayer(600, 32))

	createTestResolver(lvl).Resolve()

	assert.Equal(t, 168.0, e.X)
	assert.Equal(t, -50.0, e.VX)
}

func TestCollisionResolver_EnemyLandsOnFloor(t *testing.T) {
	floor := entity.NewObstacle(0, 0, 400, 32, entity.BlockNormal)
	lvl := createTestLevel(floor)
	e := entity.NewGroundEnemy(100, 30)
	e.VY = -20
	lvl.AddEnemy(e)
	lvl.SetPlayer(entity.NewPlayer(600, 32))

	createTestResolver(lvl).Resolve()

	assert.Equal(t, 32.0, e.Y)
	assert.Zero(t, e.VY)
	assert.True(t, e.Grounded)
	assert.Equal(t, -50.0, e.VX, "floor contact does not turn the enemy")
}

func TestCollisionResolver_PowerUpTurnsAtWall(t *testing.T) {
	wall := entity.NewObstacle(200, 32, 32, 96, entity.BlockNormal)
	lvl := createTestLevel(wall)
	pu := entity.NewPowerUp(170, 40, entity.PowerMushroom)
	lvl.AddPowerUp(pu)
	lvl.SetPlayer(entity.NewPlayer(600, 32))

	createTestResolver(lvl).Resolve()

	assert.Equal(t, 168.0, pu.X)
	assert.Equal(t, -80.0, pu.VX)
}

func TestCollisionResolver_NoPlayer(t *testing.T) {
	lvl := createTestLevel(entity.NewObstacle(0, 0, 400, 32, entity.BlockNormal))
	r := createTestResolver(lvl)

	assert.NotPanics(t, r.Resolve)

	r.SetLevel(nil)
	assert.NotPanics(t, r.Resolve)
	assert.Nil(t, r.Level())
}

func TestCollisionResolver_TieResolvesVertically(t *testing.T) {
	platform := entity.NewObstacle(100, 100, 96, 32, entity.BlockPlatform)
	lvl := createTestLevel(platform)
	// 6 px into the platform on both axes
	p := entity.NewPlayer(74, 126)
	p.VY = -100
	lvl.SetPlayer(p)

	createTestResolver(lvl).Resolve()

	assert.Equal(t, 132.0, p.Y)
	assert.Equal(t, 74.0, p.X)
	assert.True(t, p.Grounded)
}

func TestCollisionResolver_NegativePlatform(t *testing.T) {
	platform := entity.NewObstacle(0, -64, 1000, 32, entity.BlockNormal)
	lvl := createTestLevel(platform)
	p := entity.NewPlayer(100, -40)
	p.VY = -200
	lvl.SetPlayer(p)

	createTestResolver(lvl).Resolve()

	assert.Equal(t, -32.0, p.Y)
	assert.Zero(t, p.VY)
	assert.True(t, p.Grounded)
}

func TestCollisionResolver_EnemyOnNegativePlatform(t *testing.T) {
	platform := entity.NewObstacle(-200, -64, 400, 32, entity.BlockNormal)
	lvl := createTestLevel(platform)
	e := entity.NewGroundEnemy(-100, -40)
	e.VY = -300
	lvl.AddEnemy(e)
	lvl.SetPlayer(entity.NewPlayer(600, 32))

	createTestResolver(lvl).Resolve()

	assert.Equal(t, -32.0, e.Y)
	assert.Equal(t, -100.0, e.X)
	assert.True(t, e.Grounded)
}

func TestCollisionResolver_EnemyFallsOntoFloor(t *testing.T) {
	tests := []struct {
		name   string
		startY float64
	}{
		{"short drop", 150},
		{"mid drop", 265},
		{"high drop", 400},
		{"very high drop", 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			floor := entity.NewObstacle(0, 0, 1000, 100, entity.BlockNormal)
			lvl := createTestLevel(floor)
			e := entity.NewGroundEnemy(400, tt.startY)
			e.VX = 0
			lvl.AddEnemy(e)
			lvl.SetPlayer(entity.NewPlayer(900, 100))
			r := createTestResolver(lvl)

			for range 180 {
				e.Update(testDT)
				r.Resolve()
			}

			assert.Equal(t, 100.0, e.Y)
			assert.Equal(t, 400.0, e.X)
			assert.Zero(t, e.VY)
			assert.True(t, e.Grounded)
		})
	}
}

func TestCollisionResolver_EnemyDeepInFloorLands(t *testing.T) {
	floor := entity.NewObstacle(0, 0, 1000, 100, entity.BlockNormal)
	lvl := createTestLevel(floor)
	// 20 px below the floor top, well past the step tolerance
	e := entity.NewGroundEnemy(400, 80)
	e.VY = -900
	lvl.AddEnemy(e)
	lvl.SetPlayer(entity.NewPlayer(900, 100))

	createTestResolver(lvl).Resolve()

	assert.Equal(t, 100.0, e.Y)
	assert.Equal(t, 400.0, e.X)
	assert.Equal(t, -50.0, e.VX)
}
