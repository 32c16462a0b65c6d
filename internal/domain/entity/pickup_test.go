package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPickup_DefaultValue(t *testing.T) {
	coin := NewPickup(10, 20, PickupCoin, 0)

	assert.Equal(t, DefaultCoinValue, coin.Value)
	assert.Equal(t, 24.0, coin.W)
	assert.True(t, coin.CanCollect())

	coin.Collect()
	assert.False(t, coin.CanCollect())
	assert.False(t, coin.Active)
}

func TestPowerUp_Emergence(t *testing.T) {
	p := NewPowerUp(0, 100, PowerMushroom)
	p.StartEmerging()
	require.False(t, p.CanCollect())

	p.Update(0.25)
	assert.InDelta(t, 116.0, p.Y, 0.0001)
	assert.Equal(t, 0.0, p.X, "no horizontal physics while emerging")

	p.Update(0.25) // timer reaches 0.5, emergence ends and physics resumes
	assert.False(t, p.Emerging)
	assert.True(t, p.CanCollect())
}

func TestPowerUp_MushroomSlidesAndHitsFloor(t *testing.T) {
	p := NewPowerUp(0, 40, PowerMushroom)

	for i := 0; i < 60; i++ {
		p.Update(1.0 / 60.0)
	}

	assert.InDelta(t, 80.0, p.X, 0.01)
	assert.Equal(t, PowerUpSafetyFloor, p.Y)
	assert.Equal(t, 0.0, p.VY)
}

func TestPowerUp_StarStaysPut(t *testing.T) {
	p := NewPowerUp(50, 100, PowerStar)

	p.Update(1)

	assert.Equal(t, 50.0, p.X)
	assert.Equal(t, 100.0, p.Y)
}

func TestGoalFlag_TouchIsIdempotent(t *testing.T) {
	f := NewGoalFlag(1000, 32, 0)
	assert.Equal(t, DefaultPoleHeight, f.PoleHeight)

	assert.True(t, f.Touch())
	f.Update(0.5)
	assert.False(t, f.Touch())
	assert.Equal(t, 0.5, f.AnimationTime)

	f.Reset()
	assert.False(t, f.Touched)
	assert.Equal(t, 0.0, f.AnimationTime)
	assert.Equal(t, 850.0, f.CastleLimit())
}

func TestParseKinds(t *testing.T) {
	assert.Equal(t, BlockQuestion, ParseObstacleKind("BLOC_QUESTION"))
	assert.Equal(t, BlockQuestion, ParseObstacleKind("mystere"))
	assert.Equal(t, BlockBrick, ParseObstacleKind("brick_wall"))
	assert.Equal(t, BlockNormal, ParseObstacleKind("ground"))

	k, ok := ParsePowerUpKind("champignon_1up")
	assert.True(t, ok)
	assert.Equal(t, PowerOneUp, k)
	_, ok = ParsePowerUpKind("banana")
	assert.False(t, ok)

	assert.Equal(t, PickupCoin, ParsePickupKind("PIECE"))
	assert.Equal(t, PickupBonus, ParsePickupKind("gem"))

	o := NewObstacle(0, 0, 32, 32, BlockBrick)
	assert.True(t, o.Destructible)
	assert.True(t, o.Destroy())
	assert.False(t, o.Blocks())
}
