package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgression_Counters(t *testing.T) {
	p := NewProgression("1-1")

	p.AddCoin()
	p.AddCoin()
	p.EnemyDefeated()
	p.Tick(1.5)

	assert.Equal(t, 2, p.Coins)
	assert.Equal(t, 1, p.EnemiesDefeated)
	assert.Equal(t, 2*CoinScore+EnemyScore, p.Score)
	assert.Equal(t, 1.5, p.ElapsedTime)
}

func TestProgression_ComputeStars(t *testing.T) {
	tests := []struct {
		name       string
		coins      int
		totalCoins int
		lives      int
		want       int
	}{
		{"completion only", 0, 10, 1, 1},
		{"half the coins", 5, 10, 1, 2},
		{"just under half", 4, 10, 2, 1},
		{"full lives", 0, 10, 3, 2},
		{"everything", 10, 10, 4, 3},
		{"no coins in level", 0, 0, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgression("test")
			p.Coins = tt.coins
			assert.Equal(t, tt.want, p.ComputeStars(tt.totalCoins, tt.lives))
			assert.Equal(t, tt.want, p.Stars)
		})
	}
}

func TestProgression_MarkCompletedAndReset(t *testing.T) {
	p := NewProgression("1-1")
	p.AddCoin()

	p.MarkCompleted(2, 3)
	assert.True(t, p.Completed)
	assert.True(t, p.Perfect)
	assert.Equal(t, 3, p.Stars)
	assert.Contains(t, p.Summary(), "PERFECT")

	p.Reset()
	assert.Equal(t, 0, p.Score)
	assert.Equal(t, 0, p.Coins)
	assert.False(t, p.Completed)
	assert.Equal(t, 1, p.Attempts)
	assert.NotContains(t, p.Summary(), "PERFECT")
}
