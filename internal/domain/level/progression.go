package level

import (
	"fmt"
	"strings"
)

// Score awarded through the progression tracker
const (
	CoinScore  = 10
	EnemyScore = 50

	// Lives needed at the end of a level for the "no life lost" star
	PerfectLives = 3
	MaxStars     = 3
)

// Progression holds the running stats of one level attempt
type Progression struct {
	LevelName       string  `json:"levelName"`
	Score           int     `json:"score"`
	Coins           int     `json:"coins"`
	EnemiesDefeated int     `json:"enemiesDefeated"`
	ElapsedTime     float64 `json:"elapsedTime"`
	Completed       bool    `json:"completed"`
	Perfect         bool    `json:"perfect"`
	Attempts        int     `json:"attempts"`
	Stars           int     `json:"stars"`
}

// NewProgression creates an empty tracker. Attempts counts restarts.
func NewProgression(levelName string) *Progression {
	return &Progression{LevelName: levelName}
}

// AddScore adds raw points
func (p *Progression) AddScore(points int) {
	p.Score += points
}

// AddCoin records one collected coin
func (p *Progression) AddCoin() {
	p.Coins++
	p.AddScore(CoinScore)
}

// EnemyDefeated records one defeated enemy
func (p *Progression) EnemyDefeated() {
	p.EnemiesDefeated++
	p.AddScore(EnemyScore)
}

// Tick advances elapsed time
func (p *Progression) Tick(dt float64) {
	p.ElapsedTime += dt
}

// Reset starts a new attempt
func (p *Progression) Reset() {
	p.Score = 0
	p.Coins = 0
	p.EnemiesDefeated = 0
	p.ElapsedTime = 0
	p.Completed = false
	p.Perfect = false
	p.Stars = 0
	p.Attempts++
}

// ComputeStars rates the attempt: one for finishing, one for half the
// coins, one for ending with full lives.
func (p *Progression) ComputeStars(totalCoins, lives int) int {
	stars := 1
	if totalCoins > 0 && float64(p.Coins)*100/float64(totalCoins) >= 50 {
		stars++
	}
	if lives >= PerfectLives {
		stars++
	}
	p.Stars = stars
	return stars
}

// MarkCompleted finalises a successful attempt
func (p *Progression) MarkCompleted(totalCoins, lives int) {
	p.Completed = true
	p.Perfect = lives >= PerfectLives
	p.ComputeStars(totalCoins, lives)
}

// Summary returns a human readable recap
func (p *Progression) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Level: %s ===\n", p.LevelName)
	fmt.Fprintf(&sb, "Score: %d\n", p.Score)
	fmt.Fprintf(&sb, "Coins: %d\n", p.Coins)
	fmt.Fprintf(&sb, "Enemies defeated: %d\n", p.EnemiesDefeated)
	fmt.Fprintf(&sb, "Time: %.1fs\n", p.ElapsedTime)
	fmt.Fprintf(&sb, "Stars: %d/%d\n", p.Stars, MaxStars)
	fmt.Fprintf(&sb, "Attempts: %d\n", p.Attempts)
	if p.Perfect {
		sb.WriteString("PERFECT!\n")
	}
	return sb.String()
}
