// Package storage persists campaign progress between runs.
package storage

import (
	"errors"

	"github.com/younwookim/plumber/internal/domain/level"
)

// ErrNotFound is returned by Load when nothing has been saved yet
var ErrNotFound = errors.New("storage: no saved progress")

// Record is the saved outcome of one level
type Record struct {
	Score           int     `json:"score"`
	Coins           int     `json:"coins"`
	EnemiesDefeated int     `json:"enemiesDefeated"`
	ElapsedTime     float64 `json:"elapsedTime"`
	Completed       bool    `json:"completed"`
	Perfect         bool    `json:"perfect"`
	Attempts        int     `json:"attempts"`
	Stars           int     `json:"stars"`
}

// NewRecord copies the stats of a progression
func NewRecord(p level.Progression) Record {
	return Record{
		Score:           p.Score,
		Coins:           p.Coins,
		EnemiesDefeated: p.EnemiesDefeated,
		ElapsedTime:     p.ElapsedTime,
		Completed:       p.Completed,
		Perfect:         p.Perfect,
		Attempts:        p.Attempts,
		Stars:           p.Stars,
	}
}

// Progression rebuilds the progression of the named level
func (r Record) Progression(name string) level.Progression {
	return level.Progression{
		LevelName:       name,
		Score:           r.Score,
		Coins:           r.Coins,
		EnemiesDefeated: r.EnemiesDefeated,
		ElapsedTime:     r.ElapsedTime,
		Completed:       r.Completed,
		Perfect:         r.Perfect,
		Attempts:        r.Attempts,
		Stars:           r.Stars,
	}
}

// Snapshot is the whole campaign state written by a Store
type Snapshot struct {
	CurrentIndex int               `json:"currentIndex"`
	TotalScore   int               `json:"totalScore"`
	Levels       map[string]Record `json:"levels"`
}

// Store saves and restores campaign snapshots
type Store interface {
	Save(s Snapshot) error
	Load() (Snapshot, error)
	Clear() error
}
