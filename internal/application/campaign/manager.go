// Package campaign sequences the levels of a run and keeps the results of
// the levels already played.
package campaign

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/younwookim/plumber/internal/application/state"
	"github.com/younwookim/plumber/internal/domain/level"
	"github.com/younwookim/plumber/internal/infrastructure/levelsource"
	"github.com/younwookim/plumber/internal/infrastructure/storage"
)

// DefaultTransitionDuration is how long a transition phase lasts, in seconds
const DefaultTransitionDuration = 2.0

// LevelLoader builds a level from a source id
type LevelLoader interface {
	Load(source string) (*level.Level, error)
}

// Manager owns the current level and moves through the source list
type Manager struct {
	loader   LevelLoader
	sources  []string
	logger   *log.Logger
	duration float64

	index   int
	current *level.Level
	cache   map[int]*level.Level

	transition state.TransitionState
	timer      float64

	history    map[string]level.Progression
	totalScore int
	// Whether the current level's result is already in history
	recorded bool
}

// NewManager creates a manager over sources. A nil logger uses the default one.
func NewManager(loader LevelLoader, sources []string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		loader:   loader,
		sources:  slices.Clone(sources),
		logger:   logger,
		duration: DefaultTransitionDuration,
		cache:    make(map[int]*level.Level),
		history:  make(map[string]level.Progression),
	}
}

// SetTransitionDuration changes the length of transition phases
func (m *Manager) SetTransitionDuration(d float64) {
	m.duration = max(0, d)
}

func (m *Manager) load(i int) (*level.Level, bool) {
	src := m.sources[i]
	lvl, err := m.loader.Load(src)
	if err != nil {
		m.logger.Warn("level load failed", "source", src, "err", err)
		return nil, false
	}
	m.logger.Debug("level loaded", "source", src, "name", lvl.Name)
	m.cache[i] = lvl
	return lvl, true
}

// activate makes level i current, reusing a cached copy when there is one
func (m *Manager) activate(i int) bool {
	lvl, ok := m.cache[i]
	if ok {
		lvl.Reset()
	} else if lvl, ok = m.load(i); !ok {
		return false
	}
	m.index = i
	m.current = lvl
	m.recorded = false
	m.startTransition(state.TransitionLevelStart)
	return true
}

func (m *Manager) startTransition(t state.TransitionState) {
	m.transition = t
	m.timer = 0
}

// LoadFirst loads the first source from scratch
func (m *Manager) LoadFirst() bool {
	if len(m.sources) == 0 {
		return false
	}
	clear(m.cache)
	return m.activate(0)
}

// RecordCurrent stores the current level's progression in the history and
// adds its score to the total. Recording the same level again replaces the
// earlier result.
func (m *Manager) RecordCurrent() {
	if m.current == nil || m.recorded {
		return
	}
	prog := *m.current.Progression
	if prev, ok := m.history[m.current.Name]; ok {
		m.totalScore -= prev.Score
	}
	m.history[m.current.Name] = prog
	m.totalScore += prog.Score
	m.recorded = true
	m.startTransition(state.TransitionLevelEnd)
}

// Next records the current level and loads the following source.
// Returns false when no source remains or the load fails; the current
// level is then left as it was.
func (m *Manager) Next() bool {
	if !m.HasRemaining() {
		return false
	}

	next, ok := m.load(m.index + 1)
	if !ok {
		return false
	}

	m.RecordCurrent()
	m.index++
	m.current = next
	m.recorded = false
	m.startTransition(state.TransitionInProgress)
	return true
}

// Reload restarts the current level
func (m *Manager) Reload() {
	if m.current == nil {
		return
	}
	m.current.Reset()
	m.recorded = false
	m.startTransition(state.TransitionLevelStart)
}

// Previous goes back one level
func (m *Manager) Previous() bool {
	if m.index <= 0 {
		return false
	}
	return m.activate(m.index - 1)
}

// LoadIndex jumps to the level at index i
func (m *Manager) LoadIndex(i int) bool {
	if i < 0 || i >= len(m.sources) {
		return false
	}
	return m.activate(i)
}

// LoadName jumps to the level with the given name. Loaded levels are
// matched by name, the rest by their source file name.
func (m *Manager) LoadName(name string) bool {
	for i, lvl := range m.cache {
		if lvl.Name == name {
			return m.activate(i)
		}
	}
	for i, src := range m.sources {
		if levelsource.LevelName(src) == name {
			return m.activate(i)
		}
	}
	return false
}

// Update advances the transition timer
func (m *Manager) Update(dt float64) {
	if m.transition == state.TransitionNone {
		return
	}
	m.timer += dt
	if m.timer >= m.duration {
		m.startTransition(state.TransitionNone)
	}
}

// HasRemaining returns true if a source follows the current one
func (m *Manager) HasRemaining() bool {
	return m.index < len(m.sources)-1
}

// InTransition returns true while a transition phase runs
func (m *Manager) InTransition() bool {
	return m.transition != state.TransitionNone
}

// TransitionProgress returns how far the running transition is, from 0 to 1
func (m *Manager) TransitionProgress() float64 {
	if m.duration <= 0 {
		return 1
	}
	return min(1, m.timer/m.duration)
}

// TotalScore returns the summed score of the recorded levels
func (m *Manager) TotalScore() int {
	return m.totalScore
}

// TotalStars returns the stars earned over the recorded levels
func (m *Manager) TotalStars() int {
	total := 0
	for _, p := range m.history {
		total += p.Stars
	}
	return total
}

// MaxStars returns the stars available over the whole campaign
func (m *Manager) MaxStars() int {
	return len(m.sources) * level.MaxStars
}

// History returns a copy of the recorded progressions keyed by level name
func (m *Manager) History() map[string]level.Progression {
	out := make(map[string]level.Progression, len(m.history))
	for k, v := range m.history {
		out[k] = v
	}
	return out
}

// Progress returns the recorded progression of a level
func (m *Manager) Progress(name string) (level.Progression, bool) {
	p, ok := m.history[name]
	return p, ok
}

// ResetAll forgets every loaded level and result
func (m *Manager) ResetAll() {
	clear(m.cache)
	clear(m.history)
	m.totalScore = 0
	m.index = 0
	m.current = nil
	m.recorded = false
	m.startTransition(state.TransitionNone)
}

// AddSource appends a level source to the campaign
func (m *Manager) AddSource(src string) {
	m.sources = append(m.sources, src)
}

// SourceCount returns the number of level sources
func (m *Manager) SourceCount() int {
	return len(m.sources)
}

// CurrentSource returns the source of the current level, or "" if there is none
func (m *Manager) CurrentSource() string {
	if m.index < 0 || m.index >= len(m.sources) {
		return ""
	}
	return m.sources[m.index]
}

// Current returns the level being played, or nil before the first load
func (m *Manager) Current() *level.Level {
	return m.current
}

// Index returns the position of the current level in the source list
func (m *Manager) Index() int {
	return m.index
}

// State returns the transition phase
func (m *Manager) State() state.TransitionState {
	return m.transition
}

// Snapshot captures the campaign for saving
func (m *Manager) Snapshot() storage.Snapshot {
	snap := storage.Snapshot{
		CurrentIndex: m.index,
		TotalScore:   m.totalScore,
		Levels:       make(map[string]storage.Record, len(m.history)),
	}
	for name, p := range m.history {
		snap.Levels[name] = storage.NewRecord(p)
	}
	return snap
}

// Restore replaces the campaign with a saved snapshot and loads its
// current level. Out of range indices fall back to the first level.
func (m *Manager) Restore(snap storage.Snapshot) bool {
	m.ResetAll()
	for name, r := range snap.Levels {
		m.history[name] = r.Progression(name)
	}
	m.totalScore = snap.TotalScore

	i := snap.CurrentIndex
	if i < 0 || i >= len(m.sources) {
		i = 0
	}
	if len(m.sources) == 0 {
		return false
	}
	return m.activate(i)
}
