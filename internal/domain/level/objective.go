package level

import (
	"fmt"
	"strings"
)

// ObjectiveKind is the measurable condition an objective tracks
type ObjectiveKind int

const (
	ObjectiveReachEnd ObjectiveKind = iota
	ObjectiveCollectCoins
	ObjectiveDefeatEnemies
	ObjectiveSurviveTime
	ObjectiveCollectKey
)

// String returns the string representation of the objective kind
func (k ObjectiveKind) String() string {
	switch k {
	case ObjectiveReachEnd:
		return "ReachEnd"
	case ObjectiveCollectCoins:
		return "CollectCoins"
	case ObjectiveDefeatEnemies:
		return "DefeatEnemies"
	case ObjectiveSurviveTime:
		return "SurviveTime"
	case ObjectiveCollectKey:
		return "CollectKey"
	default:
		return "Unknown"
	}
}

// ParseObjectiveKind parses a level-file objective tag such as "collect-coins"
func ParseObjectiveKind(tag string) (ObjectiveKind, bool) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(tag))
	switch norm {
	case "reachend":
		return ObjectiveReachEnd, true
	case "collectcoins", "coins":
		return ObjectiveCollectCoins, true
	case "defeatenemies", "enemies":
		return ObjectiveDefeatEnemies, true
	case "survivetime", "survive":
		return ObjectiveSurviveTime, true
	case "collectkey", "key":
		return ObjectiveCollectKey, true
	default:
		return ObjectiveReachEnd, false
	}
}

// Objective is a level-completion condition
type Objective struct {
	Kind         ObjectiveKind
	Target       int
	Current      int
	Accomplished bool
	Description  string
}

// NewObjective creates an objective with no progress
func NewObjective(kind ObjectiveKind, target int, description string) *Objective {
	return &Objective{
		Kind:        kind,
		Target:      target,
		Description: description,
	}
}

// Set replaces the current progress value
func (o *Objective) Set(value int) {
	o.Current = value
	o.check()
}

// Increment adds to the current progress value
func (o *Objective) Increment(delta int) {
	o.Current += delta
	o.check()
}

// Complete marks the objective accomplished regardless of progress
func (o *Objective) Complete() {
	o.Accomplished = true
}

// Accomplishment is sticky: progress going back down does not undo it.
func (o *Objective) check() {
	if o.Current >= o.Target {
		o.Accomplished = true
	}
}

// Reset clears progress
func (o *Objective) Reset() {
	o.Current = 0
	o.Accomplished = false
}

// Percent returns progress in [0, 100]. A zero target counts as done.
func (o *Objective) Percent() float64 {
	if o.Target == 0 {
		return 100
	}
	return min(100, float64(o.Current)*100/float64(o.Target))
}

// String returns "description (current/target)"
func (o *Objective) String() string {
	return fmt.Sprintf("%s (%d/%d)", o.Description, o.Current, o.Target)
}
