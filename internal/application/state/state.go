package state

// GameState represents the current state of the game
type GameState int

const (
	StateMenu GameState = iota
	StatePlaying
	StatePaused
	StateGameOver
	StateVictory
	StateLevelTransition
	StateLevelRecap
	StateEndLevelSequence
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	case StateVictory:
		return "Victory"
	case StateLevelTransition:
		return "LevelTransition"
	case StateLevelRecap:
		return "LevelRecap"
	case StateEndLevelSequence:
		return "EndLevelSequence"
	default:
		return "Unknown"
	}
}

// TransitionState is the level manager's transition phase
type TransitionState int

const (
	TransitionNone TransitionState = iota
	TransitionLevelStart
	TransitionLevelEnd
	TransitionInProgress
)

// String returns the string representation of the transition state
func (s TransitionState) String() string {
	switch s {
	case TransitionNone:
		return "None"
	case TransitionLevelStart:
		return "LevelStart"
	case TransitionLevelEnd:
		return "LevelEnd"
	case TransitionInProgress:
		return "InProgress"
	default:
		return "Unknown"
	}
}

// SequenceStep is a step of the scripted end-of-level sequence
type SequenceStep int

const (
	StepNone SequenceStep = iota
	StepFlagSlide
	StepWalkToCastle
	StepEnterCastle
	StepAwaitMenu
)

// String returns the string representation of the sequence step
func (s SequenceStep) String() string {
	switch s {
	case StepNone:
		return "None"
	case StepFlagSlide:
		return "FlagSlide"
	case StepWalkToCastle:
		return "WalkToCastle"
	case StepEnterCastle:
		return "EnterCastle"
	case StepAwaitMenu:
		return "AwaitMenu"
	default:
		return "Unknown"
	}
}
