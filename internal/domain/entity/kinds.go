package entity

import "strings"

// PickupKind identifies what a pickup grants
type PickupKind int

const (
	PickupCoin PickupKind = iota
	PickupBonus
)

// String returns the string representation of the pickup kind
func (k PickupKind) String() string {
	switch k {
	case PickupCoin:
		return "coin"
	case PickupBonus:
		return "bonus"
	default:
		return "unknown"
	}
}

// ParsePickupKind maps a level-file type tag to a pickup kind.
// Anything that is not a coin is a plain score bonus.
func ParsePickupKind(tag string) PickupKind {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "", "coin", "piece":
		return PickupCoin
	default:
		return PickupBonus
	}
}

// PowerUpKind identifies the power-up effect
type PowerUpKind int

const (
	PowerMushroom PowerUpKind = iota
	PowerFireFlower
	PowerOneUp
	PowerStar
)

// String returns the string representation of the power-up kind
func (k PowerUpKind) String() string {
	switch k {
	case PowerMushroom:
		return "mushroom"
	case PowerFireFlower:
		return "fire_flower"
	case PowerOneUp:
		return "1up"
	case PowerStar:
		return "star"
	default:
		return "unknown"
	}
}

// Moves returns true for power-ups that slide along the ground
func (k PowerUpKind) Moves() bool {
	return k == PowerMushroom || k == PowerOneUp
}

// ParsePowerUpKind maps a level-file type tag to a power-up kind
func ParsePowerUpKind(tag string) (PowerUpKind, bool) {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "MUSHROOM", "CHAMPIGNON_MAGIQUE":
		return PowerMushroom, true
	case "FIRE_FLOWER", "FIREFLOWER", "FLEUR_DE_FEU":
		return PowerFireFlower, true
	case "1UP", "ONE_UP", "CHAMPIGNON_1UP":
		return PowerOneUp, true
	case "STAR", "SUPER_ETOILE":
		return PowerStar, true
	default:
		return 0, false
	}
}

// ObstacleKind tags special block interactions
type ObstacleKind int

const (
	BlockNormal ObstacleKind = iota
	BlockQuestion
	BlockBrick
	BlockPlatform
)

// String returns the string representation of the obstacle kind
func (k ObstacleKind) String() string {
	switch k {
	case BlockNormal:
		return "normal"
	case BlockQuestion:
		return "question"
	case BlockBrick:
		return "brick"
	case BlockPlatform:
		return "platform"
	default:
		return "unknown"
	}
}

// ParseObstacleKind matches a type tag loosely, so "question_block" or
// "BLOC_BRIQUE" both resolve.
func ParseObstacleKind(tag string) ObstacleKind {
	t := strings.ToLower(tag)
	switch {
	case strings.Contains(t, "question"), strings.Contains(t, "mystere"):
		return BlockQuestion
	case strings.Contains(t, "brick"), strings.Contains(t, "brique"):
		return BlockBrick
	case strings.Contains(t, "platform"), strings.Contains(t, "plateforme"):
		return BlockPlatform
	default:
		return BlockNormal
	}
}
