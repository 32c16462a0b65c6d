package config

// StageConfig is the root config for stage JSON files.
// Positions are world units with Y pointing up; collision rows are listed top row first.
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Size        StageSizeConfig              `json:"size"`
	PlayerSpawn PositionConfig               `json:"playerSpawn"`
	Respawn     *PositionConfig              `json:"respawn,omitempty"`
	End         *PositionConfig              `json:"end,omitempty"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
	Enemies     []EnemySpawnConfig           `json:"enemies"`
	Pickups     []PickupSpawnConfig          `json:"pickups"`
	PowerUps    []PowerUpSpawnConfig         `json:"powerUps"`
	Obstacles   []ObstacleConfig             `json:"obstacles"`
	Flag        *FlagConfig                  `json:"flag,omitempty"`
	Objectives  []ObjectiveConfig            `json:"objectives"`
}

type StageSizeConfig struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	TileSize int `json:"tileSize"`
}

type PositionConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type LayersConfig struct {
	Collision []string `json:"collision"`
}

// TileMappingConfig maps a collision-layer character to an obstacle kind
type TileMappingConfig struct {
	Type         string `json:"type"`
	Solid        bool   `json:"solid"`
	Destructible bool   `json:"destructible,omitempty"`
}

type EnemySpawnConfig struct {
	Type           string  `json:"type"`
	X              int     `json:"x"`
	Y              int     `json:"y"`
	FacingRight    bool    `json:"facingRight"`
	Behavior       string  `json:"behavior,omitempty"`
	PatrolDistance float64 `json:"patrolDistance,omitempty"`
	Health         int     `json:"health,omitempty"`
}

type PickupSpawnConfig struct {
	Type  string `json:"type"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Value int    `json:"value,omitempty"`
}

type PowerUpSpawnConfig struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

type ObstacleConfig struct {
	Type         string     `json:"type"`
	Rect         RectConfig `json:"rect"`
	Destructible bool       `json:"destructible,omitempty"`
}

type RectConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type FlagConfig struct {
	X          int `json:"x"`
	Y          int `json:"y"`
	PoleHeight int `json:"poleHeight,omitempty"`
}

type ObjectiveConfig struct {
	Type        string `json:"type"`
	Target      int    `json:"target"`
	Description string `json:"description,omitempty"`
}
