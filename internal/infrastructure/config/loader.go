package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	TuningFile   = "tuning.yaml"
	CampaignFile = "campaign.yaml"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Tuning   *Tuning
	Campaign *CampaignConfig
}

// Loader loads game configuration using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// FS returns the filesystem the loader reads from
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// BasePath returns the path the loader was created with
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadTuning loads tuning.yaml on top of DefaultTuning.
// A missing file yields the defaults.
func (l *Loader) LoadTuning() (*Tuning, error) {
	cfg := DefaultTuning()

	data, err := fs.ReadFile(l.fsys, TuningFile)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TuningFile, err)
	}

	if err := ParseTuning(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseTuning decodes YAML onto cfg and validates the result
func ParseTuning(data []byte, cfg *Tuning) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", TuningFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid %s: %w", TuningFile, err)
	}
	return nil
}

// LoadCampaign loads campaign.yaml
func (l *Loader) LoadCampaign() (*CampaignConfig, error) {
	data, err := fs.ReadFile(l.fsys, CampaignFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", CampaignFile, err)
	}

	var cfg CampaignConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", CampaignFile, err)
	}
	if len(cfg.Levels) == 0 {
		return nil, fmt.Errorf("%s lists no levels", CampaignFile)
	}

	return &cfg, nil
}

// LoadStage loads a stage JSON file by path
func (l *Loader) LoadStage(path string) (*StageConfig, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", path, err)
	}

	cfg, err := ParseStage(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", path, err)
	}
	return cfg, nil
}

// ParseStage decodes a stage JSON document
func ParseStage(data []byte) (*StageConfig, error) {
	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Size.TileSize <= 0 {
		cfg.Size.TileSize = 32
	}
	return &cfg, nil
}

// LoadAll loads tuning and campaign
func (l *Loader) LoadAll() (*GameConfig, error) {
	tuning, err := l.LoadTuning()
	if err != nil {
		return nil, err
	}

	campaign, err := l.LoadCampaign()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Tuning:   tuning,
		Campaign: campaign,
	}, nil
}
