package config

// CampaignConfig is the root config for campaign.yaml
type CampaignConfig struct {
	Name     string   `yaml:"name"`
	Levels   []string `yaml:"levels"` // Level sources, relative to the config root
	AutoSave bool     `yaml:"autoSave"`
}
