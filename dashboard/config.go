package dashboard

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Config is the service configuration, loaded from YAML. Any field left
// empty in the file takes its default.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	DataDir    string `yaml:"data_dir"`
	CheckoutID string `yaml:"checkout_id"`

	Postal  PostalConfig  `yaml:"postal"`
	Browser BrowserConfig `yaml:"browser"`
	Preview PreviewConfig `yaml:"preview"`
}

// PostalConfig configures the postal lookup collaborator.
type PostalConfig struct {
	BaseURL    string `yaml:"base_url"`
	DebounceMS int    `yaml:"debounce_ms"`
}

// BrowserConfig configures the headless Chrome manager.
type BrowserConfig struct {
	RemoteURL     string `yaml:"remote_url"`
	MemoryLimitMB int64  `yaml:"memory_limit_mb"`
	RecycleHours  int    `yaml:"recycle_hours"`
}

// PreviewConfig configures the preview surface.
type PreviewConfig struct {
	HeightDebounceMS int `yaml:"height_debounce_ms"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8090",
		DataDir:    "data",
		CheckoutID: "chk_default",
		Postal: PostalConfig{
			BaseURL:    "https://viacep.com.br",
			DebounceMS: 300,
		},
		Browser: BrowserConfig{
			MemoryLimitMB: 512,
			RecycleHours:  6,
		},
		Preview: PreviewConfig{
			HeightDebounceMS: 150,
		},
	}
}

// LoadConfig reads the YAML file at path and fills unset fields with the
// defaults. An empty path yields the default configuration.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("dashboard: read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("dashboard: parse config: %w", err)
		}
	}
	if err := mergo.Merge(&cfg, DefaultConfig()); err != nil {
		return Config{}, fmt.Errorf("dashboard: apply config defaults: %w", err)
	}
	return cfg, nil
}
