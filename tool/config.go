package tool

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flowdrop/flowdrop-go/types"
)

var (
	ConfigPath    = "config.yaml" // be aware that it can be changed, default to ./config.yaml
	CurrentConfig types.AppConfig
)

func defaultConfig() types.AppConfig {
	return types.AppConfig{
		Port:            8917,
		MaxFileSize:     100 * 1024 * 1024,        // 100 MiB
		StorageCapacity: 100 * 1024 * 1024 * 1024, // 100 GiB
		AllowedTypes: []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
			"application/pdf", "text/plain", "text/csv",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		},
		StoreLatencyMinMs: 100,
		StoreLatencyMaxMs: 400,
		StepDelayMinMs:    100,
		StepDelayMaxMs:    300,
		Seed:              true,
		RateLimitRPS:      20,
		RateLimitBurst:    40,
	}
}

// LoadConfig reads the YAML config at path, creating it with defaults when missing.
func LoadConfig(path string) (types.AppConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	ConfigPath = path

	cfg := defaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if writeErr := writeConfig(path, cfg); writeErr != nil {
				return cfg, fmt.Errorf("config file not found, and failed to generate default config: %v", writeErr)
			}
			DefaultLogger.Infof("Created new config file at %s", path)
			CurrentConfig = cfg
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %v", err)
	}

	if cfg.StoreLatencyMaxMs < cfg.StoreLatencyMinMs {
		cfg.StoreLatencyMaxMs = cfg.StoreLatencyMinMs
	}
	if cfg.StepDelayMaxMs < cfg.StepDelayMinMs {
		cfg.StepDelayMaxMs = cfg.StepDelayMinMs
	}

	CurrentConfig = cfg
	return cfg, nil
}

func writeConfig(path string, cfg types.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
