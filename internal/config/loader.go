package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	EnvTotalLogs = "LOGVIEW_TOTAL_LOGS"
	EnvBatchSize = "LOGVIEW_BATCH_SIZE"
)

// LoadLogViewer loads log viewer configuration.
// Search order: customPath -> ~/.logview/configs/logview.yaml -> ./configs/logview.yaml -> embedded default
// Values missing from a file keep their defaults.
func LoadLogViewer(customPath string) (LogViewerConfig, error) {
	cfg := DefaultLogViewerConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("logview.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			candidate := DefaultLogViewerConfig()
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "logview.yaml")); err == nil {
		candidate := DefaultLogViewerConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultLogViewerYAML, &cfg); err != nil {
		return DefaultLogViewerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ApplyEnv overrides sizes from the environment. lookup is usually os.LookupEnv.
func ApplyEnv(cfg *LogViewerConfig, lookup func(string) (string, bool)) error {
	overrides := []struct {
		name string
		dst  *int
	}{
		{EnvTotalLogs, &cfg.TotalLogs},
		{EnvBatchSize, &cfg.BatchSize},
	}

	for _, o := range overrides {
		raw, ok := lookup(o.name)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, o.name, raw)
		}
		*o.dst = v
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".logview", "configs", filename)
}
