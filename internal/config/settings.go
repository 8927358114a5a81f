package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hjson/hjson-go/v4"

	"github.com/openclaw/claw-runner/internal/models"
)

// ErrInvalidConfig is returned when config.json exists but cannot be parsed.
// The accompanying config is always the defaults.
var ErrInvalidConfig = errors.New("invalid config")

// Snake-case spellings accepted from older config files.
var keyAliases = map[string]string{
	"dashboard_url":   "dashboardUrl",
	"gateway_service": "gatewayService",
	"daemon_service":  "daemonService",
}

// Load loads the config from path.
// A missing file yields defaults and no error. A malformed file yields
// defaults and an error wrapping ErrInvalidConfig.
func Load(path string) (*models.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewConfig(), nil
		}
		return models.NewConfig(), fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return models.NewConfig(), fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// Parse parses config file contents. Plain JSON is expected, but the HJSON
// superset (comments, trailing commas) is tolerated for hand edits.
func Parse(data []byte) (*models.Config, error) {
	var raw map[string]interface{}
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	for alias, key := range keyAliases {
		v, ok := raw[alias]
		if !ok {
			continue
		}
		if _, exists := raw[key]; !exists {
			raw[key] = v
		}
		delete(raw, alias)
	}

	// Round-trip through JSON for type checking against the struct.
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert to json: %w", err)
	}

	cfg := &models.Config{}
	if err := json.Unmarshal(jsonData, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// Save writes the config to path as indented JSON.
func Save(path string, cfg *models.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// EnsureFile creates the config file with default values if it is absent.
// It reports whether the file was created.
func EnsureFile(path string) (bool, error) {
	if FileExists(path) {
		return false, nil
	}
	if err := Save(path, models.NewConfig()); err != nil {
		return false, err
	}
	return true, nil
}
