package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Settings is the game tuning read from the yaml settings file. Fields left
// at zero keep their defaults.
type Settings struct {
	CooldownSeconds     int `yaml:"cooldown_seconds"`
	TimeLimitSeconds    int `yaml:"time_limit_seconds"`
	ScanIntervalSeconds int `yaml:"scan_interval_seconds"`
}

func DefaultSettings() Settings {
	return Settings{
		CooldownSeconds:     5,
		TimeLimitSeconds:    300,
		ScanIntervalSeconds: 1,
	}
}

// LoadSettings reads path, overlaying the defaults. A missing file is not an
// error; the defaults stand.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("parse settings: %w", err)
	}

	if settings.CooldownSeconds <= 0 {
		settings.CooldownSeconds = DefaultSettings().CooldownSeconds
	}
	if settings.TimeLimitSeconds <= 0 {
		settings.TimeLimitSeconds = DefaultSettings().TimeLimitSeconds
	}
	if settings.ScanIntervalSeconds <= 0 {
		settings.ScanIntervalSeconds = DefaultSettings().ScanIntervalSeconds
	}

	return settings, nil
}

func (s Settings) Cooldown() time.Duration {
	return time.Duration(s.CooldownSeconds) * time.Second
}

func (s Settings) TimeLimit() time.Duration {
	return time.Duration(s.TimeLimitSeconds) * time.Second
}

func (s Settings) ScanInterval() time.Duration {
	return time.Duration(s.ScanIntervalSeconds) * time.Second
}
