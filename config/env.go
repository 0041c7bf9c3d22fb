// Package config owns process configuration: environment variables, the
// yaml settings file, and the one-line channel-id file.
package config

import "github.com/caarlos0/env/v11"

// Env is the process environment.
type Env struct {
	SettingsPath string `env:"SWEEPBOT_SETTINGS" envDefault:"settings.yaml"`
	ChannelFile  string `env:"SWEEPBOT_CHANNEL_FILE" envDefault:"channel.txt"`
	LogLevel     string `env:"SWEEPBOT_LOG_LEVEL" envDefault:"info"`
}

func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
