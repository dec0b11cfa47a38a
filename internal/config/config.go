// Package config provides Viper-backed configuration and logger
// construction for the llmchat CLI. The core library never reads
// configuration or environment variables; credential and settings
// sourcing is this collaborator's job.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadConfig loads CLI configuration from a file and the environment.
// With an empty path it searches for llmchat.yaml in the working
// directory and ~/.config/llmchat. Environment variables use the
// LLMBRIDGE_ prefix, e.g. LLMBRIDGE_API_KEY.
func LoadConfig(configPath string) (*viper.Viper, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("provider", "anthropic")
	v.SetDefault("model", "")
	v.SetDefault("system_prompt", "")
	v.SetDefault("max_tokens", 1024)
	v.SetDefault("temperature", 1.0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("llmchat")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/llmchat")
	}

	v.SetEnvPrefix("LLMBRIDGE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is fine -- use defaults
	}

	return v, nil
}
