// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package config loads and persists the Sitescope configuration. Settings
// are resolved from (in increasing precedence) built-in defaults, the user
// or system sitescope.yaml, environment variables with the SITESCOPE_
// prefix, and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	Database struct {
		Type string `mapstructure:"type" yaml:"type"`
		Dsn  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`
	Fetch struct {
		// TimeoutSeconds bounds every outbound HTTP request.
		TimeoutSeconds int    `mapstructure:"timeout" yaml:"timeout"`
		UserAgent      string `mapstructure:"user_agent" yaml:"user_agent"`
	} `mapstructure:"fetch" yaml:"fetch"`
	Crawl struct {
		MaxURLs     int `mapstructure:"max_urls" yaml:"max_urls"`
		Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
	} `mapstructure:"crawl" yaml:"crawl"`
	Language string `mapstructure:"language" yaml:"language"`
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		// System-wide configuration paths
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Sitescope")
		default: // Linux, macOS, etc.
			configDir = "/etc/sitescope"
		}
	} else {
		// User-specific configuration paths
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "sitescope")
	}

	return filepath.Join(configDir, "sitescope.yaml"), nil
}

// LoadConfig resolves the configuration for the given command. An explicit
// config file path (from the --config flag) takes precedence over the
// standard search locations.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitConfigPath *string) (T, error) {
	var c T
	v := viper.New()

	// 1. Set defaults
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. Set up file search paths
	v.SetConfigName("sitescope")
	v.SetConfigType("yaml")

	// 3. Add explicit config file path if provided via --config flag.
	// This has the highest precedence for file-based configuration.
	if explicitConfigPath != nil {
		v.SetConfigFile(*explicitConfigPath)
	}

	// 4. Add standard config locations
	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".") // Look for sitescope.yaml in current dir

	// 5. Read in the primary config file. A missing file is not fatal; the
	// resolved defaults are still returned along with the not-found error so
	// callers can decide to write a fresh config.
	var notFoundErr error
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			notFoundErr = err
		} else {
			return c, err
		}
	}

	// 6. Read from environment variables
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("sitescope")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 7. Bind command-line flags; these win over files and environment.
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, notFoundErr
}

// WriteConfigFile persists the configuration as YAML to the user or system
// config path, creating the directory if necessary.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := getConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}

	return nil
}
