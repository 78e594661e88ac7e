package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"unyson/internal/util"
)

// Default returns the configuration used when no file is present.
func Default() *GlobalConfig {
	return &GlobalConfig{
		WPBinary:       DefaultWPBinary,
		PluginSlug:     DefaultPluginSlug,
		Repository:     DefaultRepository,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// ResolvePath returns the absolute path of the config file. An empty path
// selects unyson.yaml in the working directory.
func ResolvePath(path string) (string, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current working directory: %w", err)
		}
		return filepath.Join(cwd, DefaultFileName), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", path, err)
	}
	return abs, nil
}

// Load reads the config file at path, falling back to defaults for any key
// it does not set. A missing file is not an error.
func Load(path string) (*GlobalConfig, error) {
	configFilePath, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(configFilePath)
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault("wpBinary", def.WPBinary)
	v.SetDefault("pluginSlug", def.PluginSlug)
	v.SetDefault("repository", def.Repository)
	v.SetDefault("requestTimeout", def.RequestTimeout)
	v.SetDefault("debug", false)

	found := true
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFilePath, err)
		}
		util.Log.Debugf("Config file not found at %s, using defaults.", configFilePath)
		found = false
	}

	var config GlobalConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config %s: %w", configFilePath, err)
	}
	if found {
		config.Source = configFilePath
		util.Log.Debugf("Loaded config from %s", configFilePath)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFilePath, err)
	}
	return &config, nil
}

// Validate checks the settings that would otherwise fail much later.
func (c *GlobalConfig) Validate() error {
	if strings.TrimSpace(c.WPBinary) == "" {
		return fmt.Errorf("wpBinary must not be empty")
	}
	if strings.TrimSpace(c.PluginSlug) == "" {
		return fmt.Errorf("pluginSlug must not be empty")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("requestTimeout must not be negative")
	}
	for name, ext := range c.Extensions {
		seen := make(map[string]bool)
		for i, sc := range ext.Commands {
			if sc.Method == "" {
				return fmt.Errorf("extensions.%s.commands[%d]: method is required", name, i)
			}
			if len(sc.Run) == 0 {
				return fmt.Errorf("extensions.%s.commands[%d]: run is required", name, i)
			}
			if seen[sc.Name()] {
				return fmt.Errorf("extensions.%s: command %q declared twice", name, sc.Name())
			}
			seen[sc.Name()] = true
		}
	}
	return nil
}

// Extension returns the settings declared for name, if any.
func (c *GlobalConfig) Extension(name string) (ExtensionConfig, bool) {
	ext, ok := c.Extensions[strings.ToLower(name)]
	return ext, ok
}

// Save writes the configuration as yaml. An existing file is only replaced
// when overwrite is set.
func Save(path string, cfg *GlobalConfig, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to check config file %s: %w", path, err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	util.Log.Debugf("Saved config to %s", path)
	return nil
}
