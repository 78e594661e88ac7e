package config

import "time"

// GlobalConfig represents the structure of unyson.yaml
type GlobalConfig struct {
	WPBinary       string                     `mapstructure:"wpBinary"       yaml:"wpBinary"`
	WPPath         string                     `mapstructure:"wpPath"         yaml:"wpPath,omitempty"`
	PluginSlug     string                     `mapstructure:"pluginSlug"     yaml:"pluginSlug"`
	Repository     string                     `mapstructure:"repository"     yaml:"repository"`
	RequestTimeout time.Duration              `mapstructure:"requestTimeout" yaml:"requestTimeout"`
	Debug          bool                       `mapstructure:"debug"          yaml:"debug"`
	EnvFile        string                     `mapstructure:"envFile"        yaml:"envFile,omitempty"`
	Extensions     map[string]ExtensionConfig `mapstructure:"extensions"     yaml:"extensions,omitempty"`

	// Path of the file this was loaded from; empty when only defaults apply.
	Source string `mapstructure:"-" yaml:"-"`
}

// ExtensionConfig holds per-extension settings under extensions.<name>
type ExtensionConfig struct {
	// Repo is a git URL whose tags are the extension's published versions.
	Repo     string            `mapstructure:"repo"     yaml:"repo,omitempty"`
	Commands []ScriptedCommand `mapstructure:"commands" yaml:"commands,omitempty"`
}

// ScriptedCommand declares an extra `unyson ext <name> <cmd>` subcommand that
// runs a wp invocation.
type ScriptedCommand struct {
	Method string   `mapstructure:"method" yaml:"method"`
	Alias  string   `mapstructure:"alias"  yaml:"alias,omitempty"`
	Short  string   `mapstructure:"short"  yaml:"short,omitempty"`
	Run    []string `mapstructure:"run"    yaml:"run"`
}

// Name is the word the command is invoked with.
func (s ScriptedCommand) Name() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Method
}
