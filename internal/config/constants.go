package config

import "time"

const (
	DefaultFileName       = "unyson.yaml"
	DefaultWPBinary       = "wp"
	DefaultPluginSlug     = "unyson"
	DefaultRepository     = "http://plugins.svn.wordpress.org"
	DefaultRequestTimeout = 10 * time.Second

	// NamePlaceholder is replaced by the extension name in scripted commands.
	NamePlaceholder = "{{name}}"
)
