// Package config loads cocomig settings from cocomig.toml or .cocomig.yaml.
package config

import (
	"cocomig/internal/migrate"
)

// Markers are the names the matchers look for.
type Markers struct {
	Module      string `toml:"module" yaml:"module"`
	Coroutine   string `toml:"coroutine" yaml:"coroutine"`
	Fork        string `toml:"fork" yaml:"fork"`
	StartSoon   string `toml:"start_soon" yaml:"start_soon"`
	ReturnValue string `toml:"return_value" yaml:"return_value"`
}

// Files controls discovery and output naming.
type Files struct {
	Extensions []string `toml:"extensions" yaml:"extensions"`
	Exclude    []string `toml:"exclude" yaml:"exclude"`
	Suffix     string   `toml:"suffix" yaml:"suffix"`
}

type Config struct {
	// Path of the file the config came from; empty for defaults.
	Path    string  `toml:"-" yaml:"-"`
	Markers Markers `toml:"markers" yaml:"markers"`
	Files   Files   `toml:"files" yaml:"files"`
}

// DefaultSuffix names the sibling file apply writes without --inplace.
const DefaultSuffix = ".migrated.py"

// Default returns the built-in configuration.
func Default() *Config {
	m := migrate.DefaultMarkers()
	return &Config{
		Markers: Markers{
			Module:      m.Module,
			Coroutine:   m.Coroutine,
			Fork:        m.Fork,
			StartSoon:   m.StartSoon,
			ReturnValue: m.ReturnValue,
		},
		Files: Files{
			Extensions: []string{".py"},
			Suffix:     DefaultSuffix,
		},
	}
}

// fill replaces unset fields with defaults.
func (c *Config) fill() {
	def := Default()
	set := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	set(&c.Markers.Module, def.Markers.Module)
	set(&c.Markers.Coroutine, def.Markers.Coroutine)
	set(&c.Markers.Fork, def.Markers.Fork)
	set(&c.Markers.StartSoon, def.Markers.StartSoon)
	set(&c.Markers.ReturnValue, def.Markers.ReturnValue)
	set(&c.Files.Suffix, def.Files.Suffix)
	if len(c.Files.Extensions) == 0 {
		c.Files.Extensions = def.Files.Extensions
	}
}

// MigrateOptions converts the markers for migrate.Scan and migrate.Migrate.
func (c *Config) MigrateOptions() []migrate.Option {
	return []migrate.Option{migrate.WithMarkers(migrate.Markers{
		Module:      c.Markers.Module,
		Coroutine:   c.Markers.Coroutine,
		Fork:        c.Markers.Fork,
		StartSoon:   c.Markers.StartSoon,
		ReturnValue: c.Markers.ReturnValue,
	})}
}
