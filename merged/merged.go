// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package merged resolves options from several sources, such as command-line
// flags, environment variables and configuration files, in order of
// precedence.
package merged

import (
	"fmt"
	"strings"

	"github.com/yourbase/confutil/configfile"
)

// A Default wraps a value that should only be used if no source sets the
// option explicitly. Command-line flag parsers typically report the default
// value of unset flags; wrapping them in Default lets a configuration file
// loaded later still take precedence.
type Default struct {
	Value any
}

func (d Default) String() string {
	return fmt.Sprintf("Default(%v)", d.Value)
}

// NormalizeKey returns the key lowercased with hyphens replaced by underscores.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "-", "_")
}

// Options is a single source of options.
type Options map[string]any

// Normalize returns a copy of opts with every key normalized. If two keys
// normalize to the same key, the result has an arbitrary one of their values.
func (opts Options) Normalize() Options {
	n := make(Options, len(opts))
	for k, v := range opts {
		n[NormalizeKey(k)] = v
	}
	return n
}

// A Config is an ordered list of option sources, in descending order of
// precedence. The zero value is an empty Config.
type Config struct {
	sources []Options
}

// New returns a Config with the given sources, normalizing their keys.
func New(sources ...Options) *Config {
	c := new(Config)
	for _, opts := range sources {
		c.Add(opts, true)
	}
	return c
}

// Add appends a source with lower precedence than all current sources. If
// normalize is true, the source's keys are normalized first; otherwise they
// must already be normalized to be found.
func (c *Config) Add(opts Options, normalize bool) {
	if normalize {
		opts = opts.Normalize()
	}
	c.sources = append(c.sources, opts)
}

// Get returns the value of the option with the given key. The key is
// normalized. Sources are consulted in order of precedence and the first
// value that is not a Default is returned. If every source either lacks the
// option or sets it to a Default, the first Default's value is returned.
// Get reports false if no source has the option.
func (c *Config) Get(key string) (any, bool) {
	v, _, ok := c.lookup(key)
	return v, ok
}

// GetDefault is like Get, but returns def if no source sets the option to a
// value other than a Default.
func (c *Config) GetDefault(key string, def any) any {
	if v, explicit, _ := c.lookup(key); explicit {
		return v
	}
	return def
}

func (c *Config) lookup(key string) (v any, explicit, ok bool) {
	key = NormalizeKey(key)
	var def any
	hasDefault := false
	for _, opts := range c.sources {
		val, found := opts[key]
		if !found {
			continue
		}
		if d, isDefault := val.(Default); isDefault {
			if !hasDefault {
				def, hasDefault = d.Value, true
			}
			continue
		}
		return val, true, true
	}
	return def, false, hasDefault
}

// String returns the option's value formatted with fmt.Sprint, or def.
func (c *Config) String(key string, def string) string {
	v, ok := c.Get(key)
	if !ok {
		return def
	}
	if s, isString := v.(string); isString {
		return s
	}
	return fmt.Sprint(v)
}

// FromSection returns the properties of a configuration file section as an
// option source. When a key appears more than once, the last value wins.
func FromSection(v configfile.SingleView) Options {
	opts := make(Options)
	for k, val := range v.Map() {
		opts[k] = val
	}
	return opts
}

// FromEnviron returns the environment variables that start with prefix
// followed by an underscore as an option source, keyed by the rest of the
// variable name. environ is in the form returned by os.Environ. Empty
// variables are ignored.
func FromEnviron(prefix string, environ []string) Options {
	opts := make(Options)
	prefix += "_"
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || v == "" {
			continue
		}
		name, ok := strings.CutPrefix(k, prefix)
		if !ok || name == "" {
			continue
		}
		opts[name] = v
	}
	return opts
}
