// Package config loads and validates the declarative fpsync
// configuration: required paths, directory pair entries, and the
// optional lifecycle hook commands.
package config

import (
	"github.com/arthur-debert/fpsync/pkg/errors"
)

// Entry is one synchronized directory pair. Direction decides which
// side is the source; targets are relative fragments beneath it.
type Entry struct {
	Local       string   `koanf:"local" toml:"local"`
	Remote      string   `koanf:"remote" toml:"remote"`
	Targets     []string `koanf:"targets" toml:"targets"`
	ExcludeFrom string   `koanf:"exclude_from" toml:"exclude_from,omitempty"`
}

// Config is the full declarative configuration for a run. Hooks are
// shell command lines, not executable config: the file itself is pure
// data.
type Config struct {
	RsyncProgram string   `koanf:"rsync_program" toml:"rsync_program,omitempty"`
	MustExist    []string `koanf:"must_exist" toml:"must_exist"`
	AtStartup    string   `koanf:"at_startup" toml:"at_startup,omitempty"`
	AtExit       string   `koanf:"at_exit" toml:"at_exit,omitempty"`
	Entries      []Entry  `koanf:"entry" toml:"entry"`
}

// Validate checks the structural invariants the builder relies on:
// both sides of every pair present and at least one target each.
func (c *Config) Validate() error {
	if len(c.MustExist) == 0 {
		return errors.New(errors.ErrConfigValid, "config must define must_exist")
	}
	if len(c.Entries) == 0 {
		return errors.New(errors.ErrConfigValid, "config must define at least one [[entry]]")
	}
	for i, entry := range c.Entries {
		if entry.Local == "" {
			return errors.Newf(errors.ErrConfigValid, "entry %d: local path is empty", i)
		}
		if entry.Remote == "" {
			return errors.Newf(errors.ErrConfigValid, "entry %d: remote path is empty", i)
		}
		if len(entry.Targets) == 0 {
			return errors.Newf(errors.ErrConfigValid, "entry %d (%s): targets is empty", i, entry.Local)
		}
		for j, target := range entry.Targets {
			if target == "" {
				return errors.Newf(errors.ErrConfigValid, "entry %d (%s): target %d is empty", i, entry.Local, j)
			}
		}
	}
	return nil
}
