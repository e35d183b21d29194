// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
	"github.com/yourbase/confutil/configfile"
	"github.com/yourbase/confutil/merged"
)

// settings are the global options of confedit.
type settings struct {
	file           string
	skipUnreadable bool
	retries        int
	verbose        bool
}

const (
	envPrefix = "CONFEDIT"
	rcSection = "confedit"
)

// resolveSettings merges the command-line flags, the environment and the rc
// file, in that order of precedence. Flags that were not set on the command
// line only provide defaults.
func (a *app) resolveSettings(flags *pflag.FlagSet) error {
	flagOpts := make(merged.Options)
	flags.VisitAll(func(fl *pflag.Flag) {
		if fl.Changed {
			flagOpts[fl.Name] = fl.Value.String()
		} else {
			flagOpts[fl.Name] = merged.Default{Value: fl.Value.String()}
		}
	})
	cfg := merged.New(flagOpts, merged.FromEnviron(envPrefix, a.environ))
	if a.rcPath != "" {
		rc, err := configfile.ParseFile(a.rcPath, &configfile.FileOptions{SkipUnreadable: true})
		if err != nil {
			return err
		}
		cfg.Add(merged.FromSection(rc.SingleSection(rcSection)), true)
	}

	var s settings
	var err error
	s.file = cfg.String("file", "")
	if s.skipUnreadable, err = boolSetting(cfg, "skip-unreadable"); err != nil {
		return err
	}
	if s.verbose, err = boolSetting(cfg, "verbose"); err != nil {
		return err
	}
	if s.retries, err = strconv.Atoi(cfg.String("retries", "0")); err != nil {
		return fmt.Errorf("retries: %w", err)
	}
	if s.retries < 0 {
		return fmt.Errorf("retries: %d is negative", s.retries)
	}
	a.settings = s
	if a.setVerbose != nil {
		a.setVerbose(s.verbose)
	}
	return nil
}

func boolSetting(cfg *merged.Config, key string) (bool, error) {
	v := cfg.String(key, "false")
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", key, v)
	}
	return b, nil
}
