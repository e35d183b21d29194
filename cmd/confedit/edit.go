// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/yourbase/confutil/configfile"
	"github.com/yourbase/confutil/retry"
	"zombiezen.com/go/log"
)

var errNoFile = errors.New("no configuration file: use --file or set CONFEDIT_FILE")

// load reads the configuration file. A file that does not exist yet is
// treated as empty so that it can be created.
func (a *app) load(ctx context.Context) (*configfile.File, error) {
	path := a.settings.file
	if path == "" {
		return nil, errNoFile
	}
	f, err := configfile.ParseFile(path, &configfile.FileOptions{
		SkipUnreadable: a.settings.skipUnreadable,
	})
	if errors.Is(err, fs.ErrNotExist) {
		log.Debugf(ctx, "%s does not exist; starting from an empty file", path)
		return configfile.New(), nil
	}
	if err != nil {
		return nil, err
	}
	log.Debugf(ctx, "Read %s (%d sections)", path, len(f.Sections()))
	return f, nil
}

// save writes the configuration file back, retrying with exponential backoff
// if the write fails.
func (a *app) save(ctx context.Context, f *configfile.File) error {
	path := a.settings.file
	write := func() error {
		return configfile.WriteFile(path, f)
	}
	if a.settings.retries == 0 {
		return write()
	}
	backoff := &retry.Exponential{
		Initial: 50 * time.Millisecond,
		Max:     2 * time.Second,
		Retries: a.settings.retries,
	}
	if err := retry.Do(ctx, "writing "+path, backoff, write); err != nil {
		return err
	}
	log.Debugf(ctx, "Wrote %s", path)
	return nil
}

// runOps applies the ops in order to the configuration file and saves it if
// any of them modified it. If an op fails, the file is left untouched.
func (a *app) runOps(ctx context.Context, w io.Writer, ops ...*op) error {
	f, err := a.load(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i, o := range ops {
		c, err := o.run(f, w)
		if err != nil {
			if len(ops) > 1 {
				return fmt.Errorf("op %d (%s): %w", i+1, o.Op, err)
			}
			return err
		}
		changed = changed || c
	}
	if !changed {
		return nil
	}
	return a.save(ctx, f)
}
