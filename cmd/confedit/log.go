// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"zombiezen.com/go/log"
)

// stderrLogger writes log entries as plain lines. Debug entries are dropped
// unless verbose is set.
type stderrLogger struct {
	verbose atomic.Bool

	mu sync.Mutex
	w  io.Writer
}

func newStderrLogger(w io.Writer) *stderrLogger {
	return &stderrLogger{w: w}
}

func (l *stderrLogger) setVerbose(v bool) {
	l.verbose.Store(v)
}

func (l *stderrLogger) Log(ctx context.Context, entry log.Entry) {
	prefix := "confedit: "
	switch {
	case entry.Level >= log.Error:
		prefix += "error: "
	case entry.Level >= log.Warn:
		prefix += "warning: "
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s%s\n", prefix, entry.Msg)
}

func (l *stderrLogger) LogEnabled(entry log.Entry) bool {
	return entry.Level >= log.Info || l.verbose.Load()
}
