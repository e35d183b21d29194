// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package retry provides a function for retrying I/O, such as writing a
// configuration file that another process holds open.
package retry

import (
	"context"
	"time"

	"zombiezen.com/go/log"
)

// Stop is returned by a BackoffStrategy to signal that no more attempts
// should be made.
const Stop time.Duration = -1

// A BackoffStrategy can be called repeatedly to obtain (presumably) increasing
// durations to wait between retries. A negative duration ends the retries.
type BackoffStrategy interface {
	Duration() time.Duration
}

// Do calls a function repeatedly with backoff until it returns a nil error.
// Do returns the function's last error if the strategy returns Stop or the
// Context is Done before the function succeeds. The function is guaranteed to
// be called at least once.
//
// The operation should be a verb phrase like "writing app.conf" for logging.
func Do(ctx context.Context, operation string, strategy BackoffStrategy, f func() error) error {
	var t *time.Timer
	for {
		err := f()
		if err == nil {
			return nil
		}
		d := strategy.Duration()
		switch {
		case d < 0:
			log.Warnf(ctx, "Error %s (giving up): %v", operation, err)
			return err
		case d > 0:
			log.Warnf(ctx, "Error %s (will retry in %v): %v", operation, d, err)
			if t == nil {
				t = time.NewTimer(d)
				defer t.Stop()
			} else {
				t.Reset(d)
			}
			select {
			case <-t.C:
			case <-ctx.Done():
				return err
			}
		default:
			log.Warnf(ctx, "Error %s (will retry): %v", operation, err)
			select {
			case <-ctx.Done():
				return err
			default:
			}
		}
	}
}

// Exponential is a BackoffStrategy that doubles the wait after every retry.
// An Exponential must not be copied after first use.
type Exponential struct {
	// Initial is the wait before the first retry.
	Initial time.Duration
	// Max caps the wait between retries. Zero means no cap.
	Max time.Duration
	// Retries is the number of retries before giving up. Zero means no limit.
	Retries int

	n    int
	next time.Duration
}

// Duration returns the wait before the next retry or Stop.
func (e *Exponential) Duration() time.Duration {
	if e.Retries > 0 && e.n >= e.Retries {
		return Stop
	}
	e.n++
	if e.n == 1 {
		e.next = e.Initial
	}
	d := e.next
	if e.Max > 0 && d > e.Max {
		d = e.Max
	}
	e.next *= 2
	return d
}
