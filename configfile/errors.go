// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by errors.Is for every *NotFoundError.
var ErrNotFound = errors.New("not found")

// A SyntaxError is returned when a line is neither a section header, a
// property nor a blank line.
type SyntaxError struct {
	Line     string
	Rank     int // zero-based line index
	NameHint string
}

func (e *SyntaxError) Error() string {
	if e.NameHint == "" {
		return fmt.Sprintf("invalid line %q at line %d", e.Line, e.Rank+1)
	}
	return fmt.Sprintf("invalid line %q at %s:%d", e.Line, e.NameHint, e.Rank+1)
}

// A NotFoundError is returned when a key has no value in a section.
type NotFoundError struct {
	Section string
	Key     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("key %q not found in section %q", e.Key, e.Section)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// A ReadingError is returned when a configuration file cannot be read.
type ReadingError struct {
	Path string
	Err  error
}

func (e *ReadingError) Error() string {
	return fmt.Sprintf("read config file %s: %v", e.Path, e.Err)
}

func (e *ReadingError) Unwrap() error { return e.Err }

// A WritingError is returned when a configuration file cannot be written.
type WritingError struct {
	Path string
	Err  error
}

func (e *WritingError) Error() string {
	return fmt.Sprintf("write config file %s: %v", e.Path, e.Err)
}

func (e *WritingError) Unwrap() error { return e.Err }
