// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"bytes"
	"os"

	"github.com/natefinch/atomic"
)

// FileOptions holds optional parameters for ParseFile.
type FileOptions struct {
	// If SkipUnreadable is true, a file that cannot be read is treated as
	// empty instead of returning a *ReadingError.
	SkipUnreadable bool

	// Lexer classifies the lines of the file. If nil, Parser is used.
	Lexer Lexer
}

// ParseFile parses the configuration file at the given path. Nil options are
// treated identically as passing the zero value.
func ParseFile(path string, opts *FileOptions) (*File, error) {
	f := new(File)
	if err := f.ParseFile(path, opts); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseFile reads the configuration file at the given path and appends its
// content to f. The whole file is read before any of it is parsed. If the
// file cannot be read, ParseFile returns a *ReadingError, unless
// opts.SkipUnreadable is set, in which case f is left unchanged.
func (f *File) ParseFile(path string, opts *FileOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if opts != nil && opts.SkipUnreadable {
			return nil
		}
		return &ReadingError{Path: path, Err: err}
	}
	popts := &ParseOptions{NameHint: path}
	if opts != nil {
		popts.Lexer = opts.Lexer
	}
	return f.Parse(bytes.NewReader(data), popts)
}

// WriteFile writes f to the given path. The file is replaced atomically:
// readers see either the old content or the new content, never a mix.
// Errors are returned as *WritingError.
func WriteFile(path string, f *File) error {
	text, err := f.MarshalText()
	if err != nil {
		return &WritingError{Path: path, Err: err}
	}
	if err := atomic.WriteFile(path, bytes.NewReader(text)); err != nil {
		return &WritingError{Path: path, Err: err}
	}
	return nil
}
