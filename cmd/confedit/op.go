// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/yourbase/confutil/configfile"
)

// An op is a single query or edit of a configuration file. Ops are built from
// command-line arguments, apply scripts and shell input.
type op struct {
	Op      string  `json:"op"`
	Section string  `json:"section,omitempty"`
	Key     string  `json:"key,omitempty"`
	Value   *string `json:"value,omitempty"`
	Old     *string `json:"old,omitempty"`
	Once    bool    `json:"once,omitempty"`
	All     bool    `json:"all,omitempty"`
}

var sectionNamePattern = regexp.MustCompile(`^[\w._-]+$`)

// validate reports whether the op would produce lines that read back as the
// same properties.
func (o *op) validate() error {
	switch o.Op {
	case "sections":
		return nil
	case "items":
		return checkSection(o.Section)
	case "get", "rm", "set", "add", "update":
	default:
		return fmt.Errorf("unknown op %q", o.Op)
	}
	if err := checkSection(o.Section); err != nil {
		return err
	}
	if err := checkKey(o.Key); err != nil {
		return err
	}
	switch o.Op {
	case "set", "add", "update":
		if o.Value == nil {
			return fmt.Errorf("%s %s.%s: missing value", o.Op, o.Section, o.Key)
		}
	}
	for _, v := range []*string{o.Value, o.Old} {
		if v != nil {
			if err := checkValue(*v); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkSection(name string) error {
	if !sectionNamePattern.MatchString(name) {
		return fmt.Errorf("invalid section name %q", name)
	}
	return nil
}

func checkKey(key string) error {
	switch {
	case key == "":
		return errors.New("empty key")
	case key != strings.TrimSpace(key):
		return fmt.Errorf("key %q has surrounding spaces", key)
	case strings.ContainsAny(key, ":=\r\n"):
		return fmt.Errorf("key %q contains ':', '=' or a newline", key)
	case strings.HasPrefix(key, "#") || strings.HasPrefix(key, "["):
		return fmt.Errorf("key %q would read back as a comment or header", key)
	}
	return nil
}

func checkValue(value string) error {
	switch {
	case strings.ContainsAny(value, "\r\n"):
		return fmt.Errorf("value %q contains a newline", value)
	case value != strings.TrimSpace(value):
		return fmt.Errorf("value %q has surrounding spaces", value)
	}
	return nil
}

// run applies the op to f, writing the results of queries to w. It reports
// whether f was modified.
func (o *op) run(f *configfile.File, w io.Writer) (changed bool, err error) {
	if err := o.validate(); err != nil {
		return false, err
	}
	switch o.Op {
	case "get":
		if !o.All {
			v, err := f.GetOne(o.Section, o.Key)
			if err != nil {
				return false, err
			}
			_, err = fmt.Fprintln(w, v)
			return false, err
		}
		n := 0
		for v := range f.Get(o.Section, o.Key) {
			if _, err := fmt.Fprintln(w, v); err != nil {
				return false, err
			}
			n++
		}
		if n == 0 {
			return false, &configfile.NotFoundError{Section: o.Section, Key: o.Key}
		}
		return false, nil
	case "items":
		for k, v := range f.Items(o.Section) {
			if _, err := fmt.Fprintf(w, "%s=%s\n", k, v); err != nil {
				return false, err
			}
		}
		return false, nil
	case "sections":
		for _, name := range f.Sections() {
			if _, err := fmt.Fprintln(w, name); err != nil {
				return false, err
			}
		}
		return false, nil
	case "set":
		f.AddOrUpdate(o.Section, o.Key, *o.Value)
		return true, nil
	case "add":
		f.Add(o.Section, o.Key, *o.Value)
		return true, nil
	case "update":
		opts := &configfile.UpdateOptions{Once: o.Once}
		if o.Old != nil {
			opts.OldValue = *o.Old
			opts.HasOldValue = true
		}
		if f.Update(o.Section, o.Key, *o.Value, opts) == 0 {
			return false, &configfile.NotFoundError{Section: o.Section, Key: o.Key}
		}
		return true, nil
	case "rm":
		var n int
		if o.Value != nil {
			n = f.RemoveValue(o.Section, o.Key, *o.Value)
		} else {
			n = f.Remove(o.Section, o.Key)
		}
		if n == 0 {
			return false, &configfile.NotFoundError{Section: o.Section, Key: o.Key}
		}
		return true, nil
	default:
		panic("unreachable")
	}
}
