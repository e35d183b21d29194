// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"fmt"
	"strings"
)

// Kind is the type of a Line.
type Kind int

// Line kinds.
const (
	// Blank is a whitespace-only or comment-only line.
	Blank Kind = iota
	// Header is a section header like "[name]".
	Header
	// Data is a "key: value" or "key = value" property.
	Data
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Header:
		return "header"
	case Data:
		return "data"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// A Line is a single line of a configuration file. Lines are immutable
// values: two Lines are equal (with ==) if they have the same kind, raw text
// and content. Line is comparable and can be used as a map key.
//
// Equality is rarely what callers want for lookups; see Match.
type Line struct {
	kind     Kind
	text     string
	key      string
	value    string
	hasValue bool
	name     string
}

// BlankLine returns a blank or comment line with the given raw text.
func BlankLine(text string) Line {
	return Line{kind: Blank, text: text}
}

// HeaderLine returns a section header line for the given section name.
func HeaderLine(name string) Line {
	l := Line{kind: Header, name: name}
	l.text = l.String()
	return l
}

// DataLine returns a property line with the given key and value.
func DataLine(key, value string) Line {
	l := Line{kind: Data, key: key, value: value, hasValue: true}
	l.text = l.String()
	return l
}

// KeyPattern returns a property line with the given key and no value.
// It is intended to be used as a pattern: it matches every property with
// the same key.
func KeyPattern(key string) Line {
	l := Line{kind: Data, key: key}
	l.text = l.String()
	return l
}

// WithText returns a copy of l with its raw text replaced. If text is empty,
// the raw text is derived from the line's content.
func (l Line) WithText(text string) Line {
	if text == "" {
		text = l.String()
	}
	l.text = text
	return l
}

// Kind returns the kind of the line.
func (l Line) Kind() Kind { return l.kind }

// Text returns the raw text of the line, as read from the file or derived
// from its content.
func (l Line) Text() string { return l.text }

// Key returns the property key of a Data line.
func (l Line) Key() string { return l.key }

// Value returns the property value of a Data line. It returns the empty string
// for a pattern without a value.
func (l Line) Value() string { return l.value }

// HasValue reports whether a Data line has a value. Lines returned by KeyPattern
// do not.
func (l Line) HasValue() bool { return l.hasValue }

// Name returns the section name of a Header line.
func (l Line) Name() string { return l.name }

// String returns the canonical form of the line: "key: value" for Data lines,
// "[name]" for Header lines, and the raw text for Blank lines.
func (l Line) String() string {
	switch l.kind {
	case Data:
		return l.key + ": " + l.value
	case Header:
		return "[" + l.name + "]"
	default:
		return l.text
	}
}

// GoString returns a debugging representation of the line.
func (l Line) GoString() string {
	switch l.kind {
	case Data:
		if !l.hasValue {
			return fmt.Sprintf("configfile.KeyPattern(%q)", l.key)
		}
		return fmt.Sprintf("configfile.DataLine(%q, %q).WithText(%q)", l.key, l.value, l.text)
	case Header:
		return fmt.Sprintf("configfile.HeaderLine(%q).WithText(%q)", l.name, l.text)
	default:
		return fmt.Sprintf("configfile.BlankLine(%q)", l.text)
	}
}

// Equal reports whether l and other are the same line, including raw text.
func (l Line) Equal(other Line) bool {
	return l == other
}

// Match reports whether l matches the given pattern. Lines of different
// kinds never match. Data lines match if their keys are equal and either
// one of them has no value or their values are equal. Header lines match if
// they name the same section. Blank lines match if their text is equal
// ignoring leading and trailing whitespace.
//
// Match is symmetric: l.Match(p) == p.Match(l).
func (l Line) Match(pattern Line) bool {
	if l.kind != pattern.kind {
		return false
	}
	switch l.kind {
	case Data:
		if l.key != pattern.key {
			return false
		}
		return !l.hasValue || !pattern.hasValue || l.value == pattern.value
	case Header:
		return l.name == pattern.name
	default:
		return strings.TrimSpace(l.text) == strings.TrimSpace(pattern.text)
	}
}
