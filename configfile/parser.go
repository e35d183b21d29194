// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"iter"
	"regexp"
	"strings"
)

// A Lexer turns a sequence of raw text lines into Lines. Callers may supply
// their own Lexer through ParseOptions to support format variants.
//
// Lex must yield exactly one (Line, nil) pair per input line, in order, or
// stop after yielding a non-nil error. The nameHint is used in error messages.
type Lexer interface {
	Lex(lines iter.Seq[string], nameHint string) iter.Seq2[Line, error]
}

// Parser is the default Lexer.
type Parser struct{}

var (
	headerPattern = regexp.MustCompile(`^\[([\w._-]+)\][\s\v]*(#.*)?$`)
	blankPattern  = regexp.MustCompile(`^[\s\v]*(#.*)?$`)
	dataPattern   = regexp.MustCompile(`^([^:=]+)[:=](.*)$`)
)

// Lex classifies each line with ParseLine. The returned sequence stops at the
// first invalid line. It can be ranged over again if lines can.
func (p Parser) Lex(lines iter.Seq[string], nameHint string) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		rank := 0
		for text := range lines {
			line, err := p.ParseLine(text, rank, nameHint)
			if err != nil {
				yield(Line{}, err)
				return
			}
			if !yield(line, nil) {
				return
			}
			rank++
		}
	}
}

// ParseLine classifies a single line of text, which must not include its line
// terminator. Header syntax is tried first, then blank and comment lines,
// then properties. If none match, ParseLine returns a *SyntaxError.
func (Parser) ParseLine(text string, rank int, nameHint string) (Line, error) {
	if m := headerPattern.FindStringSubmatch(text); m != nil {
		return HeaderLine(m[1]).WithText(text), nil
	}
	if blankPattern.MatchString(text) {
		return BlankLine(text), nil
	}
	if m := dataPattern.FindStringSubmatch(text); m != nil {
		key := strings.TrimSpace(m[1])
		value := strings.TrimSpace(m[2])
		return DataLine(key, value).WithText(text), nil
	}
	return Line{}, &SyntaxError{
		Line:     text,
		Rank:     rank,
		NameHint: nameHint,
	}
}
