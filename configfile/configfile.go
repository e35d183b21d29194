// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"math"
	"slices"
	"strings"
)

// A File is an editable configuration file. The zero value is an empty file.
//
// A File is not safe for concurrent use. The iterators returned by its methods
// read the File's current state each time they are ranged over; modifying the
// File while ranging over one of them has unspecified results.
type File struct {
	sections map[string]*Section
	order    []string // section names in creation order
	blocks   []*Block // blocks entered from headers, in file order
	header   []Line   // lines before the first section header
	current  *Block
}

// ParseOptions holds optional parameters for Parse.
type ParseOptions struct {
	// NameHint names the source in error messages, typically a file path.
	NameHint string

	// Lexer classifies the lines of the source. If nil, Parser is used.
	Lexer Lexer
}

func (opts *ParseOptions) nameHint() string {
	if opts == nil {
		return ""
	}
	return opts.NameHint
}

func (opts *ParseOptions) lexer() Lexer {
	if opts == nil || opts.Lexer == nil {
		return Parser{}
	}
	return opts.Lexer
}

// New returns an empty file.
func New() *File {
	return new(File)
}

// Parse parses a configuration file. Nil options are treated identically as
// passing the zero value.
func Parse(r io.Reader, opts *ParseOptions) (*File, error) {
	f := new(File)
	if err := f.Parse(r, opts); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseLines parses a configuration file from a list of lines without their
// line terminators.
func ParseLines(lines []string, opts *ParseOptions) (*File, error) {
	f := new(File)
	if err := f.ParseLines(lines, opts); err != nil {
		return nil, err
	}
	return f, nil
}

// Parse reads all of r and appends its content to f. Lines that appear before
// the first section header in r are added to f's header if f has no current
// block. On error, f is left unmodified.
func (f *File) Parse(r io.Reader, opts *ParseOptions) error {
	var lines []string
	s := bufio.NewScanner(r)
	s.Buffer(nil, math.MaxInt)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		if hint := opts.nameHint(); hint != "" {
			return fmt.Errorf("parse config file %s: %w", hint, err)
		}
		return fmt.Errorf("parse config file: %w", err)
	}
	return f.ParseLines(lines, opts)
}

// ParseLines appends the content of the given lines to f, as Parse does.
func (f *File) ParseLines(lines []string, opts *ParseOptions) error {
	// Classify everything first so that a syntax error leaves f untouched.
	var parsed []Line
	for l, err := range opts.lexer().Lex(slices.Values(lines), opts.nameHint()) {
		if err != nil {
			return err
		}
		parsed = append(parsed, l)
	}
	f.current = nil
	for _, l := range parsed {
		f.HandleLine(l)
	}
	return nil
}

func (f *File) section(name string, create bool) *Section {
	if s := f.sections[name]; s != nil || !create {
		return s
	}
	if f.sections == nil {
		f.sections = make(map[string]*Section)
	}
	s := NewSection(name)
	f.sections[name] = s
	f.order = append(f.order, name)
	return s
}

// Has reports whether the file has a section with the given name. Sections
// are created by headers and by adding properties.
func (f *File) Has(section string) bool {
	if f == nil {
		return false
	}
	_, ok := f.sections[section]
	return ok
}

// Sections returns the names of the file's sections in the order they were
// first encountered.
func (f *File) Sections() []string {
	if f == nil {
		return nil
	}
	return slices.Clone(f.order)
}

// Section returns the named section or nil if it does not exist.
func (f *File) Section(name string) *Section {
	if f == nil {
		return nil
	}
	return f.sections[name]
}

// GetLine returns an iterator over the lines in the section that match the
// pattern. The iterator is empty if the section does not exist.
func (f *File) GetLine(section string, pattern Line) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		s := f.Section(section)
		if s == nil {
			return
		}
		for l := range s.FindLines(pattern) {
			if !yield(l) {
				return
			}
		}
	}
}

// IterLines returns an iterator over all the lines of a section, excluding
// header lines.
func (f *File) IterLines(section string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		s := f.Section(section)
		if s == nil {
			return
		}
		for b := range s.Blocks() {
			for l := range b.Lines() {
				if !yield(l) {
					return
				}
			}
		}
	}
}

// EnterBlock starts a new block for the named section and makes it the
// current block. Subsequent calls to InsertLine add lines to it.
func (f *File) EnterBlock(name string) *Block {
	b := f.section(name, true).NewBlock()
	f.blocks = append(f.blocks, b)
	f.current = b
	return b
}

// EnterHeader is like EnterBlock, but keeps the given header line so that it
// is written back verbatim.
func (f *File) EnterHeader(header Line) *Block {
	b := f.EnterBlock(header.name)
	b.header = header
	return b
}

// InsertLine adds a line to the current block or, if no block has been
// entered yet, to the lines preceding the first section.
func (f *File) InsertLine(l Line) {
	if f.current != nil {
		f.current.Append(l)
		return
	}
	f.header = append(f.header, l)
}

// HandleLine processes one line read from a file: header lines enter a new
// block and other lines are inserted in the current block.
func (f *File) HandleLine(l Line) {
	if l.kind == Header {
		f.EnterHeader(l)
		return
	}
	f.InsertLine(l)
}

// AddLine inserts a line in the named section, creating the section if
// needed, and returns the block the line was added to.
func (f *File) AddLine(section string, l Line) *Block {
	return f.section(section, true).Insert(l)
}

// UpdateLine replaces every line of the section matching old with repl. If once
// is true, only the first matching line is replaced. UpdateLine returns the
// number of lines replaced.
func (f *File) UpdateLine(section string, old, repl Line, once bool) int {
	s := f.Section(section)
	if s == nil {
		return 0
	}
	return s.Update(old, repl, once)
}

// RemoveLine deletes every line of the section matching the pattern and
// returns the number of lines deleted.
func (f *File) RemoveLine(section string, pattern Line) int {
	s := f.Section(section)
	if s == nil {
		return 0
	}
	return s.Remove(pattern)
}

// Items returns an iterator over the key/value pairs of a section in file
// order.
func (f *File) Items(section string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for l := range f.IterLines(section) {
			if l.kind == Data && !yield(l.key, l.value) {
				return
			}
		}
	}
}

// Get returns an iterator over the values of every property with the given
// key in the section, in file order.
func (f *File) Get(section, key string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for l := range f.GetLine(section, KeyPattern(key)) {
			if !yield(l.value) {
				return
			}
		}
	}
}

// GetOne returns the first value of the given key in the section. If there is
// none, GetOne returns a *NotFoundError.
func (f *File) GetOne(section, key string) (string, error) {
	for v := range f.Get(section, key) {
		return v, nil
	}
	return "", &NotFoundError{Section: section, Key: key}
}

// Add adds a property to the section and returns the block it was added to.
func (f *File) Add(section, key, value string) *Block {
	return f.AddLine(section, DataLine(key, value))
}

// AddOrUpdate sets the value of every property with the given key in the
// section. If there are none, it adds the property instead. AddOrUpdate
// returns the number of properties updated, which is zero if it added one.
func (f *File) AddOrUpdate(section, key, value string) int {
	n := f.Update(section, key, value, nil)
	if n == 0 {
		f.Add(section, key, value)
	}
	return n
}

// UpdateOptions holds optional parameters for File.Update.
type UpdateOptions struct {
	// If HasOldValue is true, only properties whose value is OldValue are
	// updated.
	OldValue    string
	HasOldValue bool

	// If Once is true, only the first matching property is updated.
	Once bool
}

// Update sets the value of the properties with the given key in the section
// and returns the number of properties updated. Nil options are treated
// identically as passing the zero value.
func (f *File) Update(section, key, newValue string, opts *UpdateOptions) int {
	old := KeyPattern(key)
	once := false
	if opts != nil {
		if opts.HasOldValue {
			old = DataLine(key, opts.OldValue)
		}
		once = opts.Once
	}
	return f.UpdateLine(section, old, DataLine(key, newValue), once)
}

// Remove deletes every property with the given key in the section and returns
// the number of properties deleted.
func (f *File) Remove(section, key string) int {
	return f.RemoveLine(section, KeyPattern(key))
}

// RemoveValue deletes every property with the given key and value in the
// section and returns the number of properties deleted.
func (f *File) RemoveValue(section, key, value string) int {
	return f.RemoveLine(section, DataLine(key, value))
}

// Lines returns an iterator over the lines of the file, as they would be
// written. Lines before the first section come first, then each block
// preceded by its header, in file order. Blocks emptied by removals are
// skipped. Sections that were only created by adding properties come last.
func (f *File) Lines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		if f == nil {
			return
		}
		for _, l := range f.header {
			if !yield(l) {
				return
			}
		}
		for _, b := range f.blocks {
			if !yieldBlock(b, yield) {
				return
			}
		}
		for _, name := range f.order {
			if b := f.sections[name].overflow; b != nil && !yieldBlock(b, yield) {
				return
			}
		}
	}
}

func yieldBlock(b *Block, yield func(Line) bool) bool {
	if b.Emptied() {
		return true
	}
	if !yield(b.HeaderLine()) {
		return false
	}
	for l := range b.Lines() {
		if !yield(l) {
			return false
		}
	}
	return true
}

// WriteTo writes the file to w, one line per Line, each terminated by a
// newline.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for l := range f.Lines() {
		nn, err := bw.WriteString(l.text)
		n += int64(nn)
		if err != nil {
			return n, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// MarshalText serializes the file, preserving the text of every line that was
// not modified.
func (f *File) MarshalText() ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	buf := new(bytes.Buffer)
	if _, err := f.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalText parses the data with default options, replacing the content
// of f.
func (f *File) UnmarshalText(data []byte) error {
	parsed, err := Parse(bytes.NewReader(data), nil)
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

// String returns the serialized file.
func (f *File) String() string {
	sb := new(strings.Builder)
	f.WriteTo(sb) // strings.Builder never fails.
	return sb.String()
}
