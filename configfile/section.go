// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import "iter"

// A Section is the set of blocks that share a section name, wherever they
// appear in the file.
type Section struct {
	name     string
	blocks   []*Block
	overflow *Block
}

// NewSection returns an empty section with the given name.
func NewSection(name string) *Section {
	return &Section{name: name}
}

// Name returns the section's name.
func (s *Section) Name() string { return s.name }

// Blocks returns an iterator over the section's blocks in file order. The
// overflow block, if any, is included.
func (s *Section) Blocks() iter.Seq[*Block] {
	return func(yield func(*Block) bool) {
		for _, b := range s.blocks {
			if !yield(b) {
				return
			}
		}
	}
}

// Overflow returns the block created by Insert for a section without any
// blocks, or nil if there is none. The overflow block is written at the end
// of the file.
func (s *Section) Overflow() *Block { return s.overflow }

// NewBlock appends a new empty block to the section and returns it.
func (s *Section) NewBlock() *Block {
	b := &Block{name: s.name}
	s.blocks = append(s.blocks, b)
	return b
}

// FindBlock returns the first block containing a line that matches the
// pattern or nil if there is no such block.
func (s *Section) FindBlock(pattern Line) *Block {
	for _, b := range s.blocks {
		if b.Contains(pattern) {
			return b
		}
	}
	return nil
}

// FindLines returns an iterator over all lines matching the pattern, in block
// order.
func (s *Section) FindLines(pattern Line) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, b := range s.blocks {
			for l := range b.FindLines(pattern) {
				if !yield(l) {
					return
				}
			}
		}
	}
}

// Insert adds a line to the section and returns the block it was added to.
// The line is appended to the first block that already contains a matching
// line, so that similar lines stay together. Otherwise, it is appended to the
// last block. If the section has no blocks, Insert creates an overflow block.
func (s *Section) Insert(l Line) *Block {
	b := s.FindBlock(l)
	if b == nil {
		if len(s.blocks) > 0 {
			b = s.blocks[len(s.blocks)-1]
		} else {
			b = s.NewBlock()
			s.overflow = b
		}
	}
	b.Append(l)
	return b
}

// Update replaces every line matching old with repl, scanning blocks in order.
// If once is true, Update stops after the first replacement. Update returns
// the number of lines replaced.
func (s *Section) Update(old, repl Line, once bool) int {
	n := 0
	for _, b := range s.blocks {
		n += b.Update(old, repl, once)
		if once && n > 0 {
			break
		}
	}
	return n
}

// Remove deletes every line matching the pattern from every block and returns
// the number of lines deleted. Emptied blocks are kept.
func (s *Section) Remove(pattern Line) int {
	n := 0
	for _, b := range s.blocks {
		n += b.Remove(pattern)
	}
	return n
}
