// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import "iter"

// A Block is a contiguous run of lines following one appearance of a section
// header. A section's content may be spread across many blocks.
type Block struct {
	name   string
	header Line // zero unless the block was entered from a parsed header
	lines  []Line

	// emptied is set when Remove deletes the last line of the block.
	emptied bool
}

// Name returns the name of the section the block belongs to.
func (b *Block) Name() string { return b.name }

// Len returns the number of lines in the block, not counting its header.
func (b *Block) Len() int { return len(b.lines) }

// Emptied reports whether the block has no lines left because Remove deleted
// all of them. Such blocks are not written, header included. A block that had
// no lines to begin with is written as a bare header.
func (b *Block) Emptied() bool { return b.emptied && len(b.lines) == 0 }

// HeaderLine returns the header line that introduces the block. Blocks read
// from a file keep the header line's original text.
func (b *Block) HeaderLine() Line {
	if b.header.kind == Header {
		return b.header
	}
	return HeaderLine(b.name)
}

// Lines returns an iterator over the block's lines.
func (b *Block) Lines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, l := range b.lines {
			if !yield(l) {
				return
			}
		}
	}
}

// Append adds a line to the end of the block.
func (b *Block) Append(l Line) {
	b.lines = append(b.lines, l)
}

// FindLines returns an iterator over the lines in the block that match the
// pattern.
func (b *Block) FindLines(pattern Line) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, l := range b.lines {
			if l.Match(pattern) && !yield(l) {
				return
			}
		}
	}
}

// Contains reports whether any line in the block matches the pattern.
func (b *Block) Contains(pattern Line) bool {
	for range b.FindLines(pattern) {
		return true
	}
	return false
}

// Update replaces every line matching old with repl, keeping its position.
// If once is true, only the first matching line is replaced. Update returns
// the number of lines replaced.
func (b *Block) Update(old, repl Line, once bool) int {
	n := 0
	for i := range b.lines {
		if !b.lines[i].Match(old) {
			continue
		}
		b.lines[i] = repl
		n++
		if once {
			break
		}
	}
	return n
}

// Remove deletes every line matching the pattern and returns the number of
// lines deleted.
func (b *Block) Remove(pattern Line) int {
	kept := 0
	for _, l := range b.lines {
		if !l.Match(pattern) {
			b.lines[kept] = l
			kept++
		}
	}
	removed := len(b.lines) - kept
	for i := kept; i < len(b.lines); i++ {
		// Zero out for garbage collection.
		b.lines[i] = Line{}
	}
	b.lines = b.lines[:kept]
	if removed > 0 && kept == 0 {
		b.emptied = true
	}
	return removed
}
