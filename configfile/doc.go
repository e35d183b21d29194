// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package configfile provides a structure-preserving editor for INI-like
configuration files.

This package is specifically designed for read-modify-write scenarios: a
parsed File keeps every line of its input, so that writing it back out after
a handful of edits changes only the edited lines. Comments, blank lines,
formatting and the order of entries are preserved exactly.

Syntax

A configuration file is line-oriented text. Each line is one of:

	[section]          # a section header, optionally followed by a comment
	key: value         # a property; '=' may be used instead of ':'
	# comment          # a comment or whitespace-only line

Section names are made of letters, digits, dots, underscores and hyphens.
Whitespace around property keys and values is ignored. A '#' after the
separator is part of the value: inline comments are only recognized on
section headers. Any other line is a syntax error.

Repeated sections

The same section header may appear several times in a file. Each appearance
starts a new Block; a Section gathers all blocks sharing its name. Lookups,
updates and removals span all of a section's blocks, while serialization
replays each block where it originally appeared.

New properties are placed next to existing properties with the same key and
value when possible, otherwise at the end of the section's last block. A
property added to a section that does not appear in the file at all is
written in a new section at the end of the file.

Matching

Most operations address lines by matching rather than equality. A pattern
built with KeyPattern matches every property with that key, whatever its
value; a pattern built with DataLine matches only properties with that key
and value. See Line.Match for the exact rules.
*/
package configfile
