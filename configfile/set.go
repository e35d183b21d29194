// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"errors"
	"fmt"
	"io/fs"
)

// FileSet is a list of files to obtain configuration from in descending order
// of precedence. Nil elements are treated as empty files.
type FileSet []*File

// ParseFiles parses the files at the given paths and returns a FileSet.
// If the returned error is nil, the returned file set's length will be the same
// as the number of arguments. ParseFiles will stop on the first error, but
// ignores missing file errors, instead filling the corresponding element of the
// set with a nil *File.
func ParseFiles(opts *FileOptions, paths ...string) (FileSet, error) {
	fset := make(FileSet, 0, len(paths))
	for _, p := range paths {
		f, err := ParseFile(p, opts)
		if errors.Is(err, fs.ErrNotExist) {
			fset = append(fset, nil)
			continue
		}
		if err != nil {
			return fset, fmt.Errorf("parse config files: %w", err)
		}
		fset = append(fset, f)
	}
	return fset, nil
}

// Get returns the first value associated with the given key in the given
// section of the first file that has one.
func (fset FileSet) Get(section, key string) (string, bool) {
	for _, f := range fset {
		if v, err := f.GetOne(section, key); err == nil {
			return v, true
		}
	}
	return "", false
}

// Find returns all the values associated with the given key in the given
// section, starting with the file with the lowest precedence.
func (fset FileSet) Find(section, key string) []string {
	var values []string
	for i := len(fset) - 1; i >= 0; i-- {
		for v := range fset[i].Get(section, key) {
			values = append(values, v)
		}
	}
	return values
}

// Has reports whether any file in the set has the named section.
func (fset FileSet) Has(section string) bool {
	for _, f := range fset {
		if f.Has(section) {
			return true
		}
	}
	return false
}

// Sections returns the names of the sections of every file in the set,
// without duplicates, in precedence order.
func (fset FileSet) Sections() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, f := range fset {
		for _, name := range f.Sections() {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// Items returns the properties of the named section merged across the set.
// A key set in a file hides the same key in files of lower precedence.
func (fset FileSet) Items(section string) map[string][]string {
	merged := make(map[string][]string)
	for _, f := range fset {
		own := f.MultiSection(section).Map()
		for k, values := range own {
			if _, hidden := merged[k]; !hidden {
				merged[k] = values
			}
		}
	}
	return merged
}

// Set sets the property on the first file and removes it from all subsequent
// files, so that the new value is the one in effect. Set will panic if
// len(fset) == 0. If fset[0] == nil, Set allocates a new File. Any other nil
// files in the set are ignored.
func (fset FileSet) Set(section, key, value string) {
	if fset[0] == nil {
		fset[0] = new(File)
	}
	fset[0].AddOrUpdate(section, key, value)
	fset[1:].Delete(section, key)
}

// Delete removes every property with the given key in the named section of
// every file and returns the number of properties removed. Nil elements of the
// set are ignored.
func (fset FileSet) Delete(section, key string) int {
	n := 0
	for _, f := range fset {
		if f != nil {
			n += f.Remove(section, key)
		}
	}
	return n
}
