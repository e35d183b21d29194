// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"iter"
	"slices"
)

// A View exposes one section of a File as a map. Views hold no state of their
// own: every method reads or modifies the underlying File.
type View interface {
	// Name returns the name of the section.
	Name() string
	// Has reports whether the section has at least one property with the key.
	Has(key string) bool
	// Delete removes every property with the key. It returns a *NotFoundError
	// if there were none.
	Delete(key string) error
	// Keys returns the distinct keys of the section in file order.
	Keys() []string
	// Len returns the number of distinct keys in the section.
	Len() int
}

var (
	_ View = SingleView{}
	_ View = MultiView{}
)

// SingleView is a View where each key has a single value. Setting a key
// updates all of its properties in place.
type SingleView struct {
	file *File
	name string
}

// SingleSection returns a single-valued view of the named section.
func (f *File) SingleSection(name string) SingleView {
	return SingleView{file: f, name: name}
}

// Name returns the name of the section.
func (v SingleView) Name() string { return v.name }

// Get returns the first value for the key. It returns a *NotFoundError if the
// key is not set.
func (v SingleView) Get(key string) (string, error) {
	return v.file.GetOne(v.name, key)
}

// Lookup returns the first value for the key and whether it was found.
func (v SingleView) Lookup(key string) (string, bool) {
	val, err := v.Get(key)
	return val, err == nil
}

// Has reports whether the key is set.
func (v SingleView) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// Set updates every property with the key to the given value, or adds a
// property if there were none.
func (v SingleView) Set(key, value string) {
	v.file.AddOrUpdate(v.name, key, value)
}

// Add is the same as Set.
func (v SingleView) Add(key, value string) {
	v.Set(key, value)
}

// Delete removes every property with the key.
func (v SingleView) Delete(key string) error {
	if v.file.Remove(v.name, key) == 0 {
		return &NotFoundError{Section: v.name, Key: key}
	}
	return nil
}

// Keys returns the distinct keys of the section in file order.
func (v SingleView) Keys() []string {
	return distinctKeys(v.file.Items(v.name))
}

// Len returns the number of distinct keys.
func (v SingleView) Len() int {
	return len(v.Keys())
}

// Map returns a copy of the section's properties. When a key appears more than
// once, the last value wins.
func (v SingleView) Map() map[string]string {
	m := make(map[string]string)
	for k, val := range v.file.Items(v.name) {
		m[k] = val
	}
	return m
}

// MultiView is a View where each key may have several values.
type MultiView struct {
	file *File
	name string
}

// MultiSection returns a multi-valued view of the named section.
func (f *File) MultiSection(name string) MultiView {
	return MultiView{file: f, name: name}
}

// Name returns the name of the section.
func (v MultiView) Name() string { return v.name }

// Get returns all values for the key in file order. It returns a
// *NotFoundError if the key is not set.
func (v MultiView) Get(key string) ([]string, error) {
	values := slices.Collect(v.file.Get(v.name, key))
	if len(values) == 0 {
		return nil, &NotFoundError{Section: v.name, Key: key}
	}
	return values, nil
}

// Has reports whether the key has at least one value.
func (v MultiView) Has(key string) bool {
	for range v.file.Get(v.name, key) {
		return true
	}
	return false
}

// Set makes values the set of values for the key: current values that are
// not in values are removed and values that are not yet present are added.
// Values that are already present are left in place.
func (v MultiView) Set(key string, values []string) {
	old := make(map[string]struct{})
	for val := range v.file.Get(v.name, key) {
		old[val] = struct{}{}
	}
	want := make(map[string]struct{}, len(values))
	for _, val := range values {
		want[val] = struct{}{}
	}
	for val := range old {
		if _, keep := want[val]; !keep {
			v.file.RemoveValue(v.name, key, val)
		}
	}
	for _, val := range values {
		if _, present := old[val]; present {
			continue
		}
		// Mark as present so that duplicates in values are only added once.
		old[val] = struct{}{}
		v.file.Add(v.name, key, val)
	}
}

// Add appends a value for the key without touching its other values.
func (v MultiView) Add(key, value string) {
	v.file.Add(v.name, key, value)
}

// Delete removes every value of the key.
func (v MultiView) Delete(key string) error {
	if v.file.Remove(v.name, key) == 0 {
		return &NotFoundError{Section: v.name, Key: key}
	}
	return nil
}

// Keys returns the distinct keys of the section in file order.
func (v MultiView) Keys() []string {
	return distinctKeys(v.file.Items(v.name))
}

// Len returns the number of distinct keys.
func (v MultiView) Len() int {
	return len(v.Keys())
}

// Map returns a copy of the section's properties.
func (v MultiView) Map() map[string][]string {
	m := make(map[string][]string)
	for k, val := range v.file.Items(v.name) {
		m[k] = append(m[k], val)
	}
	return m
}

func distinctKeys(items iter.Seq2[string, string]) []string {
	var keys []string
	seen := make(map[string]struct{})
	for k := range items {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}
