// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	path := writeTestFile(t, "app.conf", "[foo]\nx: 13\nx: 42\n")
	f, err := ParseFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"13", "42"}, slices.Collect(f.Get("foo", "x"))); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestParseFileNameHint(t *testing.T) {
	path := writeTestFile(t, "bad.conf", "[foo]\nbork\n")
	_, err := ParseFile(path, nil)
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("ParseFile error = %v; want *SyntaxError", err)
	}
	if syntaxErr.NameHint != path {
		t.Errorf("NameHint = %q; want %q", syntaxErr.NameHint, path)
	}
}

func TestParseFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.conf")

	_, err := ParseFile(path, nil)
	var readErr *ReadingError
	if !errors.As(err, &readErr) {
		t.Fatalf("ParseFile error = %v; want *ReadingError", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ParseFile error = %v; want to wrap fs.ErrNotExist", err)
	}

	f, err := ParseFile(path, &FileOptions{SkipUnreadable: true})
	if err != nil {
		t.Fatal("ParseFile with SkipUnreadable:", err)
	}
	if len(f.Sections()) != 0 || len(f.blocks) != 0 {
		t.Error("skipped file is not empty")
	}
}

func TestParseFileAppends(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "1.conf")
	p2 := filepath.Join(dir, "2.conf")
	if err := os.WriteFile(p1, []byte("# Blah\n[foo]\nx: 13\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p2, []byte("# Bar\n[bar]\nx: 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := New()
	for _, p := range []string{p1, p2} {
		if err := f.ParseFile(p, nil); err != nil {
			t.Fatal(err)
		}
	}
	if !f.Has("foo") || !f.Has("bar") {
		t.Errorf("Sections() = %q; want foo and bar", f.Sections())
	}
	want := "# Blah\n# Bar\n[foo]\nx: 13\n[bar]\nx: 42\n"
	if diff := cmp.Diff(want, f.String()); diff != "" {
		t.Errorf("file (-want +got):\n%s", diff)
	}
}

func TestWriteFile(t *testing.T) {
	const source = "# settings\n[foo]  # main\nx = 13\n\n[bar]\ny: 1\n"
	path := writeTestFile(t, "app.conf", source)
	f, err := ParseFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, f); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(source, string(got)); diff != "" {
		t.Errorf("unmodified file (-want +got):\n%s", diff)
	}

	f.AddOrUpdate("foo", "x", "42")
	f.Add("baz", "z", "3")
	if err := WriteFile(path, f); err != nil {
		t.Fatal(err)
	}
	got, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "# settings\n[foo]  # main\nx: 42\n\n[bar]\ny: 1\n[baz]\nz: 3\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("modified file (-want +got):\n%s", diff)
	}
}

func TestWriteFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "app.conf")
	err := WriteFile(path, New())
	var writeErr *WritingError
	if !errors.As(err, &writeErr) {
		t.Fatalf("WriteFile error = %v; want *WritingError", err)
	}
	if writeErr.Path != path {
		t.Errorf("Path = %q; want %q", writeErr.Path, path)
	}
}
