// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNilFileSet(t *testing.T) {
	fset := (FileSet)(nil)
	if got, ok := fset.Get("foo", "bar"); ok {
		t.Errorf("Get(...) = %q, true; want _, false", got)
	}
	if got := fset.Find("foo", "bar"); len(got) > 0 {
		t.Errorf("Find(...) = %q; want empty", got)
	}
	if got := fset.Sections(); len(got) > 0 {
		t.Errorf("Sections() = %q; want empty", got)
	}
	if fset.Has("foo") {
		t.Error("Has(\"foo\") = true; want false")
	}
	if got := fset.Items("foo"); len(got) > 0 {
		t.Errorf("Items(...) = %q; want empty", got)
	}
}

func parseSet(t *testing.T, sources []string) FileSet {
	t.Helper()
	var fset FileSet
	for _, src := range sources {
		var f *File
		if src != "" {
			var err error
			f, err = Parse(strings.NewReader(src), nil)
			if err != nil {
				t.Fatal(err)
			}
		}
		fset = append(fset, f)
	}
	return fset
}

func TestFileSetAccess(t *testing.T) {
	tests := []struct {
		name     string
		sources  []string
		section  string
		key      string
		wantGet  string
		wantOK   bool
		wantFind []string
	}{
		{
			name:     "ExistsInFirst",
			sources:  []string{"[core]\nFOO: bar\n", "[core]\nBAZ: quux\n"},
			section:  "core",
			key:      "FOO",
			wantGet:  "bar",
			wantOK:   true,
			wantFind: []string{"bar"},
		},
		{
			name:     "ExistsInSecond",
			sources:  []string{"[core]\nFOO: bar\n", "[core]\nBAZ: quux\n"},
			section:  "core",
			key:      "BAZ",
			wantGet:  "quux",
			wantOK:   true,
			wantFind: []string{"quux"},
		},
		{
			name:     "DoesNotExist",
			sources:  []string{"[core]\nFOO: bar\n", "[core]\nBAZ: quux\n"},
			section:  "core",
			key:      "bork",
			wantFind: []string{},
		},
		{
			name:     "MultipleValues",
			sources:  []string{"[core]\nFOO: bar\n", "[core]\nFOO: baz\n"},
			section:  "core",
			key:      "FOO",
			wantGet:  "bar",
			wantOK:   true,
			wantFind: []string{"baz", "bar"},
		},
		{
			name: "RepeatedSection",
			sources: []string{
				"[foo]\n" +
					"bar=baz\n" +
					"[xyzzy]\n" +
					"bork=bork\n" +
					"[foo]\n" +
					"bar=else\n",
			},
			section:  "foo",
			key:      "bar",
			wantGet:  "baz",
			wantOK:   true,
			wantFind: []string{"baz", "else"},
		},
		{
			name:     "NilFile",
			sources:  []string{"", "[core]\nFOO: bar\n"},
			section:  "core",
			key:      "FOO",
			wantGet:  "bar",
			wantOK:   true,
			wantFind: []string{"bar"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fset := parseSet(t, test.sources)
			got, ok := fset.Get(test.section, test.key)
			if got != test.wantGet || ok != test.wantOK {
				t.Errorf("fset.Get(%q, %q) = %q, %t; want %q, %t", test.section, test.key, got, ok, test.wantGet, test.wantOK)
			}
			find := fset.Find(test.section, test.key)
			if diff := cmp.Diff(test.wantFind, find, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("fset.Find(%q, %q) (-want +got):\n%s", test.section, test.key, diff)
			}
		})
	}
}

func TestFileSetItems(t *testing.T) {
	fset := parseSet(t, []string{
		"[core]\nname: user\n",
		"[core]\nname: system\nname: other\nlevel: 3\n[extra]\nz: 1\n",
	})
	want := map[string][]string{
		"name":  {"user"},
		"level": {"3"},
	}
	if diff := cmp.Diff(want, fset.Items("core")); diff != "" {
		t.Errorf("Items(\"core\") (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"core", "extra"}, fset.Sections()); diff != "" {
		t.Errorf("Sections() (-want +got):\n%s", diff)
	}
	if !fset.Has("extra") || fset.Has("missing") {
		t.Error("Has reports wrong sections")
	}
}

func TestFileSetSet(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		want    []string
	}{
		{
			name:    "AddToEmpty",
			sources: []string{""},
			want:    []string{"[core]\nfoo: quux\n"},
		},
		{
			name:    "Overwrite",
			sources: []string{"[core]\nfoo = bar\n"},
			want:    []string{"[core]\nfoo: quux\n"},
		},
		{
			name:    "DeleteInLaterFiles",
			sources: []string{"", "[core]\n# Comment 1\nfoo=bar\n# Comment 2\nfoo=baz\n"},
			want:    []string{"[core]\nfoo: quux\n", "[core]\n# Comment 1\n# Comment 2\n"},
		},
		{
			name:    "OtherKeysKept",
			sources: []string{"", "[core]\nbaz=1\nfoo=bar\n"},
			want:    []string{"[core]\nfoo: quux\n", "[core]\nbaz=1\n"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fset := parseSet(t, test.sources)
			fset.Set("core", "foo", "quux")

			got := make([]string, len(fset))
			for i, f := range fset {
				got[i] = f.String()
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("files (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	user := filepath.Join(dir, "user.conf")
	if err := os.WriteFile(user, []byte("[core]\nname: user\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.conf")

	fset, err := ParseFiles(nil, user, missing)
	if err != nil {
		t.Fatal(err)
	}
	if len(fset) != 2 || fset[1] != nil {
		t.Fatalf("ParseFiles(...) = %v; want [file, nil]", fset)
	}
	if got, _ := fset.Get("core", "name"); got != "user" {
		t.Errorf("Get(\"core\", \"name\") = %q; want \"user\"", got)
	}

	bad := filepath.Join(dir, "bad.conf")
	if err := os.WriteFile(bad, []byte("bork\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseFiles(nil, user, bad); err == nil {
		t.Error("ParseFiles with invalid file did not return error")
	}
}
