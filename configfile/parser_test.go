// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package configfile

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Line
		wantErr bool
	}{
		{name: "Empty", text: "", want: BlankLine("")},
		{name: "Space", text: "  ", want: BlankLine("  ")},
		{name: "Comment", text: " # foo", want: BlankLine(" # foo")},
		{name: "CommentedData", text: "# foo: bar", want: BlankLine("# foo: bar")},
		{name: "VerticalTab", text: "\v", want: BlankLine("\v")},
		{name: "VerticalTabComment", text: " \v\t# foo", want: BlankLine(" \v\t# foo")},
		{
			name: "HeaderVerticalTab",
			text: "[foo]\v# bar",
			want: HeaderLine("foo").WithText("[foo]\v# bar"),
		},
		{
			name: "Data",
			text: "foo: bar",
			want: DataLine("foo", "bar"),
		},
		{
			name: "DataEquals",
			text: "  foo= bar",
			want: DataLine("foo", "bar").WithText("  foo= bar"),
		},
		{
			name: "DataWithComment",
			text: "foo: bar  # baz",
			want: DataLine("foo", "bar  # baz").WithText("foo: bar  # baz"),
		},
		{
			name: "DataFirstSeparator",
			text: "url = http://example.com:8080",
			want: DataLine("url", "http://example.com:8080").WithText("url = http://example.com:8080"),
		},
		{
			name: "DataEmptyValue",
			text: "foo =",
			want: DataLine("foo", "").WithText("foo ="),
		},
		{
			name: "DataSpacedKey",
			text: "foo and bar: baz",
			want: DataLine("foo and bar", "baz").WithText("foo and bar: baz"),
		},
		{name: "Header", text: "[foo]", want: HeaderLine("foo")},
		{
			name: "HeaderTrailingSpace",
			text: "[foo]   ",
			want: HeaderLine("foo").WithText("[foo]   "),
		},
		{
			name: "HeaderComment",
			text: "[foo]#bar",
			want: HeaderLine("foo").WithText("[foo]#bar"),
		},
		{
			name: "HeaderPunctuation",
			text: "[foo.bar_baz-2]",
			want: HeaderLine("foo.bar_baz-2"),
		},
		{
			// Not a valid header, but a valid property.
			name: "HeaderWithSeparator",
			text: "[foo:bar]",
			want: DataLine("[foo", "bar]").WithText("[foo:bar]"),
		},
		{name: "Invalid", text: " foo", wantErr: true},
		{name: "HeaderTrailingText", text: "[foo] bar", wantErr: true},
		{name: "HeaderSpaceInName", text: "[foo bar]", wantErr: true},
		{name: "EmptyHeader", text: "[]", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Parser{}.ParseLine(test.text, 3, "test.conf")
			if err != nil {
				if !test.wantErr {
					t.Fatal("ParseLine:", err)
				}
				var syntaxErr *SyntaxError
				if !errors.As(err, &syntaxErr) {
					t.Fatalf("ParseLine error = %v; want *SyntaxError", err)
				}
				want := &SyntaxError{Line: test.text, Rank: 3, NameHint: "test.conf"}
				if diff := cmp.Diff(want, syntaxErr); diff != "" {
					t.Errorf("error (-want +got):\n%s", diff)
				}
				return
			}
			if test.wantErr {
				t.Fatalf("ParseLine(%q) = %#v; want error", test.text, got)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("ParseLine(%q) (-want +got):\n%s", test.text, diff)
			}
			if got.Text() != test.text {
				t.Errorf("ParseLine(%q).Text() = %q", test.text, got.Text())
			}
		})
	}
}

func TestLex(t *testing.T) {
	input := []string{
		"  # Initial comment",
		"[foo]  # First section",
		"x = 42",
		"y: 13",
	}
	want := []Line{
		BlankLine("  # Initial comment"),
		HeaderLine("foo").WithText("[foo]  # First section"),
		DataLine("x", "42").WithText("x = 42"),
		DataLine("y", "13"),
	}
	seq := Parser{}.Lex(slices.Values(input), "")
	// The sequence can be consumed more than once.
	for i := 0; i < 2; i++ {
		var got []Line
		for l, err := range seq {
			if err != nil {
				t.Fatal(err)
			}
			got = append(got, l)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("pass %d (-want +got):\n%s", i, diff)
		}
	}
}

func TestLexStopsAtError(t *testing.T) {
	input := []string{"[foo]", "x: 1", "oops", "y: 2"}
	var got []Line
	var gotErr error
	for l, err := range (Parser{}).Lex(slices.Values(input), "app.conf") {
		if err != nil {
			gotErr = err
			continue
		}
		got = append(got, l)
	}
	if len(got) != 2 {
		t.Errorf("got %d lines before error; want 2", len(got))
	}
	var syntaxErr *SyntaxError
	if !errors.As(gotErr, &syntaxErr) {
		t.Fatalf("error = %v; want *SyntaxError", gotErr)
	}
	if syntaxErr.Rank != 2 || syntaxErr.Line != "oops" {
		t.Errorf("error = %+v; want rank 2 for line \"oops\"", syntaxErr)
	}
	if got, want := syntaxErr.Error(), `invalid line "oops" at app.conf:3`; got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
}
