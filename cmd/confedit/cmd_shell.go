// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/yourbase/confutil/configfile"
	"zombiezen.com/go/log"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Edit the file interactively",
		Long: `Start an interactive session on the configuration file.

Edits are kept in memory until "save". Type "help" for the list of commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := a.load(ctx)
			if err != nil {
				return err
			}

			state := liner.NewLiner()
			defer state.Close()
			state.SetCtrlCAborts(true)
			sh := &shell{app: a, in: state, out: cmd.OutOrStdout(), f: f}
			state.SetCompleter(sh.complete)
			if a.historyPath != "" {
				if hf, err := os.Open(a.historyPath); err == nil {
					state.ReadHistory(hf)
					hf.Close()
				}
			}

			err = sh.run(ctx)

			if a.historyPath != "" {
				if hf, err := os.Create(a.historyPath); err == nil {
					state.WriteHistory(hf)
					hf.Close()
				}
			}
			return err
		},
	}
}

// A lineReader reads commands typed by the user. *liner.State implements it.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type shell struct {
	app   *app
	in    lineReader
	out   io.Writer
	f     *configfile.File
	dirty bool
}

var shellVerbs = []string{"add", "exit", "get", "help", "items", "quit", "rm", "save", "sections", "set", "show", "update"}

func (sh *shell) run(ctx context.Context) error {
	fmt.Fprintf(sh.out, "Editing %s. Type 'help' for commands.\n", sh.app.settings.file)
	for {
		line, err := sh.in.Prompt("confedit> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(sh.out)
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		sh.in.AppendHistory(strings.TrimSpace(line))

		switch fields[0] {
		case "quit", "exit":
			sh.discard(ctx)
			return nil
		case "help", "?":
			sh.printHelp()
		case "show":
			if _, err := sh.f.WriteTo(sh.out); err != nil {
				return err
			}
		case "save":
			if err := sh.app.save(ctx, sh.f); err != nil {
				fmt.Fprintln(sh.out, "error:", err)
				continue
			}
			sh.dirty = false
			fmt.Fprintln(sh.out, "Saved", sh.app.settings.file)
		default:
			o, err := parseShellOp(fields)
			if err != nil {
				fmt.Fprintln(sh.out, "error:", err)
				continue
			}
			changed, err := o.run(sh.f, sh.out)
			if err != nil {
				fmt.Fprintln(sh.out, "error:", err)
				continue
			}
			sh.dirty = sh.dirty || changed
		}
	}
	sh.discard(ctx)
	return nil
}

func (sh *shell) discard(ctx context.Context) {
	if sh.dirty {
		log.Warnf(ctx, "Discarding unsaved changes to %s", sh.app.settings.file)
	}
}

// parseShellOp builds an op from a command line split into fields. Values are
// the remaining fields joined by single spaces.
func parseShellOp(fields []string) (*op, error) {
	verb, args := fields[0], fields[1:]
	o := &op{Op: verb}
	if verb == "get" && len(args) > 0 && (args[0] == "-a" || args[0] == "--all") {
		o.All = true
		args = args[1:]
	}
	for verb == "update" && len(args) > 0 && strings.HasPrefix(args[0], "--") {
		switch args[0] {
		case "--once":
			o.Once = true
			args = args[1:]
		case "--old":
			if len(args) < 2 {
				return nil, errors.New("--old needs a value")
			}
			old := args[1]
			o.Old = &old
			args = args[2:]
		default:
			return nil, fmt.Errorf("unknown option %q", args[0])
		}
	}
	var want string
	switch verb {
	case "sections":
		if len(args) != 0 {
			return nil, errors.New("usage: sections")
		}
		return o, nil
	case "items":
		if len(args) != 1 {
			return nil, errors.New("usage: items SECTION")
		}
		o.Section = args[0]
		return o, nil
	case "get":
		want = "get [-a] SECTION KEY"
		if len(args) != 2 {
			return nil, errors.New("usage: " + want)
		}
	case "rm":
		want = "rm SECTION KEY [VALUE]"
		if len(args) < 2 {
			return nil, errors.New("usage: " + want)
		}
	case "update":
		want = "update [--old V] [--once] SECTION KEY VALUE"
		if len(args) < 3 {
			return nil, errors.New("usage: " + want)
		}
	case "set", "add":
		want = verb + " SECTION KEY VALUE"
		if len(args) < 3 {
			return nil, errors.New("usage: " + want)
		}
	default:
		return nil, fmt.Errorf("unknown command %q (type 'help' for commands)", verb)
	}
	o.Section, o.Key = args[0], args[1]
	if len(args) > 2 {
		v := strings.Join(args[2:], " ")
		o.Value = &v
	}
	return o, nil
}

func (sh *shell) printHelp() {
	fmt.Fprint(sh.out, `Commands:
  get [-a] SECTION KEY        print the first (or every) value
  items SECTION               print the properties of a section
  sections                    print the section names
  set SECTION KEY VALUE       replace every value, or add the property
  add SECTION KEY VALUE       add a value
  update [--old V] [--once] SECTION KEY VALUE
                              replace existing values, or only those equal
                              to V, or only the first one
  rm SECTION KEY [VALUE]      remove a property or one of its values
  show                        print the file as it would be saved
  save                        write the file
  quit                        leave, discarding unsaved changes
`)
}

// complete suggests verbs for the first word and section names for the
// second.
func (sh *shell) complete(line string) []string {
	fields := strings.Fields(line)
	trailingSpace := strings.HasSuffix(line, " ")
	switch {
	case len(fields) == 0 || len(fields) == 1 && !trailingSpace:
		prefix := ""
		if len(fields) == 1 {
			prefix = fields[0]
		}
		var c []string
		for _, v := range shellVerbs {
			if strings.HasPrefix(v, prefix) {
				c = append(c, v)
			}
		}
		return c
	case len(fields) == 1 && trailingSpace, len(fields) == 2 && !trailingSpace:
		if !slices.Contains([]string{"get", "items", "set", "add", "update", "rm"}, fields[0]) {
			return nil
		}
		prefix := ""
		if len(fields) == 2 {
			prefix = fields[1]
		}
		var c []string
		for _, name := range sh.f.Sections() {
			if strings.HasPrefix(name, prefix) {
				c = append(c, fields[0]+" "+name)
			}
		}
		return c
	default:
		return nil
	}
}
