// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// confedit reads and edits configuration files while preserving their
// comments, blank lines and layout.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"zombiezen.com/go/log"
)

func main() {
	logger := newStderrLogger(os.Stderr)
	log.SetDefault(logger)

	a := &app{
		environ:    os.Environ(),
		setVerbose: logger.setVerbose,
	}
	if home, err := os.UserHomeDir(); err == nil {
		a.rcPath = filepath.Join(home, ".confeditrc")
		a.historyPath = filepath.Join(home, ".confedit_history")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(a).ExecuteContext(ctx)
	cancel()
	if err != nil {
		os.Exit(1)
	}
}

// app holds the state shared by every subcommand.
type app struct {
	environ     []string
	rcPath      string // empty to skip the rc file
	historyPath string // empty to disable shell history
	setVerbose  func(bool)

	flags    settings
	settings settings
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "confedit",
		Short: "Edit configuration files without losing comments",
		Long: `confedit queries and modifies INI-style configuration files.

Files are made of [section] headers and "key = value" or "key: value"
properties. Comments, blank lines and the order of lines are kept when the
file is written back. Sections may be repeated; they are read as one.

The file to operate on is given with --file or the CONFEDIT_FILE environment
variable. Defaults for every flag may also be set in the [confedit] section
of ~/.confeditrc.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.resolveSettings(cmd.Flags())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.flags.file, "file", "f", "", "configuration file to operate on")
	pf.BoolVar(&a.flags.skipUnreadable, "skip-unreadable", false, "treat an unreadable file as empty")
	pf.IntVar(&a.flags.retries, "retries", 3, "number of times to retry writing the file")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "show debug logs")

	rootCmd.AddCommand(newGetCmd(a))
	rootCmd.AddCommand(newSetCmd(a))
	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newRmCmd(a))
	rootCmd.AddCommand(newItemsCmd(a))
	rootCmd.AddCommand(newSectionsCmd(a))
	rootCmd.AddCommand(newFmtCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newApplyCmd(a))
	rootCmd.AddCommand(newShellCmd(a))

	return rootCmd
}
