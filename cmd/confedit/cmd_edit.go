// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"github.com/spf13/cobra"
)

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set SECTION KEY VALUE",
		Short: "Set a property, replacing all of its values",
		Long: `Set a property.

Every existing value of the property is replaced in place. If the property is
not set, it is added next to the other properties of the section, creating
the section at the end of the file if needed.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOps(cmd.Context(), cmd.OutOrStdout(), &op{
				Op:      "set",
				Section: args[0],
				Key:     args[1],
				Value:   &args[2],
			})
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add SECTION KEY VALUE",
		Short: "Add a value to a property",
		Long: `Add a value to a property, keeping its existing values.

The new line is placed after the block that already holds the same value, or
else at the end of the last block of the section.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOps(cmd.Context(), cmd.OutOrStdout(), &op{
				Op:      "add",
				Section: args[0],
				Key:     args[1],
				Value:   &args[2],
			})
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	var (
		old  string
		once bool
	)

	cmd := &cobra.Command{
		Use:   "update SECTION KEY VALUE",
		Short: "Replace existing values of a property",
		Long: `Replace existing values of a property in place.

With --old, only lines with that value are replaced. With --once, only the
first matching line is replaced. Exits with an error if nothing matched.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := &op{
				Op:      "update",
				Section: args[0],
				Key:     args[1],
				Value:   &args[2],
				Once:    once,
			}
			if cmd.Flags().Changed("old") {
				o.Old = &old
			}
			return a.runOps(cmd.Context(), cmd.OutOrStdout(), o)
		},
	}

	cmd.Flags().StringVar(&old, "old", "", "only replace lines with this value")
	cmd.Flags().BoolVar(&once, "once", false, "replace only the first matching line")

	return cmd
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm SECTION KEY [VALUE]",
		Short: "Remove a property",
		Long: `Remove every line of a property, or only the lines with the given value.

A block of the section left without any line is no longer written, header
included.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := &op{
				Op:      "rm",
				Section: args[0],
				Key:     args[1],
			}
			if len(args) == 3 {
				o.Value = &args[2]
			}
			return a.runOps(cmd.Context(), cmd.OutOrStdout(), o)
		},
	}
}
