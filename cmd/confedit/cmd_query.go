// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "get SECTION KEY",
		Short: "Print the value of a property",
		Long: `Print the first value of a property.

With --all, print every value of the property, one per line, in file order.
Exits with an error if the property is not set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOps(cmd.Context(), cmd.OutOrStdout(), &op{
				Op:      "get",
				Section: args[0],
				Key:     args[1],
				All:     all,
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "print every value")

	return cmd
}

func newItemsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "items SECTION",
		Short: "Print the properties of a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOps(cmd.Context(), cmd.OutOrStdout(), &op{
				Op:      "items",
				Section: args[0],
			})
		},
	}
}

func newSectionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "Print the names of the sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOps(cmd.Context(), cmd.OutOrStdout(), &op{Op: "sections"})
		},
	}
}

func newFmtCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt",
		Short: "Print the file as it would be written",
		Long: `Print the file as it would be written back by confedit.

Sections that were added to the file after the last header appear at the end.
An unmodified file prints identically to its content.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			_, err = f.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}
