// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"
	"zombiezen.com/go/log"
)

func newApplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply SCRIPT",
		Short: "Apply a list of edits from a JSON script",
		Long: `Apply a list of edits read from a JSON file, or stdin if SCRIPT is "-".

The script is a JSON array of objects with the fields op, section, key,
value, old, once and all. Comments and trailing commas are allowed. For
example:

  [
    // Point at the new mirror.
    {"op": "set", "section": "remote", "key": "url", "value": "https://example.com"},
    {"op": "rm", "section": "remote", "key": "mirror"},
  ]

Edits are applied in order. If any of them fails, the file is not written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			ops, err := parseScript(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			log.Debugf(cmd.Context(), "Applying %d edits", len(ops))
			return a.runOps(cmd.Context(), cmd.OutOrStdout(), ops...)
		},
	}
}

// parseScript decodes a list of ops from JSON with comments.
func parseScript(data []byte) ([]*op, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	var ops []*op
	if err := dec.Decode(&ops); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	for i, o := range ops {
		if o == nil {
			return nil, fmt.Errorf("op %d is null", i+1)
		}
		if err := o.validate(); err != nil {
			return nil, fmt.Errorf("op %d: %w", i+1, err)
		}
	}
	return ops, nil
}
