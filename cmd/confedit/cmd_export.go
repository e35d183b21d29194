// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yourbase/confutil/configfile"
	"gopkg.in/yaml.v3"
)

func newExportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the properties as YAML or JSON",
		Long: `Print every section as a mapping from keys to values.

A property with several values is exported as a list. Comments are not
exported. YAML output keeps the order of the file; JSON output is sorted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			switch format {
			case "yaml":
				return exportYAML(cmd.OutOrStdout(), f)
			case "json":
				return exportJSON(cmd.OutOrStdout(), f)
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")

	return cmd
}

// sectionValues returns the properties of a section in order of first
// appearance, with their values in file order.
func sectionValues(f *configfile.File, section string) (keys []string, values map[string][]string) {
	v := f.MultiSection(section)
	return v.Keys(), v.Map()
}

func exportYAML(w io.Writer, f *configfile.File) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range f.Sections() {
		props := &yaml.Node{Kind: yaml.MappingNode}
		keys, values := sectionValues(f, name)
		for _, k := range keys {
			props.Content = append(props.Content, stringNode(k), valuesNode(values[k]))
		}
		doc.Content = append(doc.Content, stringNode(name), props)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export yaml: %w", err)
	}
	return enc.Close()
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func valuesNode(values []string) *yaml.Node {
	if len(values) == 1 {
		return stringNode(values[0])
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range values {
		seq.Content = append(seq.Content, stringNode(v))
	}
	return seq
}

func exportJSON(w io.Writer, f *configfile.File) error {
	doc := make(map[string]map[string]any)
	for _, name := range f.Sections() {
		props := make(map[string]any)
		_, values := sectionValues(f, name)
		for k, vs := range values {
			if len(vs) == 1 {
				props[k] = vs[0]
			} else {
				props[k] = vs
			}
		}
		doc[name] = props
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}
