// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// OutputFormat names a rendering.
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// OutputOptions carries the --output flag of one command.
type OutputOptions struct {
	raw    string
	format OutputFormat
}

// AddOutputFlags registers --output/-o with def as the default.
func (o *OutputOptions) AddOutputFlags(cmd *cobra.Command, def OutputFormat) {
	o.format = def
	cmd.Flags().StringVarP(&o.raw, "output", "o", string(def), "Output format: table, json, yaml")
}

// Resolve validates the flag value. Call it first in RunE.
func (o *OutputOptions) Resolve() error {
	if o.raw == "" {
		if o.format == "" {
			o.format = OutputTable
		}
		return nil
	}
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(o.raw))); f {
	case OutputTable, OutputJSON, OutputYAML:
		o.format = f
		return nil
	}
	return fmt.Errorf("invalid output format %q (choose table, json, yaml)", o.raw)
}

// Structured reports whether the output is machine-readable.
func (o *OutputOptions) Structured() bool {
	return o.format == OutputJSON || o.format == OutputYAML
}

// Encode writes v as JSON or YAML according to the resolved format.
func (o *OutputOptions) Encode(w io.Writer, v any) error {
	if o.format == OutputYAML {
		return YAML(w, v)
	}
	return JSON(w, v)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
