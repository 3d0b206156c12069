// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package config loads arc-cards settings from the environment, an
// optional YAML file and built-in defaults, in that order of precedence.
package config

// Config holds all application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// StorageConfig selects and locates the backend holding the collection.
type StorageConfig struct {
	Backend   string `mapstructure:"backend" yaml:"backend" validate:"required,oneof=sqlite file memory"`
	Path      string `mapstructure:"path" yaml:"path"`
	Key       string `mapstructure:"key" yaml:"key" validate:"required"`
	OnCorrupt string `mapstructure:"on_corrupt" yaml:"on_corrupt" validate:"required,oneof=empty seed"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`
	// File receives log output while the interactive UI owns the terminal.
	File string `mapstructure:"file" yaml:"file"`
}
