// Package config defines the format-agnostic settings model of the
// application, its compiled defaults and validation, and the Loader
// interface implemented by concrete file formats.
//
// The `config.Model` is the single source of truth for the engine and the
// report writers. Settings are layered in this order, later layers winning:
//
//  1. Default()
//  2. configuration files, through a Loader (see package hcl)
//  3. environment variables and command-line flags (see package cli)
//
// Validate must be called on the final model before it is used.
package config
