// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates CLI flags and COGROUP_* environment variables into the
// application's configuration.
//
// Configuration is layered, later layers winning:
//
//  1. compiled defaults,
//  2. HCL files given with --config,
//  3. COGROUP_* environment variables,
//  4. command-line flags.
//
// Only flags and variables that are explicitly set override the layers
// below them.
package cli
