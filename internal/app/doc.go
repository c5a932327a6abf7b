// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle, decoupled
// from any specific entrypoint like a CLI or server.
//
// A run loads the upstream tables, executes the grouping engine, replays
// every diagnostic into the application logger, and writes the reports and
// the optional metrics textfile.
package app
