// Package cmd implements the command-line interface for the database
// server. The root command takes a single positional argument, the path
// to the key=value configuration file, and runs the server until a
// shutdown signal arrives. Configuration values can be overridden with
// DATABASE_* environment variables.
package cmd
