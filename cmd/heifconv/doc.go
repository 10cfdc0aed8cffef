// Package main hosts the heifconv CLI entrypoint and command graph.
//
// The root command converts every HEIF/HEIC file in the working directory to
// the requested format. The config and history subcommands scaffold
// configuration and inspect past runs recorded in the history database.
package main
