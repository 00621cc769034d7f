// Package main hosts the dfsorter CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration, applies per-invocation
// flag overrides, and hands the result to the sorter pipeline. `run` renames
// files and writes the header, `plan` previews the same mapping without
// touching the output side, and `config` scaffolds and checks TOML files.
//
// Keep this package lean: new behaviour belongs in the internal packages
// first, then surfaces here as a command or flag.
package main
