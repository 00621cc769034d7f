// Package config loads, normalizes, and validates dfsorter configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the DFSORTER_MACRO_NAME
// environment fallback. The Config type centralizes every knob the sorting
// pipeline and CLI need so folders, header naming, and sort orders are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical extensions, and clear validation errors.
package config
