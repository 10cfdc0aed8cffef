// Package config loads, normalizes, and validates heifconv configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// HEIFCONV_LOG_LEVEL. The conversion format itself is never configured here;
// it always arrives as the command's positional argument.
package config
