// Package data provides embedded scenario definitions and utilities for
// loading them.
package data

import "embed"

// dataFS embeds all JSON files from the data directory at build time.
//
//go:embed *.json
var dataFS embed.FS
