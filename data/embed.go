// Package data provides the embedded level files.
package data

import "embed"

// dataFS embeds all JSON level files from the data directory at build time.
//
//go:embed *.json
var dataFS embed.FS

// FS returns the embedded filesystem containing the levels.
func FS() embed.FS {
	return dataFS
}
