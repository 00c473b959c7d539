// Package data holds the content shipped inside the binaries
package data

import (
	_ "embed"
)

// Catalog is the default exercise and nutrition catalog seeded by cmd/catalog
//
//go:embed catalog.yaml
var Catalog []byte
