// Package ui embeds the built single-page viewer.
package ui

import "embed"

//go:embed dist
var DistFS embed.FS
