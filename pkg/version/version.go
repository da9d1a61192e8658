// Package version holds the application version string.
package version

// Version is the current taipamap release.
const Version = "0.3.1"
