// Package evset holds build information shared by the evset CLI.
package evset

var (
	// Version of evset, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)
