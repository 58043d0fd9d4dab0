// Package main provides the evset CLI application.
// evset curates AudioSet emergency-vehicle siren datasets.
package main

import "github.com/evsiren/evset/cmd"

func main() {
	cmd.Execute()
}
