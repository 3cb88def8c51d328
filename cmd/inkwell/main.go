// Package main is the single-binary entrypoint for Inkwell.
package main

import "github.com/inkwell-app/inkwell/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
