// Package main is the single-binary entrypoint for Ka Pai Putea.
// One binary: the CLI and the local API server.
package main

import "github.com/benjisbeans/kapaiputea-app/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
