// Package main is the entry point for card-lister.
package main

import (
	"github.com/goosebones/pokemon/cmd/card-lister/cmd"
)

func main() {
	cmd.Execute()
}
