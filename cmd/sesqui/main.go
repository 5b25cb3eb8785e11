// Package main provides the entry point for the sesqui CLI.
package main

import (
	"os"

	"impractical.co/sesqui/cmd/sesqui/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
