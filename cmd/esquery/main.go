// Package main provides the entry point for the esquery CLI.
package main

import (
	"os"

	"github.com/kailas-cloud/esquery/cmd/esquery/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
