// Copyright (c) 2025 Sitescope Authors
// Sitescope - on-page SEO analysis toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Sitescope.
//
// Usage:
//
//	go run . [flags]
//	./sitescope [flags]
//
// This launches the Sitescope CLI. See --help for options.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sitescope/sitescope/ui/cli"
)

// version is set at build time using -ldflags, e.g.:
// go build -ldflags "-X main.version=1.2.3"
var version = "dev"

func main() {
	if os.Getenv("SITESCOPE_SHOW_VERSION") == "1" {
		fmt.Fprintf(os.Stderr, "Sitescope version: %s\n", version)
	}

	if err := cli.Execute(); err != nil {
		log.Printf("Sitescope CLI error: %v", err)
		os.Exit(1)
	}
}
