// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

// Package main provides the entry point for the venuectl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/tomtom215/staywise/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
