// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the venuectl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := struct {
				Version string `json:"version"`
				Go      string `json:"go"`
			}{Version, runtime.Version()}

			if !validFormat(a.output) {
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", a.output)
			}
			if ok, err := a.printer().structured(info); ok {
				return err
			}
			_, err := fmt.Fprintf(a.out, "venuectl %s (%s)\n", info.Version, info.Go)
			return err
		},
	}
}
