// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tomtom215/staywise/internal/recommend"
)

func newCompleteCmd(a *app) *cobra.Command {
	var onlyInferred bool
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Infer missing features for every venue",
		Long: `Run the completion pipeline over the catalog.

Each venue's features are inferred from its most similar neighbors within
the configured radius. Confidence is the similarity-weighted share of
neighbors carrying the feature. Novel features are inferred ones the venue
does not list yet.

Examples:
  venuectl complete
  venuectl complete --inferred-only -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.engine.Complete(cmd.Context())
			if err != nil {
				return fmt.Errorf("complete: %w", err)
			}
			if onlyInferred {
				for id, vi := range report {
					if len(vi.Features) == 0 {
						delete(report, id)
					}
				}
			}

			p := a.printer()
			if ok, err := p.structured(report); ok {
				return err
			}
			printReport(p, report, a.verbose)
			return nil
		},
	}
	cmd.Flags().BoolVar(&onlyInferred, "inferred-only", false, "omit venues with no inferred features")
	return cmd
}

// printReport renders a completion report as a table, one row per venue in
// id order.
func printReport(p *printer, report recommend.Report, verbose bool) {
	ids := make([]string, 0, len(report))
	for id := range report {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		vi := report[id]
		features := make([]string, 0, len(vi.Features))
		for _, f := range vi.Features {
			if verbose {
				f = fmt.Sprintf("%s (%s)", f, pct(vi.Confidence[f]))
			}
			features = append(features, f)
		}
		rows = append(rows, []string{id, vi.Name, list(features), list(vi.Novel)})
	}

	p.title(fmt.Sprintf("Completion report (%d venues)", len(report)))
	p.table([]string{"ID", "NAME", "INFERRED", "NOVEL"}, rows)
	p.hint(fmt.Sprintf("coverage %s", pct(report.Coverage()*100)))
}
