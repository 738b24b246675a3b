// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/staywise/internal/api"
	"github.com/tomtom215/staywise/internal/recommend"
	"github.com/tomtom215/staywise/internal/validation"
)

func newRecommendCmd(a *app) *cobra.Command {
	var (
		refine  bool
		initial string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "recommend <preferences>",
		Short: "Recommend venues for travel preferences",
		Long: `Recommend venues that match free-text travel preferences.

The basic pass ranks venues from their summaries. With --refine a second
pass re-ranks the answer using features inferred from neighbors. --initial
supplies the answer to refine and implies --refine.

Examples:
  venuectl recommend "family friendly near the beach"
  venuectl recommend "quiet place with a spa" --refine
  venuectl recommend "mountain views" --initial "Summit Inn looks good"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.RefineRequest{Preferences: args[0], Initial: initial}
			if verr := validation.ValidateStruct(req); verr != nil {
				return verr
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			var (
				rec *recommend.Recommendation
				err error
			)
			if refine || initial != "" {
				rec, err = a.engine.Refine(ctx, req.Preferences, req.Initial)
			} else {
				rec, err = a.engine.Recommend(ctx, req.Preferences)
			}
			if err != nil {
				return fmt.Errorf("recommend: %w", err)
			}

			p := a.printer()
			if ok, err := p.structured(rec); ok {
				return err
			}
			printRecommendation(p, rec, a.verbose)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refine, "refine", false, "re-rank using inferred features")
	cmd.Flags().StringVar(&initial, "initial", "", "initial answer to refine")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall time limit (0 disables)")
	return cmd
}

func printRecommendation(p *printer, rec *recommend.Recommendation, verbose bool) {
	p.title(fmt.Sprintf("Recommendation (%s)", rec.Mode))
	if rec.Warning != "" {
		p.warn(rec.Warning)
	}
	fmt.Fprintln(p.w, rec.Text)
	if verbose {
		if rec.Initial != "" {
			p.field("initial", rec.Initial)
		}
		if rec.Report != nil {
			p.field("coverage", pct(rec.Report.Coverage()*100))
		}
	}
	source := string(rec.Source)
	if rec.Model != "" {
		source += ", " + rec.Model
	}
	p.hint(fmt.Sprintf("source %s, catalog %s", source, rec.CatalogVersion))
}
