// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/staywise/internal/api"
	"github.com/tomtom215/staywise/internal/validation"
)

func newVenuesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "venues",
		Short: "List the catalog with key themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := a.engine.Summaries()
			if err != nil {
				return err
			}
			p := a.printer()
			if ok, err := p.structured(summaries); ok {
				return err
			}

			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				rows = append(rows, []string{
					s.ID, s.Name, fmt.Sprint(s.StarRating), s.PriceRange,
					strconv.Itoa(s.ReviewCount), list(s.KeyThemes),
				})
			}
			p.title(fmt.Sprintf("Venues (%d), catalog %s", len(summaries), a.engine.Catalog().Version()))
			p.table([]string{"ID", "NAME", "STARS", "PRICE", "REVIEWS", "THEMES"}, rows)
			return nil
		},
	}
}

func newThemesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "themes <venue-id>",
		Short: "Explain a venue's review themes",
		Long: `Show the themes a venue's reviews establish.

A theme is kept when at least min_mentions reviews mention one of its
keywords. With --verbose every counted theme is listed, kept or not.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.engine.Themes(args[0])
			if err != nil {
				return err
			}
			p := a.printer()
			if ok, err := p.structured(report); ok {
				return err
			}

			p.title(fmt.Sprintf("%s [%s]", report.Name, report.VenueID))
			p.field("reviews", report.ReviewCount)
			p.field("themes", list(report.Themes))
			if a.verbose {
				names := make([]string, 0, len(report.Counts))
				for name := range report.Counts {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					p.field("  "+name, report.Counts[name])
				}
			}
			p.hint(fmt.Sprintf("themes need %d mentioning reviews", report.MinMentions))
			return nil
		},
	}
}

func newNeighborsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "neighbors <venue-id>",
		Short: "List the most similar nearby venues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			neighbors, err := a.engine.Neighbors(args[0])
			if err != nil {
				return err
			}
			p := a.printer()
			if ok, err := p.structured(neighbors); ok {
				return err
			}

			if len(neighbors) == 0 {
				fmt.Fprintln(a.out, "No neighbors found.")
				return nil
			}
			rows := make([][]string, 0, len(neighbors))
			for _, n := range neighbors {
				rows = append(rows, []string{n.Venue.ID, n.Venue.Name, km(n.DistanceKm), score(n.Similarity)})
			}
			p.title("Neighbors of " + args[0])
			p.table([]string{"ID", "NAME", "DISTANCE", "SIMILARITY"}, rows)
			return nil
		},
	}
}

func newSimilarityCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "similarity <venue-a> <venue-b>",
		Short: "Score two venues with a per-component breakdown",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.engine.Similarity(args[0], args[1])
			if err != nil {
				return err
			}
			p := a.printer()
			if ok, err := p.structured(b); ok {
				return err
			}

			p.title(fmt.Sprintf("%s vs %s", args[0], args[1]))
			p.field("star_rating", score(b.StarRating))
			p.field("price_range", score(b.PriceRange))
			p.field("amenities", score(b.Amenities))
			p.field("themes", score(b.Themes))
			p.field("total", score(b.Total))
			return nil
		},
	}
}

func newNearbyCmd(a *app) *cobra.Command {
	var lat, lng, radius float64
	cmd := &cobra.Command{
		Use:   "nearby --lat <lat> --lng <lng>",
		Short: "List venues within a radius of a point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.NearbyRequest{Lat: &lat, Lng: &lng, RadiusKm: radius}
			if verr := validation.ValidateStruct(req); verr != nil {
				return verr
			}
			venues, err := a.engine.Nearby(lat, lng, radius)
			if err != nil {
				return err
			}
			p := a.printer()
			if ok, err := p.structured(venues); ok {
				return err
			}

			if len(venues) == 0 {
				fmt.Fprintln(a.out, "No venues within range.")
				return nil
			}
			rows := make([][]string, 0, len(venues))
			for _, v := range venues {
				rows = append(rows, []string{v.VenueID, v.Name, km(v.DistanceKm)})
			}
			p.title(fmt.Sprintf("Within %s of %g,%g", km(radius), lat, lng))
			p.table([]string{"ID", "NAME", "DISTANCE"}, rows)
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	cmd.Flags().Float64VarP(&radius, "radius", "r", 100, "radius in km")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}
