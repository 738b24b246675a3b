// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package recommend

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/staywise/internal/models"
	"github.com/tomtom215/staywise/internal/recommend/themes"
)

// maxHighlights caps the amenities and features listed per venue.
const maxHighlights = 4

type offlinePick struct {
	venue    *models.Venue
	matched  []string
	inferred []inferredMatch
	score    float64
}

type inferredMatch struct {
	key        string
	confidence float64
}

// composeOffline ranks venues against the preferences without a generator.
//
// A venue scores one point per review theme it shares with the
// preferences. In refined mode every inferred feature whose key mentions a
// preferred theme or one of its keywords adds its confidence as a fraction.
// Ties go to the higher star rating, then to catalog order.
func (e *Engine) composeOffline(s *snapshot, mode Mode, preferences string, report Report) string {
	wanted := e.extractor.Match(preferences)
	if len(wanted) == 0 {
		return askForPreferences
	}
	terms := e.preferenceTerms(wanted)
	memo := themes.NewMemo(e.extractor)

	var picks []offlinePick
	for _, v := range s.catalog.Venues() {
		p := offlinePick{venue: v, matched: intersect(wanted, memo.Themes(v))}
		p.score = float64(len(p.matched))

		if mode == ModeRefined {
			vi := report[v.ID]
			for _, key := range vi.Features {
				if mentionsAny(key, terms) {
					c := vi.Confidence[key]
					p.inferred = append(p.inferred, inferredMatch{key: key, confidence: c})
					p.score += c / 100
				}
			}
		}
		if p.score > 0 {
			picks = append(picks, p)
		}
	}

	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].score != picks[j].score {
			return picks[i].score > picks[j].score
		}
		return picks[i].venue.Tags.StarRating > picks[j].venue.Tags.StarRating
	})
	if len(picks) > e.cfg.Advisor.MaxRecommendations {
		picks = picks[:e.cfg.Advisor.MaxRecommendations]
	}

	var b strings.Builder
	if mode == ModeRefined {
		fmt.Fprintf(&b, "Refined recommendations for %q. Features marked as inferred were borrowed from similar nearby hotels.\n", preferences)
	} else {
		fmt.Fprintf(&b, "Recommendations for %q.\n", preferences)
	}

	if len(picks) == 0 {
		fmt.Fprintf(&b, "\nNo hotel in the catalog has enough reviews about %s to recommend it yet.\n", strings.Join(wanted, ", "))
		return b.String()
	}

	for i, p := range picks {
		fmt.Fprintf(&b, "\n%d. %s (%s)\n", i+1, p.venue.Name, describeRating(p.venue))
		if len(p.matched) > 0 {
			fmt.Fprintf(&b, "   Why: guests repeatedly mention %s in their reviews.\n", strings.Join(p.matched, ", "))
		}
		if h := highlights(p.venue); len(h) > 0 {
			fmt.Fprintf(&b, "   Highlights: %s\n", strings.Join(h, ", "))
		}
		for _, m := range p.inferred {
			fmt.Fprintf(&b, "   Inferred: %s (%s%% confidence)\n", m.key, strconv.FormatFloat(m.confidence, 'f', 1, 64))
		}
	}
	return b.String()
}

// preferenceTerms returns the names and keywords of the wanted themes.
func (e *Engine) preferenceTerms(wanted []string) []string {
	terms := make([]string, 0, len(wanted)*4)
	for _, theme := range wanted {
		terms = append(terms, theme)
		terms = append(terms, e.extractor.Keywords(theme)...)
	}
	return terms
}

func mentionsAny(key string, terms []string) bool {
	key = strings.ToLower(strings.ReplaceAll(key, "_", " "))
	for _, t := range terms {
		if strings.Contains(key, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

// intersect returns the members of want that also appear in have, in the
// order of want.
func intersect(want, have []string) []string {
	var out []string
	for _, w := range want {
		for _, h := range have {
			if w == h {
				out = append(out, w)
				break
			}
		}
	}
	return out
}

func describeRating(v *models.Venue) string {
	parts := make([]string, 0, 2)
	if v.Tags.StarRating != 0 {
		parts = append(parts, strconv.FormatFloat(v.Tags.StarRating, 'f', -1, 64)+" stars")
	} else {
		parts = append(parts, "unrated")
	}
	if v.Tags.PriceRange != "" {
		parts = append(parts, v.Tags.PriceRange)
	}
	return strings.Join(parts, ", ")
}

func highlights(v *models.Venue) []string {
	out := make([]string, 0, maxHighlights)
	for _, a := range v.Tags.Amenities {
		if len(out) == maxHighlights {
			return out
		}
		out = append(out, a)
	}
	for _, f := range v.Tags.TrueFeatures() {
		if len(out) == maxHighlights {
			return out
		}
		out = append(out, strings.ReplaceAll(f, "_", " "))
	}
	return out
}
