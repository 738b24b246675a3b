// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package themes

import (
	"errors"
	"fmt"

	"github.com/tomtom215/staywise/internal/models"
)

// ErrInvalidVocabulary is returned for vocabularies an Extractor cannot use.
var ErrInvalidVocabulary = errors.New("invalid theme vocabulary")

// Extractor derives theme sets from reviews. It is safe for concurrent use.
type Extractor struct {
	vocab       []Theme
	minMentions int
	matcher     *automaton
}

// NewExtractor builds an extractor for vocab. A vocabulary must have between
// one and MaxThemes uniquely named themes. minMentions below 1 is raised to 1.
func NewExtractor(vocab []Theme, minMentions int) (*Extractor, error) {
	if len(vocab) == 0 {
		return nil, fmt.Errorf("%w: no themes", ErrInvalidVocabulary)
	}
	if len(vocab) > MaxThemes {
		return nil, fmt.Errorf("%w: %d themes exceeds limit of %d", ErrInvalidVocabulary, len(vocab), MaxThemes)
	}
	names := make(map[string]bool, len(vocab))
	for i, t := range vocab {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: theme[%d] has no name", ErrInvalidVocabulary, i)
		}
		if names[t.Name] {
			return nil, fmt.Errorf("%w: duplicate theme %q", ErrInvalidVocabulary, t.Name)
		}
		names[t.Name] = true
	}
	if minMentions < 1 {
		minMentions = 1
	}

	vocab = CloneVocabulary(vocab)
	return &Extractor{
		vocab:       vocab,
		minMentions: minMentions,
		matcher:     newAutomaton(vocab),
	}, nil
}

// NewDefaultExtractor returns an extractor over DefaultVocabulary with
// DefaultMinMentions.
func NewDefaultExtractor() *Extractor {
	e, err := NewExtractor(DefaultVocabulary(), DefaultMinMentions)
	if err != nil {
		panic(fmt.Sprintf("themes: default vocabulary rejected: %v", err))
	}
	return e
}

// Vocabulary returns a copy of the extractor's vocabulary.
func (e *Extractor) Vocabulary() []Theme {
	return CloneVocabulary(e.vocab)
}

// MinMentions returns the per-theme review threshold.
func (e *Extractor) MinMentions() int {
	return e.minMentions
}

// Counts returns, for every theme in vocabulary order, the number of reviews
// that mention it. Each review counts at most once per theme.
func (e *Extractor) Counts(reviews []models.Review) map[string]int {
	tally := e.tally(reviews)
	counts := make(map[string]int, len(e.vocab))
	for i, t := range e.vocab {
		counts[t.Name] = tally[i]
	}
	return counts
}

// Extract returns the themes mentioned by at least MinMentions distinct
// reviews, in vocabulary order. The result is never nil.
func (e *Extractor) Extract(reviews []models.Review) []string {
	out := make([]string, 0)
	if len(reviews) < e.minMentions {
		return out
	}
	tally := e.tally(reviews)
	for i, t := range e.vocab {
		if tally[i] >= e.minMentions {
			out = append(out, t.Name)
		}
	}
	return out
}

// Themes extracts the themes of a venue's reviews.
func (e *Extractor) Themes(v *models.Venue) []string {
	if v == nil {
		return []string{}
	}
	return e.Extract(v.Reviews)
}

// Match returns the themes a single text mentions, in vocabulary order.
func (e *Extractor) Match(text string) []string {
	mask := e.matcher.scan(text)
	out := make([]string, 0)
	for i, t := range e.vocab {
		if mask&(uint64(1)<<uint(i)) != 0 {
			out = append(out, t.Name)
		}
	}
	return out
}

// Keywords returns the keywords of the named theme.
func (e *Extractor) Keywords(theme string) []string {
	for _, t := range e.vocab {
		if t.Name == theme {
			return append([]string(nil), t.Keywords...)
		}
	}
	return nil
}

func (e *Extractor) tally(reviews []models.Review) []int {
	tally := make([]int, len(e.vocab))
	for _, r := range reviews {
		mask := e.matcher.scan(r.Text)
		for i := range tally {
			if mask&(uint64(1)<<uint(i)) != 0 {
				tally[i]++
			}
		}
	}
	return tally
}
