// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package themes

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/tomtom215/staywise/internal/models"
)

func reviews(texts ...string) []models.Review {
	out := make([]models.Review, len(texts))
	for i, text := range texts {
		out[i] = models.Review{User: "guest", Rating: 4, Text: text}
	}
	return out
}

func TestExtract(t *testing.T) {
	t.Parallel()

	e := NewDefaultExtractor()

	tests := []struct {
		name    string
		reviews []models.Review
		want    []string
	}{
		{
			name:    "two beach one mountain yields nothing",
			reviews: reviews("Lovely beach", "Walked the beach", "Saw a mountain"),
			want:    []string{},
		},
		{
			name:    "three reviews reach threshold",
			reviews: reviews("Great HIKING", "mountain air", "nice view from the room"),
			want:    []string{"mountain"},
		},
		{
			name:    "review counts once per theme",
			reviews: reviews("hiking trail peak view mountain", "quiet room", "nothing else"),
			want:    []string{},
		},
		{
			name: "one review feeds several themes",
			reviews: reviews(
				"waterfront room by the lake",
				"waterfront dinner",
				"swimming in the waterfront pool",
			),
			// waterfront is a keyword of both river and lake
			want: []string{"river", "lake"},
		},
		{
			name:    "multi-word keyword",
			reviews: reviews("Right in the City Center", "city center location", "close to the CITY CENTER"),
			want:    []string{"downtown"},
		},
		{
			name:    "vocabulary order",
			reviews: reviews("quiet beach", "peaceful sea", "nature and sand"),
			want:    []string{"beach", "countryside"},
		},
		{
			name:    "substring match inside words",
			reviews: reviews("the seafood", "overseas guests", "research trip"),
			want:    []string{"beach"},
		},
		{
			name:    "no reviews",
			reviews: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := e.Extract(tt.reviews)
			if got == nil {
				t.Fatal("Extract() returned nil")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtract_Monotonic(t *testing.T) {
	t.Parallel()

	e := NewDefaultExtractor()
	base := reviews("a river walk", "fishing trip", "stream nearby")

	if got := e.Extract(base); !reflect.DeepEqual(got, []string{"river"}) {
		t.Fatalf("Extract(base) = %v, want [river]", got)
	}

	more := append(append([]models.Review(nil), base...), reviews("more water")...)
	if got := e.Extract(more); !reflect.DeepEqual(got, []string{"river"}) {
		t.Errorf("adding a qualifying review changed themes to %v", got)
	}

	fewer := base[:2]
	if got := e.Extract(fewer); len(got) != 0 {
		t.Errorf("removing the third qualifying review kept themes %v", got)
	}
}

// naiveMentions is the reference substring scan the automaton must agree with.
func naiveMentions(vocab []Theme, text string) []string {
	lower := strings.ToLower(text)
	out := []string{}
	for _, theme := range vocab {
		for _, kw := range theme.Keywords {
			if strings.Contains(lower, kw) {
				out = append(out, theme.Name)
				break
			}
		}
	}
	return out
}

func TestMatch_AgreesWithSubstringScan(t *testing.T) {
	t.Parallel()

	e := NewDefaultExtractor()
	vocab := DefaultVocabulary()

	texts := []string{
		"",
		"Nothing to see here",
		"Stayed near the AIRPORT with a free shuttle",
		"heritage building downtown, classic decor, metro nearby",
		"peakview",
		"sandy shore and surfside lakeside boats",
		"rivers and mountains and countryside farms",
		"transportationtransit",
		"uRbAn quiet",
		"seaseasea",
		"Ünïcödé mountain ☃ beach",
	}

	for _, text := range texts {
		got := e.Match(text)
		want := naiveMentions(vocab, text)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Match(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestCounts(t *testing.T) {
	t.Parallel()

	e := NewDefaultExtractor()
	counts := e.Counts(reviews("beach", "beach and sea", "mountain"))

	if counts["beach"] != 2 {
		t.Errorf("counts[beach] = %d, want 2", counts["beach"])
	}
	if counts["mountain"] != 1 {
		t.Errorf("counts[mountain] = %d, want 1", counts["mountain"])
	}
	if len(counts) != len(DefaultVocabulary()) {
		t.Errorf("Counts() has %d themes, want %d", len(counts), len(DefaultVocabulary()))
	}
}

func TestNewExtractor_Validation(t *testing.T) {
	t.Parallel()

	tooMany := make([]Theme, MaxThemes+1)
	for i := range tooMany {
		tooMany[i] = Theme{Name: strings.Repeat("t", i+1), Keywords: []string{"x"}}
	}

	tests := []struct {
		name  string
		vocab []Theme
	}{
		{"empty", nil},
		{"unnamed", []Theme{{Keywords: []string{"a"}}}},
		{"duplicate", []Theme{{Name: "a"}, {Name: "a"}}},
		{"too many", tooMany},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewExtractor(tt.vocab, 3); !errors.Is(err, ErrInvalidVocabulary) {
				t.Errorf("NewExtractor() error = %v, want ErrInvalidVocabulary", err)
			}
		})
	}
}

func TestNewExtractor_CustomVocabulary(t *testing.T) {
	t.Parallel()

	vocab := []Theme{{Name: "spa", Keywords: []string{"Massage", "sauna"}}}
	e, err := NewExtractor(vocab, 0)
	if err != nil {
		t.Fatalf("NewExtractor() error = %v", err)
	}
	vocab[0].Keywords[0] = "mutated"

	if e.MinMentions() != 1 {
		t.Errorf("MinMentions() = %d, want 1", e.MinMentions())
	}
	if got := e.Extract(reviews("great MASSAGE")); !reflect.DeepEqual(got, []string{"spa"}) {
		t.Errorf("Extract() = %v, want [spa]", got)
	}
	if kw := e.Keywords("spa"); kw[0] != "Massage" {
		t.Errorf("extractor shares vocabulary storage, keywords = %v", kw)
	}
}

func TestMemo(t *testing.T) {
	t.Parallel()

	e := NewDefaultExtractor()
	memo := NewMemo(e)
	v := &models.Venue{ID: "v1", Reviews: reviews("beach", "sea", "surf")}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := memo.Themes(v); !reflect.DeepEqual(got, []string{"beach"}) {
				t.Errorf("Themes() = %v, want [beach]", got)
			}
		}()
	}
	wg.Wait()

	hits, misses := memo.Stats()
	if hits+misses != 8 {
		t.Errorf("hits+misses = %d, want 8", hits+misses)
	}
	if misses < 1 {
		t.Error("expected at least one miss")
	}
	if got := memo.Themes(nil); len(got) != 0 {
		t.Errorf("Themes(nil) = %v, want empty", got)
	}
}
