// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

// Package themes extracts recurring topics from free-text venue reviews.
//
// A theme is a named list of keywords. A review mentions a theme when its
// lower-cased text contains any of the keywords as a substring; a venue
// carries the theme when at least MinMentions distinct reviews mention it.
// All keywords are matched in a single pass with an Aho-Corasick automaton.
package themes

// DefaultMinMentions is the number of distinct reviews that must mention a
// theme before the venue carries it.
const DefaultMinMentions = 3

// MaxThemes is the largest vocabulary an Extractor accepts.
const MaxThemes = 64

// Theme is a named topic and the keywords that signal it.
type Theme struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// DefaultVocabulary returns the built-in theme vocabulary. Extracted theme
// sets are reported in this order.
func DefaultVocabulary() []Theme {
	return []Theme{
		{Name: "mountain", Keywords: []string{"mountain", "mountains", "hiking", "view", "peak", "trail"}},
		{Name: "river", Keywords: []string{"river", "water", "fishing", "stream", "waterfront", "riverside"}},
		{Name: "downtown", Keywords: []string{"downtown", "city center", "business", "transportation", "metro", "urban"}},
		{Name: "lake", Keywords: []string{"lake", "swimming", "boat", "lakeside", "waterfront", "shore"}},
		{Name: "airport", Keywords: []string{"airport", "shuttle", "flight", "terminal", "transit", "layover"}},
		{Name: "historic", Keywords: []string{"historic", "heritage", "culture", "traditional", "ancient", "classic"}},
		{Name: "beach", Keywords: []string{"beach", "ocean", "surf", "sea", "coastal", "sand"}},
		{Name: "countryside", Keywords: []string{"countryside", "rural", "farm", "nature", "peaceful", "quiet"}},
	}
}

// CloneVocabulary returns a deep copy of vocab.
func CloneVocabulary(vocab []Theme) []Theme {
	if vocab == nil {
		return nil
	}
	out := make([]Theme, len(vocab))
	for i, t := range vocab {
		out[i] = Theme{Name: t.Name, Keywords: append([]string(nil), t.Keywords...)}
	}
	return out
}
