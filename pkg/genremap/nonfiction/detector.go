// Package nonfiction detects instructional or recipe-like content that
// has no place in a fiction taxonomy. A positive detection is a hard
// veto: the mapper returns the unmapped sentinel without scoring.
package nonfiction

import (
	"strings"

	"github.com/cognicore/genremap/pkg/genremap/ingest"
)

// Signals configures the detector. Instructional entries are matched as
// substrings of the normalized snippet and tag text; Words are matched
// against the combined token set.
type Signals struct {
	Instructional []string `yaml:"instructional"`
	Words         []string `yaml:"words"`
}

// DefaultSignals returns the built-in instructional/recipe signal lists.
func DefaultSignals() Signals {
	return Signals{
		Instructional: []string{
			"how to", "step by step", "guide", "tutorial", "build a", "using basic", "household items",
			"instructions", "diy", "recipe", "mix", "cups of", "bake at", "degrees", "ingredients",
		},
		Words: []string{
			"recipe", "telescope", "cups", "flour", "sugar", "bake", "preheat", "tablespoon", "teaspoon",
		},
	}
}

// Detector flags non-fiction inputs before scoring.
type Detector struct {
	instructional []string
	words         map[string]struct{}
}

// NewDetector creates a detector from the given signals.
func NewDetector(sig Signals) *Detector {
	instructional := make([]string, 0, len(sig.Instructional))
	for _, p := range sig.Instructional {
		instructional = append(instructional, ingest.Normalize(p))
	}

	words := make(map[string]struct{}, len(sig.Words))
	for _, w := range sig.Words {
		words[ingest.Normalize(w)] = struct{}{}
	}

	return &Detector{instructional: instructional, words: words}
}

// Detect reports whether the snippet or tags look like non-fiction,
// with a human-readable reason. Instructional phrasing is checked
// first, then single-word indicators over the combined token set.
func (d *Detector) Detect(snippet string, tags []string) (bool, string) {
	s := ingest.Normalize(snippet)
	t := ingest.Normalize(strings.Join(tags, " "))

	if containsAny(s, d.instructional) || containsAny(t, d.instructional) {
		return true, "Snippet/tags contain instructional/recipe-like phrasing (e.g., 'how to', 'mix', 'bake'), " +
			"which is not covered by the fiction taxonomy."
	}

	for tok := range ingest.TokenSet(s + " " + t) {
		if _, ok := d.words[tok]; ok {
			return true, "Snippet/tags contain strong non-fiction/recipe indicators (e.g., flour/sugar/bake/telescope), " +
				"so we should not force-fit into fiction genres."
		}
	}

	return false, ""
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
