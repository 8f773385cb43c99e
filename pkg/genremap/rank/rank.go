// Package rank implements the weighted cue scorer and the deterministic
// ranking of taxonomy leaves.
package rank

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/genremap/pkg/genremap/ingest"
	"github.com/cognicore/genremap/pkg/genremap/internalerr"
	"github.com/cognicore/genremap/pkg/genremap/lexicon"
)

// Weights defines the per-cue scoring weights.
//
// score = SnippetStrong·snippet_strong + SnippetWeak·snippet_weak +
//         TagStrong·tag_strong + TagWeak·tag_weak
type Weights struct {
	SnippetStrong float64 // strong phrase in snippet
	SnippetWeak   float64 // weak cue in snippet
	TagStrong     float64 // strong phrase in tags
	TagWeak       float64 // weak cue in tags
}

// DefaultWeights returns the stock weights.
func DefaultWeights() Weights {
	return Weights{
		SnippetStrong: 4.0,
		SnippetWeak:   1.5,
		TagStrong:     1.5,
		TagWeak:       0.5,
	}
}

// Validate enforces the Context Wins ordering: snippet evidence outweighs
// tag evidence at both tiers, and strong cues outweigh weak ones within
// each source. Required: snippet-strong > tag-strong ≥ snippet-weak >
// tag-weak ≥ 0.
func (w Weights) Validate() error {
	if w.SnippetStrong > w.TagStrong && w.TagStrong >= w.SnippetWeak && w.SnippetWeak > w.TagWeak && w.TagWeak >= 0 {
		return nil
	}
	return fmt.Errorf("rank: weights must satisfy snippet-strong > tag-strong >= snippet-weak > tag-weak >= 0, got %+v: %w",
		w, internalerr.ErrInvalidConfig)
}

// Document is one case prepared for scoring: normalized snippet and tag
// text plus their token sets, computed once per mapping request.
type Document struct {
	SnippetText string
	TagsText    string

	snippetTokens map[string]struct{}
	tagsTokens    map[string]struct{}
}

// NewDocument normalizes and tokenizes a case.
func NewDocument(snippet string, tags []string) Document {
	snippetText := ingest.Normalize(snippet)
	tagsText := ingest.Normalize(strings.Join(tags, " "))
	return Document{
		SnippetText:   snippetText,
		TagsText:      tagsText,
		snippetTokens: ingest.TokenSet(snippetText),
		tagsTokens:    ingest.TokenSet(tagsText),
	}
}

// Breakdown reports the component cue counts behind a score.
type Breakdown struct {
	SnippetStrong int
	TagsStrong    int
	SnippetWeak   int
	TagsWeak      int
	Total         float64
}

// Scorer computes weighted cue-match scores.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer with the given weights.
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Score computes the weighted cue score of one lexicon entry against a
// document. Strong phrases count once per listed phrase present as a
// substring. Weak cues count both as substrings and as whole tokens, so
// a single weak word present in the text contributes twice while a
// multi-word weak phrase still matches via substring.
func (s *Scorer) Score(e lexicon.Entry, doc Document) float64 {
	return s.ScoreWithBreakdown(e, doc).Total
}

// ScoreWithBreakdown computes the score with per-component counts.
func (s *Scorer) ScoreWithBreakdown(e lexicon.Entry, doc Document) Breakdown {
	b := Breakdown{
		SnippetStrong: phraseHits(doc.SnippetText, e.Strong),
		TagsStrong:    phraseHits(doc.TagsText, e.Strong),
		SnippetWeak:   phraseHits(doc.SnippetText, e.Weak) + tokenHits(doc.snippetTokens, e.Weak),
		TagsWeak:      phraseHits(doc.TagsText, e.Weak) + tokenHits(doc.tagsTokens, e.Weak),
	}
	b.Total = s.weights.SnippetStrong*float64(b.SnippetStrong) +
		s.weights.SnippetWeak*float64(b.SnippetWeak) +
		s.weights.TagStrong*float64(b.TagsStrong) +
		s.weights.TagWeak*float64(b.TagsWeak)
	return b
}

// phraseHits counts listed phrases present in text, one hit per phrase.
func phraseHits(text string, phrases []string) int {
	hits := 0
	for _, p := range phrases {
		if strings.Contains(text, p) {
			hits++
		}
	}
	return hits
}

// tokenHits counts listed cues that are members of the token set.
func tokenHits(tokens map[string]struct{}, cues []string) int {
	hits := 0
	for _, c := range cues {
		if _, ok := tokens[c]; ok {
			hits++
		}
	}
	return hits
}

// Ranked pairs a leaf label with its score.
type Ranked struct {
	Leaf  string
	Score float64
}

// Order ranks leaf scores descending. Leaves are pre-sorted by label
// ascending and the descending sort is stable, so equal scores keep
// alphabetical order.
func Order(scores map[string]float64) []Ranked {
	leaves := make([]string, 0, len(scores))
	for leaf := range scores {
		leaves = append(leaves, leaf)
	}
	sort.Strings(leaves)

	ranked := make([]Ranked, len(leaves))
	for i, leaf := range leaves {
		ranked[i] = Ranked{Leaf: leaf, Score: scores[leaf]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Confidence derives a confidence value from the best score and its
// margin over the runner-up. Not a probability: it rewards absolute
// evidence and separation, saturating at 1.0.
func Confidence(best, second float64) float64 {
	c := best/10.0 + (best-second)/10.0
	if c > 1.0 {
		return 1.0
	}
	return c
}
