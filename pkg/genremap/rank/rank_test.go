package rank

import (
	"errors"
	"testing"

	"github.com/cognicore/genremap/pkg/genremap/internalerr"
	"github.com/cognicore/genremap/pkg/genremap/lexicon"
)

func TestWeightsValidate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}

	bad := []Weights{
		{SnippetStrong: 1.5, SnippetWeak: 1.5, TagStrong: 4.0, TagWeak: 0.5}, // tags above snippet
		{SnippetStrong: 4.0, SnippetWeak: 2.0, TagStrong: 1.5, TagWeak: 0.5}, // weak above tag-strong
		{SnippetStrong: 4.0, SnippetWeak: 0.5, TagStrong: 1.5, TagWeak: 0.5}, // snippet-weak == tag-weak
		{},
	}
	for i, w := range bad {
		if err := w.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("case %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}
}

func TestScoreComponents(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	entry := lexicon.Entry{
		Strong: []string{"neon", "tokyo"},
		Weak:   []string{"future", "ai"},
	}
	doc := NewDocument("Neon lights over Tokyo in the future.", []string{"AI"})

	b := scorer.ScoreWithBreakdown(entry, doc)
	if b.SnippetStrong != 2 {
		t.Errorf("SnippetStrong = %d, want 2", b.SnippetStrong)
	}
	if b.TagsStrong != 0 {
		t.Errorf("TagsStrong = %d, want 0", b.TagsStrong)
	}
	// "future": substring + token. "ai": neither in snippet.
	if b.SnippetWeak != 2 {
		t.Errorf("SnippetWeak = %d, want 2", b.SnippetWeak)
	}
	// "ai": substring + token of tag text.
	if b.TagsWeak != 2 {
		t.Errorf("TagsWeak = %d, want 2", b.TagsWeak)
	}

	// 4.0*2 + 1.5*2 + 1.5*0 + 0.5*2
	if b.Total != 12.0 {
		t.Errorf("Total = %v, want 12.0", b.Total)
	}
	if got := scorer.Score(entry, doc); got != b.Total {
		t.Errorf("Score = %v, breakdown total = %v", got, b.Total)
	}
}

// A weak single word present in the text counts both as a substring hit
// and as a token hit; a multi-word weak phrase only matches as substring.
func TestWeakCueDoubleCount(t *testing.T) {
	scorer := NewScorer(DefaultWeights())

	single := lexicon.Entry{Weak: []string{"love"}}
	b := scorer.ScoreWithBreakdown(single, NewDocument("love conquers all", nil))
	if b.SnippetWeak != 2 {
		t.Errorf("single weak word: SnippetWeak = %d, want 2", b.SnippetWeak)
	}

	multi := lexicon.Entry{Weak: []string{"space travel"}}
	b = scorer.ScoreWithBreakdown(multi, NewDocument("space travel is hard", nil))
	if b.SnippetWeak != 1 {
		t.Errorf("multi-word weak phrase: SnippetWeak = %d, want 1", b.SnippetWeak)
	}
}

// Context Wins: the same strong cue is worth more in the snippet than in
// the tags.
func TestContextWins(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	entry := lexicon.Entry{Strong: []string{"dragon"}}

	inSnippet := scorer.Score(entry, NewDocument("a dragon wakes", nil))
	inTags := scorer.Score(entry, NewDocument("a beast wakes", []string{"Dragon"}))

	if inSnippet <= inTags {
		t.Errorf("snippet evidence (%v) must outweigh tag evidence (%v)", inSnippet, inTags)
	}
}

func TestStrongPhraseCountsOncePerListing(t *testing.T) {
	scorer := NewScorer(DefaultWeights())
	entry := lexicon.Entry{Strong: []string{"neon"}}

	b := scorer.ScoreWithBreakdown(entry, NewDocument("neon neon neon", nil))
	if b.SnippetStrong != 1 {
		t.Errorf("SnippetStrong = %d, want 1 (presence, not occurrences)", b.SnippetStrong)
	}
}

func TestOrderTieBreak(t *testing.T) {
	scores := map[string]float64{
		"Slasher":   3.0,
		"Gothic":    3.0,
		"Cyberpunk": 7.5,
		"Espionage": 0.0,
	}

	ranked := Order(scores)
	want := []Ranked{
		{"Cyberpunk", 7.5},
		{"Gothic", 3.0},
		{"Slasher", 3.0},
		{"Espionage", 0.0},
	}
	for i, r := range want {
		if ranked[i] != r {
			t.Errorf("ranked[%d] = %+v, want %+v", i, ranked[i], r)
		}
	}
}

func TestOrderDeterministic(t *testing.T) {
	scores := map[string]float64{"A": 1, "B": 1, "C": 1, "D": 1, "E": 1}
	first := Order(scores)
	for i := 0; i < 50; i++ {
		again := Order(scores)
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("iteration %d: order changed at %d: %+v vs %+v", i, j, first[j], again[j])
			}
		}
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		best, second, want float64
	}{
		{0, 0, 0},
		{5, 2.5, 0.75},
		{10, 10, 1.0},
		{20, 4, 1.0}, // saturates
		{2.5, 0, 0.5},
	}
	for _, tt := range tests {
		if got := Confidence(tt.best, tt.second); got != tt.want {
			t.Errorf("Confidence(%v, %v) = %v, want %v", tt.best, tt.second, got, tt.want)
		}
	}
}

func TestConfidenceBounds(t *testing.T) {
	for best := 0.0; best <= 40; best += 0.5 {
		for second := 0.0; second <= best; second += 0.5 {
			c := Confidence(best, second)
			if c < 0 || c > 1 {
				t.Fatalf("Confidence(%v, %v) = %v out of [0,1]", best, second, c)
			}
		}
	}
}
