// Package genremap maps a short narrative description (snippet plus
// user tags) onto a leaf of a fixed genre taxonomy, or declines.
//
// Three rules govern every decision:
//   - Context Wins: snippet evidence is weighted above tag evidence.
//   - Honesty: non-fiction input and low-confidence rankings return the
//     unmapped sentinel instead of a forced guess.
//   - Hierarchy: only leaves present in the supplied taxonomy are ever
//     returned; paths are looked up, never synthesized.
package genremap

import (
	"fmt"

	"github.com/cognicore/genremap/pkg/genremap/explain"
	"github.com/cognicore/genremap/pkg/genremap/internalerr"
	"github.com/cognicore/genremap/pkg/genremap/lexicon"
	"github.com/cognicore/genremap/pkg/genremap/nonfiction"
	"github.com/cognicore/genremap/pkg/genremap/rank"
	"github.com/cognicore/genremap/pkg/genremap/taxonomy"
)

// Unmapped is the sentinel label returned when no leaf can be chosen
// honestly.
const Unmapped = "[UNMAPPED]"

// DefaultThreshold is the minimum best score required to map.
const DefaultThreshold = 2.5

// DefaultTopN caps how many leaf scores a result retains.
const DefaultTopN = 5

// MappingResult is the outcome of one mapping request. Path is non-nil
// exactly when Mapped is not the Unmapped sentinel, and its last element
// equals Mapped.
type MappingResult struct {
	CaseID     int                `json:"id"`
	UserTags   []string           `json:"user_tags"`
	Snippet    string             `json:"snippet"`
	Mapped     string             `json:"mapped"`
	Path       []string           `json:"path"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"top_scores"`
	Reasoning  string             `json:"reasoning"`
}

// Options configures a Mapper. Taxonomy is required; every other field
// falls back to the stock fiction configuration. Threshold and TopN
// follow the zero-means-default convention: a zero value selects
// DefaultThreshold / DefaultTopN (a literal zero threshold is not
// configurable), and negative values fail construction.
type Options struct {
	Taxonomy  taxonomy.Tree
	Lexicon   *lexicon.Lexicon     // nil: lexicon.Default()
	Detector  *nonfiction.Detector // nil: nonfiction.DefaultSignals()
	Weights   rank.Weights         // zero value: rank.DefaultWeights()
	Threshold float64              // 0: DefaultThreshold; must be >= 0
	TopN      int                  // 0: DefaultTopN; must be >= 0
	Rules     []explain.Rule       // nil: explain.DefaultRules()
}

// Mapper is the classification engine. It holds only immutable state
// after construction, so Map is safe for concurrent use.
type Mapper struct {
	flat      taxonomy.Flat
	leaves    []string // ascending, fixed candidate order
	lex       *lexicon.Lexicon
	detector  *nonfiction.Detector
	scorer    *rank.Scorer
	rules     []explain.Rule
	threshold float64
	topN      int
}

// New validates the taxonomy and assembles a Mapper.
func New(opts Options) (*Mapper, error) {
	flat, err := taxonomy.Flatten(opts.Taxonomy)
	if err != nil {
		return nil, fmt.Errorf("genremap: %w", err)
	}

	weights := opts.Weights
	if weights == (rank.Weights{}) {
		weights = rank.DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("genremap: %w", err)
	}

	lex := opts.Lexicon
	if lex == nil {
		lex = lexicon.Default()
	}

	detector := opts.Detector
	if detector == nil {
		detector = nonfiction.NewDetector(nonfiction.DefaultSignals())
	}

	threshold := opts.Threshold
	if threshold < 0 {
		return nil, fmt.Errorf("genremap: threshold %v must be >= 0: %w", threshold, internalerr.ErrInvalidConfig)
	}
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	topN := opts.TopN
	if topN < 0 {
		return nil, fmt.Errorf("genremap: top-n %d must be >= 0: %w", topN, internalerr.ErrInvalidConfig)
	}
	if topN == 0 {
		topN = DefaultTopN
	}

	rules := opts.Rules
	if rules == nil {
		rules = explain.DefaultRules()
	}

	return &Mapper{
		flat:      flat,
		leaves:    flat.Leaves(),
		lex:       lex,
		detector:  detector,
		scorer:    rank.NewScorer(weights),
		rules:     rules,
		threshold: threshold,
		topN:      topN,
	}, nil
}

// Map classifies one case. It never fails: every input yields a
// well-formed result, with the Unmapped sentinel for non-fiction input
// and for rankings below the threshold. Deterministic for fixed
// taxonomy, lexicon, and inputs.
func (m *Mapper) Map(caseID int, userTags []string, snippet string) MappingResult {
	res := MappingResult{
		CaseID:   caseID,
		UserTags: userTags,
		Snippet:  snippet,
	}

	// Honesty rule, non-fiction branch: hard veto before any scoring.
	if nf, reason := m.detector.Detect(snippet, userTags); nf {
		res.Mapped = Unmapped
		res.Confidence = 0.0
		res.Scores = map[string]float64{}
		res.Reasoning = reason + " => Output " + Unmapped + "."
		return res
	}

	doc := rank.NewDocument(snippet, userTags)

	// Every taxonomy leaf is a candidate; leaves without a lexicon
	// entry score zero but stay in the set for the tie-break order.
	scores := make(map[string]float64, len(m.leaves))
	for _, leaf := range m.leaves {
		if entry, ok := m.lex.Entry(leaf); ok {
			scores[leaf] = m.scorer.Score(entry, doc)
		} else {
			scores[leaf] = 0.0
		}
	}

	ranked := rank.Order(scores)
	best := ranked[0]
	second := rank.Ranked{}
	if len(ranked) > 1 {
		second = ranked[1]
	}

	res.Confidence = rank.Confidence(best.Score, second.Score)
	res.Scores = topScores(ranked, m.topN)

	// Honesty rule, low-confidence branch: confidence stays as
	// computed, unlike the non-fiction veto.
	if best.Score < m.threshold {
		res.Mapped = Unmapped
		res.Reasoning = "No strong matches to any existing taxonomy leaf; best score is too low to map responsibly. " +
			"Honesty Rule => Output " + Unmapped + "."
		return res
	}

	res.Mapped = best.Leaf
	res.Path = m.flat[best.Leaf].Slice()
	res.Reasoning = explain.Narrate(explain.Context{
		CaseID:      caseID,
		Best:        best.Leaf,
		BestScore:   best.Score,
		Second:      second.Leaf,
		SecondScore: second.Score,
		SnippetText: doc.SnippetText,
		TagsText:    doc.TagsText,
	}, m.rules)

	return res
}

// Leaves returns the taxonomy's leaf labels in ascending order.
func (m *Mapper) Leaves() []string {
	out := make([]string, len(m.leaves))
	copy(out, m.leaves)
	return out
}

// Path returns the full taxonomy path of a leaf, if it exists.
func (m *Mapper) Path(leaf string) (taxonomy.Path, bool) {
	p, ok := m.flat[leaf]
	return p, ok
}

func topScores(ranked []rank.Ranked, n int) map[string]float64 {
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	top := make(map[string]float64, len(ranked))
	for _, r := range ranked {
		top[r.Leaf] = r.Score
	}
	return top
}
