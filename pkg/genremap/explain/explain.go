// Package explain assembles the human-readable reasoning narrative for
// a mapped result. Override rules are presentation only: they annotate
// a decision the scorer has already made and can never change it.
package explain

import (
	"fmt"
	"strings"
)

// Context carries the decided outcome and the normalized inputs for
// rule predicates.
type Context struct {
	CaseID      int
	Best        string
	BestScore   float64
	Second      string
	SecondScore float64
	SnippetText string // normalized
	TagsText    string // normalized
}

// Rule is one situational annotation: when Match returns true for a
// decided context, Note is appended to the narrative.
type Rule struct {
	Name  string
	Match func(Context) bool
	Note  string
}

// DefaultRules returns the stock tag/snippet-tension annotations.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "action-tag-courtroom",
			Match: func(c Context) bool {
				return strings.Contains(c.TagsText, "action") &&
					c.Best == "Legal Thriller" &&
					containsAny(c.SnippetText, []string{"lawyer", "judge", "court", "cross-examination"})
			},
			Note: "Context Wins: although a tag says 'Action', the snippet is clearly courtroom/legal, " +
				"so we map to 'Legal Thriller'.",
		},
		{
			Name: "ghost-tag-slasher",
			Match: func(c Context) bool {
				return strings.Contains(c.TagsText, "ghost") &&
					c.Best == "Slasher" &&
					containsAny(c.SnippetText, []string{"masked killer", "stalks", "summer camp"})
			},
			Note: "Tags can mislead: 'Ghost' appears in tags, but the snippet describes a masked killer " +
				"stalking teens, a classic Slasher setup.",
		},
	}
}

// Narrate builds the reasoning string for a mapped result: top match and
// runner-up, any matching rule notes in order, and the closing hierarchy
// statement, joined by single spaces.
func Narrate(c Context, rules []Rule) string {
	parts := []string{
		fmt.Sprintf("Top match: '%s' (score=%.1f); runner-up: '%s' (score=%.1f).",
			c.Best, c.BestScore, c.Second, c.SecondScore),
	}

	for _, r := range rules {
		if r.Match != nil && r.Match(c) {
			parts = append(parts, r.Note)
		}
	}

	parts = append(parts, "Hierarchy Rule: returned a leaf that exists in the provided taxonomy (no invented sub-genres).")
	return strings.Join(parts, " ")
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
