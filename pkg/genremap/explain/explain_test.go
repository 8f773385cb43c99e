package explain

import (
	"strings"
	"testing"
)

func TestNarrateBase(t *testing.T) {
	got := Narrate(Context{
		Best:        "Cyberpunk",
		BestScore:   20.0,
		Second:      "Enemies-to-Lovers",
		SecondScore: 4.0,
	}, nil)

	if !strings.HasPrefix(got, "Top match: 'Cyberpunk' (score=20.0); runner-up: 'Enemies-to-Lovers' (score=4.0).") {
		t.Errorf("unexpected narrative prefix: %q", got)
	}
	if !strings.HasSuffix(got, "Hierarchy Rule: returned a leaf that exists in the provided taxonomy (no invented sub-genres).") {
		t.Errorf("narrative missing hierarchy closing: %q", got)
	}
}

func TestNarrateAppliesMatchingRules(t *testing.T) {
	rules := []Rule{
		{
			Name:  "fires",
			Match: func(c Context) bool { return c.Best == "Slasher" },
			Note:  "NOTE-A",
		},
		{
			Name:  "does not fire",
			Match: func(c Context) bool { return false },
			Note:  "NOTE-B",
		},
		{Name: "nil match", Note: "NOTE-C"},
	}

	got := Narrate(Context{Best: "Slasher"}, rules)
	if !strings.Contains(got, "NOTE-A") {
		t.Errorf("matching rule note missing: %q", got)
	}
	if strings.Contains(got, "NOTE-B") || strings.Contains(got, "NOTE-C") {
		t.Errorf("non-matching rule note present: %q", got)
	}
}

func TestDefaultRuleActionTagCourtroom(t *testing.T) {
	rules := DefaultRules()
	ctx := Context{
		Best:        "Legal Thriller",
		TagsText:    "action",
		SnippetText: "a young lawyer faces the judge in court",
	}

	got := Narrate(ctx, rules)
	if !strings.Contains(got, "Context Wins: although a tag says 'Action'") {
		t.Errorf("courtroom override note missing: %q", got)
	}

	// The same inputs with a different winner must not fire the rule.
	ctx.Best = "Espionage"
	got = Narrate(ctx, rules)
	if strings.Contains(got, "Context Wins: although a tag says 'Action'") {
		t.Errorf("override note fired for wrong winner: %q", got)
	}
}

func TestDefaultRuleGhostTagSlasher(t *testing.T) {
	ctx := Context{
		Best:        "Slasher",
		TagsText:    "ghost horror",
		SnippetText: "a masked killer stalks teenagers at a summer camp",
	}

	got := Narrate(ctx, DefaultRules())
	if !strings.Contains(got, "Tags can mislead: 'Ghost' appears in tags") {
		t.Errorf("slasher override note missing: %q", got)
	}
}
