// Package lexicon holds the per-leaf cue phrases the scorer matches
// against. Strong cues are distinctive genre markers; weak cues are
// common vocabulary that only nudges a score.
//
// The lexicon is configuration, not user input: it is injected into the
// mapper at construction and never mutated afterwards. Only leaves with
// an entry are scorable; everything else scores zero.
package lexicon

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/genremap/pkg/genremap/ingest"
)

// Entry holds the cue phrase lists for one taxonomy leaf.
type Entry struct {
	Strong []string `yaml:"strong" json:"strong"`
	Weak   []string `yaml:"weak" json:"weak"`
}

// Lexicon maps leaf labels to their cue entries.
type Lexicon struct {
	entries map[string]Entry
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{entries: make(map[string]Entry)}
}

// Add registers the entry for a leaf label. Phrases are normalized to
// lowercase; the label is kept verbatim since it must match the taxonomy.
func (l *Lexicon) Add(leaf string, e Entry) {
	l.entries[leaf] = Entry{
		Strong: normalizePhrases(e.Strong),
		Weak:   normalizePhrases(e.Weak),
	}
}

// Entry returns the cue entry for a leaf, if present.
func (l *Lexicon) Entry(leaf string) (Entry, bool) {
	e, ok := l.entries[leaf]
	return e, ok
}

// Len returns the number of leaves with entries.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// LoadFromYAML loads a lexicon from a YAML file.
//
// Expected format:
//
//	entries:
//	  Cyberpunk:
//	    strong: [neon, tokyo, megacorp]
//	    weak: [future, tech, ai]
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config struct {
		Entries map[string]Entry `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	lex := New()
	for leaf, e := range config.Entries {
		lex.Add(leaf, e)
	}
	return lex, nil
}

func normalizePhrases(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = ingest.Normalize(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Default returns the built-in fiction lexicon. It covers the leaves of
// the stock fiction taxonomy; callers with their own taxonomy should
// supply a matching lexicon instead.
func Default() *Lexicon {
	lex := New()

	// Romance
	lex.Add("Slow-burn", Entry{
		Strong: []string{"slow burn", "gradually", "over time", "years of", "long simmering"},
		Weak:   []string{"romance", "love", "relationship", "chemistry"},
	})
	lex.Add("Enemies-to-Lovers", Entry{
		Strong: []string{"hated each other", "enemies", "rivals", "couldn't stand", "they hated"},
		Weak:   []string{"love", "romance", "attraction"},
	})
	lex.Add("Second Chance", Entry{
		Strong: []string{"met again", "years later", "second chance", "reunited", "after the war", "20 years"},
		Weak:   []string{"what could have been", "regret", "lost love", "love"},
	})

	// Thriller
	lex.Add("Espionage", Entry{
		Strong: []string{"agent", "spy", "spies", "kremlin", "classified", "covert", "infiltrate", "stolen drive"},
		Weak:   []string{"mission", "operation", "intel"},
	})
	lex.Add("Psychological", Entry{
		Strong: []string{"mind", "paranoia", "delusion", "unreliable narrator", "therapy", "obsession"},
		Weak:   []string{"thriller", "suspense", "twist"},
	})
	lex.Add("Legal Thriller", Entry{
		Strong: []string{"lawyer", "judge", "court", "trial", "cross-examination", "jury", "case", "lawsuit", "verdict"},
		Weak:   []string{"evidence", "testimony", "legal"},
	})

	// Sci-Fi
	lex.Add("Hard Sci-Fi", Entry{
		Strong: []string{"physics", "ftl", "relativity", "stasis", "metabolic", "engineering", "orbital mechanics"},
		Weak:   []string{"science", "space travel", "technology"},
	})
	lex.Add("Space Opera", Entry{
		Strong: []string{"galaxy", "empire", "starship", "rebellion", "fleet", "interstellar war"},
		Weak:   []string{"space", "adventure", "aliens"},
	})
	lex.Add("Cyberpunk", Entry{
		Strong: []string{"neon", "tokyo", "megacorp", "cybernetic", "hacker", "neon-drenched", "ai operating system"},
		Weak:   []string{"future", "tech", "ai", "dystopia"},
	})

	// Horror
	lex.Add("Psychological Horror", Entry{
		Strong: []string{"hallucination", "insanity", "terror in the mind", "gaslighting", "nightmare reality"},
		Weak:   []string{"fear", "dread", "scary"},
	})
	lex.Add("Gothic", Entry{
		Strong: []string{"victorian", "mansion", "corridors", "whispering", "family dark past", "old house", "gloom"},
		Weak:   []string{"haunted", "house", "cursed", "secrets"},
	})
	lex.Add("Slasher", Entry{
		Strong: []string{"masked killer", "stalks", "teenagers", "summer camp", "kills", "blood", "butcher"},
		Weak:   []string{"killer", "murder", "horror"},
	})

	return lex
}
