package config

import (
	"fmt"

	"github.com/cognicore/genremap/pkg/genremap/lexicon"
	"github.com/cognicore/genremap/pkg/genremap/nonfiction"
	"github.com/cognicore/genremap/pkg/genremap/taxonomy"
)

// Loader loads all configuration files and constructs components.
// TaxonomyPath is required; LexiconPath and SignalsPath fall back to
// the built-in defaults when empty.
type Loader struct {
	TaxonomyPath string
	LexiconPath  string
	SignalsPath  string
}

// Components holds all loaded configuration components.
type Components struct {
	Taxonomy taxonomy.Tree
	Lexicon  *lexicon.Lexicon
	Detector *nonfiction.Detector
}

// Load reads all configuration files and returns initialized components.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	tree, err := LoadTaxonomy(l.TaxonomyPath)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	comp.Taxonomy = tree

	if l.LexiconPath != "" {
		lex, err := lexicon.LoadFromYAML(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = lex
	} else {
		comp.Lexicon = lexicon.Default()
	}

	if l.SignalsPath != "" {
		sig, err := LoadSignals(l.SignalsPath)
		if err != nil {
			return nil, fmt.Errorf("load signals: %w", err)
		}
		comp.Detector = nonfiction.NewDetector(sig)
	} else {
		comp.Detector = nonfiction.NewDetector(nonfiction.DefaultSignals())
	}

	return comp, nil
}
