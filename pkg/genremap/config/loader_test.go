package config

import (
	"testing"
)

func TestLoaderDefaults(t *testing.T) {
	taxonomy := writeFile(t, "taxonomy.json", `{"Fiction": {"Sci-Fi": ["Cyberpunk"]}}`)

	loader := &Loader{TaxonomyPath: taxonomy}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if comp.Taxonomy == nil {
		t.Error("taxonomy not loaded")
	}
	if comp.Lexicon == nil || comp.Lexicon.Len() == 0 {
		t.Error("expected built-in lexicon fallback")
	}
	if comp.Detector == nil {
		t.Error("expected built-in detector fallback")
	}
}

func TestLoaderExplicitFiles(t *testing.T) {
	taxonomy := writeFile(t, "taxonomy.json", `{"Fiction": {"Sci-Fi": ["Cyberpunk"]}}`)
	lexicon := writeFile(t, "lexicon.yaml", `
entries:
  Cyberpunk:
    strong: [neon]
    weak: [future]
`)
	signals := writeFile(t, "signals.yaml", `
instructional: ["how to"]
words: [flour]
`)

	loader := &Loader{
		TaxonomyPath: taxonomy,
		LexiconPath:  lexicon,
		SignalsPath:  signals,
	}
	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if comp.Lexicon.Len() != 1 {
		t.Errorf("lexicon entries = %d, want 1", comp.Lexicon.Len())
	}
	if nf, _ := comp.Detector.Detect("how to knead dough", nil); !nf {
		t.Error("custom signals not applied")
	}
}

func TestLoaderMissingTaxonomy(t *testing.T) {
	loader := &Loader{TaxonomyPath: "does/not/exist.json"}
	if _, err := loader.Load(); err == nil {
		t.Error("expected error for missing taxonomy")
	}
}
