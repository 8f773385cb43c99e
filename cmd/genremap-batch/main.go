// genremap-batch runs the mapper across a golden set of cases, prints a
// readable report, and writes the results to a JSON file. With -db the
// run and its results are also recorded in a SQLite database.
package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/genremap/pkg/genremap"
	"github.com/cognicore/genremap/pkg/genremap/config"
	"github.com/cognicore/genremap/pkg/genremap/store"
	"github.com/cognicore/genremap/pkg/genremap/store/sqlite"
)

func main() {
	var (
		taxonomyPath = flag.String("taxonomy", "data/taxonomy.json", "taxonomy file (JSON or YAML)")
		casesPath    = flag.String("cases", "data/test_cases.json", "test case file (JSON or YAML)")
		lexiconPath  = flag.String("lexicon", "", "lexicon YAML (default: built-in fiction lexicon)")
		signalsPath  = flag.String("signals", "", "non-fiction signals YAML (default: built-in)")
		outPath      = flag.String("out", "outputs/results.json", "output JSON path")
		dbPath       = flag.String("db", "", "optional SQLite path to record the run")
	)
	flag.Parse()

	loader := &config.Loader{
		TaxonomyPath: *taxonomyPath,
		LexiconPath:  *lexiconPath,
		SignalsPath:  *signalsPath,
	}
	comp, err := loader.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	cases, err := config.LoadCases(*casesPath)
	if err != nil {
		log.Fatalf("load cases: %v", err)
	}

	mapper, err := genremap.New(genremap.Options{
		Taxonomy: comp.Taxonomy,
		Lexicon:  comp.Lexicon,
		Detector: comp.Detector,
	})
	if err != nil {
		log.Fatalf("build mapper: %v", err)
	}

	fmt.Println("\n=== Adaptive Genre Taxonomy Mapper: Results ===")
	results := make([]genremap.MappingResult, 0, len(cases))
	for _, c := range cases {
		res := mapper.Map(c.ID, c.UserTags, c.Snippet)
		res.Confidence = round4(res.Confidence)
		results = append(results, res)
		printResult(res)
	}

	if err := writeJSON(*outPath, results); err != nil {
		log.Fatalf("write results: %v", err)
	}
	fmt.Printf("\nSaved JSON results to: %s\n", *outPath)

	if *dbPath != "" {
		if err := recordRun(*dbPath, *taxonomyPath, results); err != nil {
			log.Fatalf("record run: %v", err)
		}
		fmt.Printf("Recorded run in: %s\n", *dbPath)
	}
}

func printResult(res genremap.MappingResult) {
	fmt.Printf("\nCase %d\n", res.CaseID)
	fmt.Printf("  Tags      : %v\n", res.UserTags)
	fmt.Printf("  Snippet   : %s\n", res.Snippet)
	fmt.Printf("  Mapped    : %s\n", res.Mapped)
	if res.Path != nil {
		fmt.Printf("  Path      : %s\n", strings.Join(res.Path, " / "))
	}
	fmt.Printf("  Confidence: %.2f\n", res.Confidence)
	if len(res.Scores) > 0 {
		fmt.Printf("  TopScores : %v\n", res.Scores)
	}
	fmt.Printf("  Reasoning : %s\n", res.Reasoning)
	fmt.Println(strings.Repeat("-", 70))
}

func writeJSON(path string, results []genremap.MappingResult) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func recordRun(dbPath, taxonomyPath string, results []genremap.MappingResult) error {
	ctx := context.Background()

	st, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	run := store.Run{
		ID:           ulid.MustNew(ulid.Now(), ulid.Monotonic(rand.Reader, 0)).String(),
		StartedAt:    time.Now(),
		TaxonomyPath: taxonomyPath,
		Cases:        len(results),
	}
	if err := st.SaveRun(ctx, run); err != nil {
		return err
	}

	for _, res := range results {
		if err := st.SaveResult(ctx, store.Result{
			RunID:      run.ID,
			CaseID:     res.CaseID,
			UserTags:   res.UserTags,
			Snippet:    res.Snippet,
			Mapped:     res.Mapped,
			Path:       res.Path,
			Confidence: res.Confidence,
			Reasoning:  res.Reasoning,
			TopScores:  res.Scores,
		}); err != nil {
			return err
		}
	}
	return nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
