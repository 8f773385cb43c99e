// Package config loads the taxonomy, lexicon, detector signals, and
// golden-set cases from typed, validated files. Malformed input is
// rejected here, before engine construction.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/genremap/pkg/genremap/internalerr"
	"github.com/cognicore/genremap/pkg/genremap/nonfiction"
	"github.com/cognicore/genremap/pkg/genremap/taxonomy"
)

// LoadTaxonomy loads a taxonomy tree from a JSON or YAML file, chosen
// by extension. The shape is {top: {mid: [leaf, ...]}}.
func LoadTaxonomy(path string) (taxonomy.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tree taxonomy.Tree
	if err := unmarshalByExt(path, data, &tree); err != nil {
		return nil, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}
	if len(tree) == 0 {
		return nil, fmt.Errorf("taxonomy %s is empty: %w", path, internalerr.ErrInvalidConfig)
	}
	return tree, nil
}

// Case is one golden-set input.
type Case struct {
	ID       int      `json:"id" yaml:"id"`
	UserTags []string `json:"user_tags" yaml:"user_tags"`
	Snippet  string   `json:"snippet" yaml:"snippet"`
}

// LoadCases loads a case list from a JSON or YAML file.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cases []Case
	if err := unmarshalByExt(path, data, &cases); err != nil {
		return nil, fmt.Errorf("parse cases %s: %w", path, err)
	}
	return cases, nil
}

// LoadSignals loads non-fiction detector signals from a YAML file.
func LoadSignals(path string) (nonfiction.Signals, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nonfiction.Signals{}, err
	}

	var sig nonfiction.Signals
	if err := yaml.Unmarshal(data, &sig); err != nil {
		return nonfiction.Signals{}, fmt.Errorf("parse signals %s: %w", path, err)
	}
	return sig, nil
}

func unmarshalByExt(path string, data []byte, v interface{}) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal(data, v)
	default:
		return yaml.Unmarshal(data, v)
	}
}
