// Package taxonomy models the three-level genre taxonomy and its
// flattened leaf index. The tree is immutable after flattening; the
// mapper only ever consults the flat form.
package taxonomy

import (
	"fmt"
	"sort"

	"github.com/cognicore/genremap/pkg/genremap/internalerr"
)

// Tree is the nested taxonomy: top category → mid category → leaf labels.
type Tree map[string]map[string][]string

// Path locates a leaf inside the tree.
type Path struct {
	Top  string
	Mid  string
	Leaf string
}

// Slice returns the path as [top, mid, leaf].
func (p Path) Slice() []string {
	return []string{p.Top, p.Mid, p.Leaf}
}

// String renders the path as "Top/Mid/Leaf".
func (p Path) String() string {
	return p.Top + "/" + p.Mid + "/" + p.Leaf
}

// Flat maps each leaf label to its full path.
type Flat map[string]Path

// Flatten validates the tree and builds the leaf index.
//
// Leaf labels must be unique across the entire tree: they are the flat
// lookup key, and a silent overwrite would let one path shadow another.
// A duplicate fails with both conflicting paths named. An empty tree
// (no leaves at all) is a configuration error as well.
func Flatten(t Tree) (Flat, error) {
	flat := make(Flat)

	// Walk in sorted order so duplicate errors are deterministic.
	for _, top := range sortedKeys(t) {
		mids := t[top]
		for _, mid := range sortedKeys(mids) {
			for _, leaf := range mids[mid] {
				p := Path{Top: top, Mid: mid, Leaf: leaf}
				if prev, ok := flat[leaf]; ok {
					return nil, fmt.Errorf("taxonomy: leaf %q appears at %s and %s: %w",
						leaf, prev, p, internalerr.ErrDuplicate)
				}
				flat[leaf] = p
			}
		}
	}

	if len(flat) == 0 {
		return nil, fmt.Errorf("taxonomy: no leaves: %w", internalerr.ErrInvalidConfig)
	}

	return flat, nil
}

// Leaves returns all leaf labels in ascending order.
func (f Flat) Leaves() []string {
	leaves := make([]string, 0, len(f))
	for leaf := range f {
		leaves = append(leaves, leaf)
	}
	sort.Strings(leaves)
	return leaves
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
