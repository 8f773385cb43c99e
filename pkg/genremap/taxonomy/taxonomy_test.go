package taxonomy

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/genremap/pkg/genremap/internalerr"
)

func TestFlatten(t *testing.T) {
	tree := Tree{
		"Fiction": {
			"Sci-Fi":   {"Cyberpunk", "Space Opera"},
			"Thriller": {"Espionage"},
		},
	}

	flat, err := Flatten(tree)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if len(flat) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(flat))
	}

	want := Path{Top: "Fiction", Mid: "Sci-Fi", Leaf: "Cyberpunk"}
	if flat["Cyberpunk"] != want {
		t.Errorf("Cyberpunk path = %+v, want %+v", flat["Cyberpunk"], want)
	}
	if got := flat["Cyberpunk"].Slice(); !reflect.DeepEqual(got, []string{"Fiction", "Sci-Fi", "Cyberpunk"}) {
		t.Errorf("Slice() = %v", got)
	}
}

func TestFlattenDuplicateLeaf(t *testing.T) {
	tree := Tree{
		"Fiction": {
			"Romance":  {"Love Story"},
			"Thriller": {"Love Story"},
		},
	}

	_, err := Flatten(tree)
	if !errors.Is(err, internalerr.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	// The error names both conflicting paths.
	for _, path := range []string{"Fiction/Romance/Love Story", "Fiction/Thriller/Love Story"} {
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error %q does not name path %q", err, path)
		}
	}
}

func TestFlattenEmpty(t *testing.T) {
	for name, tree := range map[string]Tree{
		"nil tree":  nil,
		"no leaves": {"Fiction": {"Romance": {}}},
	} {
		if _, err := Flatten(tree); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestLeavesSorted(t *testing.T) {
	tree := Tree{
		"Fiction": {
			"Horror": {"Slasher", "Gothic"},
			"Sci-Fi": {"Cyberpunk"},
		},
	}

	flat, err := Flatten(tree)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}

	want := []string{"Cyberpunk", "Gothic", "Slasher"}
	if got := flat.Leaves(); !reflect.DeepEqual(got, want) {
		t.Errorf("Leaves() = %v, want %v", got, want)
	}
}
