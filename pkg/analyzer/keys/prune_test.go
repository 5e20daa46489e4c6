package keys

import (
	"reflect"
	"testing"
)

func TestPruneRemovesLeaf(t *testing.T) {
	tree, flat, err := Load([]byte(`{"a": {"b": "x", "c": "y"}, "d": "z"}`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	Prune(tree, pick(t, flat, "a.b"))

	want := map[string]any{
		"a": map[string]any{"c": "y"},
		"d": "z",
	}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("tree = %v, want %v", tree, want)
	}
}

func TestPruneCascadesEmptyParents(t *testing.T) {
	tree, flat, err := Load([]byte(`{"a": {"b": "x", "c": "y"}, "d": "z"}`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	Prune(tree, pick(t, flat, "a.b", "a.c"))

	want := map[string]any{"d": "z"}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("tree = %v, want %v (emptied parent must go)", tree, want)
	}
}

func TestPruneKeepsPartiallyUsedParents(t *testing.T) {
	tree, flat, err := Load([]byte(`{"a": {"b": {"deep": "x"}, "c": "y"}}`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	Prune(tree, pick(t, flat, "a.b.deep"))

	want := map[string]any{"a": map[string]any{"c": "y"}}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("tree = %v, want %v", tree, want)
	}
}

func TestPruneUsesRawSegments(t *testing.T) {
	tree, flat, err := Load([]byte(`{"a": {"b.c": "x", "keep": "y"}}`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// The dotted segment must be removed as one map key, not split.
	Prune(tree, pick(t, flat, "a.b.c"))

	want := map[string]any{"a": map[string]any{"keep": "y"}}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("tree = %v, want %v", tree, want)
	}
}

func TestPruneNothing(t *testing.T) {
	tree, _, err := Load([]byte(`{"a": "x"}`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	Prune(tree, nil)
	if !reflect.DeepEqual(tree, map[string]any{"a": "x"}) {
		t.Errorf("tree changed with no unused keys: %v", tree)
	}
}

// pick returns the flattened entries whose paths match, failing the test if
// any path is missing from the set.
func pick(t *testing.T, flat []FlattenedKey, paths ...string) []FlattenedKey {
	t.Helper()
	var out []FlattenedKey
	for _, p := range paths {
		found := false
		for _, k := range flat {
			if k.Path == p {
				out = append(out, k)
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("key %q not in flattened set", p)
		}
	}
	return out
}
