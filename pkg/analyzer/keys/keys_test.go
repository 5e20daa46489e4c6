package keys

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/localens/localens/internal/cancel"
)

func writeSources(t *testing.T, files map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestResolverAnalyze(t *testing.T) {
	_, flat, err := Load([]byte(`{
		"nav": {"home": "Home", "about": "About"},
		"footer": {"legal": "Legal"},
		"orphan": "never used"
	}`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	files := writeSources(t, map[string]string{
		"nav.tsx":    "export const home = t('nav.home')\n",
		"footer.vue": `<span>{{ $t("footer.legal") }}</span>` + "\n",
		"about.ts":   `const title = i18n.t('nav.about')` + "\n",
	})

	r := New()
	analysis, err := r.Analyze(context.Background(), cancel.NewToken(), files, flat, nil)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if analysis.TotalKeys != 4 {
		t.Errorf("TotalKeys = %d, want 4", analysis.TotalKeys)
	}
	if analysis.FilesScanned != 3 {
		t.Errorf("FilesScanned = %d, want 3", analysis.FilesScanned)
	}
	if len(analysis.UnusedKeys) != 1 || analysis.UnusedKeys[0].Path != "orphan" {
		t.Errorf("UnusedKeys = %v, want [orphan]", analysis.UnusedKeys)
	}
	if analysis.DynamicKeyCount != 0 {
		t.Errorf("DynamicKeyCount = %d, want 0", analysis.DynamicKeyCount)
	}
	if got := analysis.MatchedFiles["nav.home"]; len(got) != 1 {
		t.Errorf("MatchedFiles[nav.home] = %v, want one file", got)
	}
}

func TestResolverDynamicCoversDescendants(t *testing.T) {
	_, flat, err := Load([]byte(`{
		"section": {"title": "T", "body": "B"},
		"other": "O"
	}`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	files := writeSources(t, map[string]string{
		"dynamic.ts": "const label = t(`section.${key}`)\n",
	})

	r := New()
	analysis, err := r.Analyze(context.Background(), cancel.NewToken(), files, flat, nil)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if analysis.DynamicKeyCount != 2 {
		t.Errorf("DynamicKeyCount = %d, want 2 (title and body)", analysis.DynamicKeyCount)
	}
	if len(analysis.UnusedKeys) != 1 || analysis.UnusedKeys[0].Path != "other" {
		t.Errorf("UnusedKeys = %v, want [other]", analysis.UnusedKeys)
	}
}

// Matched files report in discovery order, not lexically.
func TestResolverMatchedFilesKeepDiscoveryOrder(t *testing.T) {
	_, flat, err := Load([]byte(`{"greeting": "hi"}`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "z.js"),
		filepath.Join(dir, "m.js"),
		filepath.Join(dir, "a.js"),
	}
	for _, path := range files {
		if err := os.WriteFile(path, []byte("t('greeting')\n"), 0644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	r := New(WithConcurrency(2))
	analysis, err := r.Analyze(context.Background(), cancel.NewToken(), files, flat, nil)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	got := analysis.MatchedFiles["greeting"]
	if !reflect.DeepEqual(got, files) {
		t.Errorf("MatchedFiles = %v, want input order %v", got, files)
	}
}

func TestResolverUnusedKeepsDocumentOrder(t *testing.T) {
	_, flat, err := Load([]byte(`{"zz": "1", "aa": "2", "mm": "3"}`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	files := writeSources(t, map[string]string{"empty.ts": "// nothing here\n"})

	r := New()
	analysis, err := r.Analyze(context.Background(), cancel.NewToken(), files, flat, nil)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	want := []string{"zz", "aa", "mm"}
	for i, k := range analysis.UnusedKeys {
		if k.Path != want[i] {
			t.Fatalf("UnusedKeys order = %v, want %v", analysis.UnusedKeys, want)
		}
	}
}

func TestResolverSkipsUnreadableSilently(t *testing.T) {
	_, flat, err := Load([]byte(`{"a": "x"}`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	files := writeSources(t, map[string]string{"real.ts": "t('a')\n"})
	files = append(files, filepath.Join(t.TempDir(), "missing.ts"))

	r := New()
	analysis, err := r.Analyze(context.Background(), cancel.NewToken(), files, flat, nil)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if analysis.FilesScanned != 1 {
		t.Errorf("FilesScanned = %d, want 1", analysis.FilesScanned)
	}
	if len(analysis.UnusedKeys) != 0 {
		t.Errorf("UnusedKeys = %v, want none", analysis.UnusedKeys)
	}
}

func TestResolverCancelled(t *testing.T) {
	_, flat, err := Load([]byte(`{"a": "x"}`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	files := writeSources(t, map[string]string{"a.ts": "t('a')\n"})

	tok := cancel.NewToken()
	tok.Cancel()

	r := New()
	_, err = r.Analyze(context.Background(), tok, files, flat, nil)
	if !errors.Is(err, cancel.ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}
