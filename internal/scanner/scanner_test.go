package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/localens/localens/pkg/config"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestNewScanner(t *testing.T) {
	s := NewScanner(nil)
	if s == nil {
		t.Fatal("NewScanner(nil) returned nil")
	}
	if s.config == nil {
		t.Error("scanner.config should not be nil when passing nil")
	}

	cfg := config.DefaultConfig()
	s = NewScanner(cfg)
	if s.config != cfg {
		t.Error("scanner.config should be the provided config")
	}
}

func TestScanDir(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"main.go":         "package main\n",
		"app.ts":          "export {}\n",
		"ui/Button.tsx":   "export default null\n",
		"util/helper.py":  "# python\n",
		"readme.txt":      "not source\n",
		"locales/en.json": "{}\n",
	})

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result) != 4 {
		t.Errorf("ScanDir() found %d files, want 4", len(result))
		for _, f := range result {
			t.Logf("  found: %s", f)
		}
	}
}

func TestScanDirExcludesDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"vendor/file.go":        "package x\n",
		"node_modules/index.js": "module.exports = {}\n",
		"dist/app.js":           "x\n",
		"main.go":               "package main\n",
	})

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result) != 1 {
		t.Errorf("ScanDir() found %d files, want 1 (excluded dirs should be skipped)", len(result))
		for _, f := range result {
			t.Logf("  found: %s", f)
		}
	}
}

func TestScanDirExcludesPatterns(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"main.js":    "// code\n",
		"app.min.js": "// minified\n",
	})

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(result) != 1 {
		t.Errorf("ScanDir() found %d files, want 1", len(result))
	}
}

func TestScanDirWithGitignore(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".git"), 0755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	writeFiles(t, tmpDir, map[string]string{
		".gitignore":     "skipme/\n",
		"main.go":        "package main\n",
		"skipme/skip.go": "package skipme\n",
		"src/app.go":     "package src\n",
	})

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = true

	s := NewScanner(cfg)
	result, err := s.ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	for _, f := range result {
		if filepath.Base(f) == "skip.go" {
			t.Error("gitignored file was not excluded")
		}
	}
	if len(result) != 2 {
		t.Errorf("ScanDir() found %d files, want 2", len(result))
	}
}

func TestScanFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"main.go":    "package main\n",
		"readme.txt": "hello\n",
	})

	s := NewScanner(nil)

	ok, err := s.ScanFile(filepath.Join(tmpDir, "main.go"))
	if err != nil || !ok {
		t.Errorf("ScanFile(main.go) = (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = s.ScanFile(filepath.Join(tmpDir, "readme.txt"))
	if err != nil || ok {
		t.Errorf("ScanFile(readme.txt) = (%v, %v), want (false, nil)", ok, err)
	}

	ok, err = s.ScanFile(tmpDir)
	if err != nil || ok {
		t.Errorf("ScanFile(dir) = (%v, %v), want (false, nil)", ok, err)
	}

	if _, err := s.ScanFile("/nonexistent/file.go"); err == nil {
		t.Error("ScanFile() should return error for non-existent file")
	}
}

func TestIsSourceFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a/b/c.ts", true},
		{"x.GO", true},
		{"x.json", false},
		{"Makefile", false},
		{"component.vue", true},
	}
	for _, tt := range tests {
		if got := IsSourceFile(tt.path); got != tt.want {
			t.Errorf("IsSourceFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
