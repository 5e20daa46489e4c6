package cache

import (
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	content := []byte("package main\n")
	hash := HashBytes(content)
	payload := []byte(`{"physical":1}`)

	if _, ok := c.GetWithHash("src/main.go", hash); ok {
		t.Fatal("GetWithHash() hit on empty cache")
	}

	if err := c.Put("src/main.go", hash, payload); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, ok := c.GetWithHash("src/main.go", hash)
	if !ok {
		t.Fatal("GetWithHash() missed after Put")
	}
	if string(got) != string(payload) {
		t.Errorf("cached data = %q, want %q", got, payload)
	}
}

func TestCacheHashMismatch(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := c.Put("a.go", HashBytes([]byte("old")), []byte("data")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	if _, ok := c.GetWithHash("a.go", HashBytes([]byte("new"))); ok {
		t.Error("GetWithHash() should miss when content hash changed")
	}
}

func TestCacheDisabled(t *testing.T) {
	c, err := New("", 1, false)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := c.Put("a.go", "h", []byte("data")); err != nil {
		t.Errorf("disabled Put() error: %v", err)
	}
	if _, ok := c.GetWithHash("a.go", "h"); ok {
		t.Error("disabled cache returned a hit")
	}
}

func TestCacheClear(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	hash := HashBytes([]byte("x"))
	if err := c.Put("a.go", hash, []byte("1")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, ok := c.GetWithHash("a.go", hash); ok {
		t.Error("GetWithHash() hit after Clear")
	}
}

func TestHashBytesStable(t *testing.T) {
	a := HashBytes([]byte("same"))
	b := HashBytes([]byte("same"))
	if a != b {
		t.Errorf("HashBytes not stable: %s != %s", a, b)
	}
	if a == HashBytes([]byte("other")) {
		t.Error("different content produced same hash")
	}
}
