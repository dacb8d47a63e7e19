package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "best.json")
	s := NewFileStore(path)

	best, err := s.Load()
	if err != nil || best != 0 {
		t.Fatalf("missing file should load as 0, got %d, %v", best, err)
	}
	if err := s.Save(1234); err != nil {
		t.Fatalf("save: %v", err)
	}
	if best, err = NewFileStore(path).Load(); err != nil || best != 1234 {
		t.Fatalf("expected 1234, got %d, %v", best, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"sticky-orbit-best":1234}` {
		t.Fatalf("unexpected file contents %s", data)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestFileStore_Corrupt(t *testing.T) {
	cases := map[string]string{
		"garbage":  "not json",
		"negative": `{"sticky-orbit-best":-5}`,
		"type":     `{"sticky-orbit-best":"high"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "best.json")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := NewFileStore(path).Load(); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}

func TestFileStore_OtherKeysIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.json")
	if err := os.WriteFile(path, []byte(`{"other":9}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if best, err := NewFileStore(path).Load(); err != nil || best != 0 {
		t.Fatalf("expected 0, got %d, %v", best, err)
	}
}

func TestRecord(t *testing.T) {
	m := &MemStore{}
	if best, err := Record(m, 50); err != nil || best != 50 {
		t.Fatalf("first record: %d, %v", best, err)
	}
	if best, err := Record(m, 30); err != nil || best != 50 {
		t.Fatalf("lower score should keep 50, got %d, %v", best, err)
	}
	if best, err := Record(m, 80); err != nil || best != 80 {
		t.Fatalf("higher score should win, got %d, %v", best, err)
	}
	if m.Saves() != 2 {
		t.Fatalf("expected 2 saves, got %d", m.Saves())
	}
}

func TestRecord_OverwritesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)
	if best, err := Record(s, 12); err != nil || best != 12 {
		t.Fatalf("expected 12, got %d, %v", best, err)
	}
	if best, err := s.Load(); err != nil || best != 12 {
		t.Fatalf("expected repaired file with 12, got %d, %v", best, err)
	}
}
