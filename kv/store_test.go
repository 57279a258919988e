package kv

import (
	"os"
	"path/filepath"
	"testing"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	want := []record{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
	if err := s.Set("records", want); err != nil {
		t.Fatal(err)
	}

	var got []record
	ok, err := s.Get("records", &got)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("Get returned ok=false for an existing key")
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	got := []record{{Name: "untouched"}}
	ok, err := s.Get("absent", &got)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("Get returned ok=true for a missing key")
	}
	if len(got) != 1 || got[0].Name != "untouched" {
		t.Errorf("Get modified the destination on a missing key: %+v", got)
	}
}

func TestFileStoreInvalidContent(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	var got record
	if _, err := s.Get("bad", &got); err == nil {
		t.Error("Get accepted invalid JSON content")
	}
}

func TestFileStoreSubscribe(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	var hits, otherHits int
	cancel := s.Subscribe("records", func() { hits++ })
	s.Subscribe("other", func() { otherHits++ })

	if err := s.Set("records", []record{{Name: "a"}}); err != nil {
		t.Fatal(err)
	}
	if hits != 1 {
		t.Errorf("got %d notifications, want 1", hits)
	}
	if otherHits != 0 {
		t.Errorf("subscriber on a different key got %d notifications, want 0", otherHits)
	}

	cancel()
	if err := s.Set("records", []record{{Name: "b"}}); err != nil {
		t.Fatal(err)
	}
	if hits != 1 {
		t.Errorf("cancelled subscriber got notified, hits=%d", hits)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", record{Name: "first", Count: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", record{Name: "second", Count: 2}); err != nil {
		t.Fatal(err)
	}

	var got record
	if _, err := s.Get("k", &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "second" || got.Count != 2 {
		t.Errorf("got %+v, want the second value", got)
	}
}
