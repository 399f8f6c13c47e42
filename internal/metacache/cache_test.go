package metacache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"streamfetch/internal/video"
)

func testVideo(id, title string) video.Video {
	return video.Video{
		UniqueID:       id,
		Title:          title,
		Duration:       "00.41.30",
		PublishDate:    "2023-03-07",
		PublishTime:    "09.05.02",
		Author:         "Ada Lovelace",
		AuthorEmail:    "ada@example.com",
		TotalChunks:    41.5,
		PlaybackURL:    "https://stream.example.com/" + id + "/manifest.m3u8",
		PosterImageURL: "https://stream.example.com/" + id + "/poster.jpg",
	}
}

func TestStoreAndLookup(t *testing.T) {
	cache := New(filepath.Join(t.TempDir(), "videoMetadata.json"), nil)

	want := testVideo("guid-1", "Weekly Standup")
	if err := cache.Store(want); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, ok := cache.Lookup("guid-1")
	if !ok {
		t.Fatal("Lookup missed stored record")
	}
	if got != want {
		t.Errorf("Lookup = %+v, want %+v", got, want)
	}
}

func TestLookupMiss(t *testing.T) {
	cache := New(filepath.Join(t.TempDir(), "videoMetadata.json"), nil)

	if _, ok := cache.Lookup("absent"); ok {
		t.Error("Lookup should miss on empty cache")
	}
	if _, ok := cache.Lookup(""); ok {
		t.Error("Lookup should miss on empty id")
	}
}

func TestLookupReturnsFirstMatch(t *testing.T) {
	cache := New(filepath.Join(t.TempDir(), "videoMetadata.json"), nil)

	first := testVideo("guid-1", "First Title")
	second := testVideo("guid-1", "Second Title")
	if err := cache.Store(first); err != nil {
		t.Fatalf("Store first: %v", err)
	}
	if err := cache.Store(second); err != nil {
		t.Fatalf("Store second: %v", err)
	}

	got, ok := cache.Lookup("guid-1")
	if !ok {
		t.Fatal("Lookup missed")
	}
	if got.Title != "First Title" {
		t.Errorf("Lookup returned %q, want first stored record", got.Title)
	}
	if len(cache.All()) != 2 {
		t.Errorf("All() length = %d, want 2 (store never deduplicates)", len(cache.All()))
	}
}

func TestMalformedFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videoMetadata.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	cache := New(path, nil)
	if _, ok := cache.Lookup("guid-1"); ok {
		t.Error("Lookup should miss on corrupt cache")
	}

	// Store must still succeed, replacing the corrupt file.
	if err := cache.Store(testVideo("guid-1", "Recovered")); err != nil {
		t.Fatalf("Store over corrupt file: %v", err)
	}
	if _, ok := cache.Lookup("guid-1"); !ok {
		t.Error("record missing after recovery")
	}
}

func TestStoreRejectsEmptyID(t *testing.T) {
	cache := New(filepath.Join(t.TempDir(), "videoMetadata.json"), nil)
	if err := cache.Store(video.Video{Title: "nameless"}); err == nil {
		t.Error("expected error for empty unique id")
	}
}

func TestStoreWritesPrettyJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videoMetadata.json")
	cache := New(path, nil)

	if err := cache.Store(testVideo("guid-1", "Weekly Standup")); err != nil {
		t.Fatalf("Store: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("store is not a JSON array: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("record count = %d, want 1", len(records))
	}
	if records[0]["uniqueId"] != "guid-1" {
		t.Errorf("uniqueId field = %v", records[0]["uniqueId"])
	}
	if _, present := records[0]["captionsUrl"]; present {
		t.Error("captionsUrl should be omitted when absent")
	}
	if data[0] != '[' || data[1] != '\n' {
		t.Error("store file should be pretty-printed")
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videoMetadata.json")
	cache := New(path, nil)

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}

	if err := cache.Store(testVideo("guid-1", "Weekly Standup")); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(cache.All()) != 0 {
		t.Error("cache should be empty after Clear")
	}
}
