package cache

import (
	"context"
	"testing"
	"time"

	"github.com/gilleslandais/astropy/pkg/errors"
	"github.com/gilleslandais/astropy/pkg/logging"
)

const testURL = "https://cds.unistra.fr/cgi-bin/nph-sesame/SNV?castor"

// TestStore_MemoryRoundTrip tests Get and Set without a directory.
func TestStore_MemoryRoundTrip(t *testing.T) {
	s, err := New("", 5*time.Minute, 10*time.Minute)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if _, found := s.Get(testURL); found {
		t.Error("expected miss before Set")
	}

	body := []byte("%J 113.649 +31.888 = x")
	if err := s.Set(testURL, body); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, found := s.Get(testURL)
	if !found {
		t.Fatal("expected hit after Set")
	}
	if string(got) != string(body) {
		t.Errorf("expected %q, got %q", body, got)
	}
}

// TestStore_DiskPersistence tests that entries survive a new store over the
// same directory, as a process restart would see it.
func TestStore_DiskPersistence(t *testing.T) {
	dir := t.TempDir()

	first, err := New(dir, 5*time.Minute, 10*time.Minute)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	body := []byte("%J 170.57 +59.07 = x")
	if err := first.Set(testURL, body); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	second, err := New(dir, 5*time.Minute, 10*time.Minute)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	got, found := second.Get(testURL)
	if !found {
		t.Fatal("expected disk hit in fresh store")
	}
	if string(got) != string(body) {
		t.Errorf("expected %q, got %q", body, got)
	}
}

// TestStore_KeysAreDistinctPerURL tests that different URLs do not collide.
func TestStore_KeysAreDistinctPerURL(t *testing.T) {
	s, err := New("", 5*time.Minute, 10*time.Minute)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	_ = s.Set("https://one.example.org/SNV?castor", []byte("one"))
	_ = s.Set("https://two.example.org/SNV?castor", []byte("two"))

	got, _ := s.Get("https://one.example.org/SNV?castor")
	if string(got) != "one" {
		t.Errorf("expected %q, got %q", "one", got)
	}
	if s.ItemCount() != 2 {
		t.Errorf("expected 2 items, got %d", s.ItemCount())
	}
}

// TestStore_Clear tests clearing both layers.
func TestStore_Clear(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, 5*time.Minute, 10*time.Minute)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	_ = s.Set(testURL, []byte("body"))

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, found := s.Get(testURL); found {
		t.Error("expected miss after Clear")
	}
}

// countingGetter fails after going offline, recording how many network
// calls were made.
type countingGetter struct {
	body    []byte
	calls   int
	offline bool
}

func (g *countingGetter) Get(_ context.Context, url string) ([]byte, error) {
	g.calls++
	if g.offline {
		return nil, errors.NewTransportError(url, 0, "network unreachable", nil)
	}
	return g.body, nil
}

// TestFetcher_CacheRoundTrip tests the contract the resolution client
// depends on: after one cached success, an identical fetch succeeds with
// the network gone and returns identical bytes.
func TestFetcher_CacheRoundTrip(t *testing.T) {
	store, err := New(t.TempDir(), 5*time.Minute, 10*time.Minute)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	getter := &countingGetter{body: []byte("%J 113.649 +31.888 = x")}
	fetcher := NewFetcher(getter, store, &logging.Nop)

	first, err := fetcher.Fetch(context.Background(), testURL, true)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	getter.offline = true
	second, err := fetcher.Fetch(context.Background(), testURL, true)
	if err != nil {
		t.Fatalf("Fetch() with network gone: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("cached bytes differ: %q vs %q", first, second)
	}
	if getter.calls != 1 {
		t.Errorf("expected 1 network call, got %d", getter.calls)
	}
}

// TestFetcher_NoCacheBypasses tests that useCache=false always goes to the
// network.
func TestFetcher_NoCacheBypasses(t *testing.T) {
	store, err := New("", 5*time.Minute, 10*time.Minute)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	getter := &countingGetter{body: []byte("body")}
	fetcher := NewFetcher(getter, store, &logging.Nop)

	_, _ = fetcher.Fetch(context.Background(), testURL, false)
	_, _ = fetcher.Fetch(context.Background(), testURL, false)

	if getter.calls != 2 {
		t.Errorf("expected 2 network calls, got %d", getter.calls)
	}
}

// TestFetcher_ErrorsNotCached tests that a failed fetch leaves no entry.
func TestFetcher_ErrorsNotCached(t *testing.T) {
	store, err := New("", 5*time.Minute, 10*time.Minute)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	getter := &countingGetter{body: []byte("body"), offline: true}
	fetcher := NewFetcher(getter, store, &logging.Nop)

	if _, err := fetcher.Fetch(context.Background(), testURL, true); err == nil {
		t.Fatal("expected error while offline")
	}
	if store.ItemCount() != 0 {
		t.Errorf("expected empty cache, got %d items", store.ItemCount())
	}
}

// TestFetcher_NilStore tests the memoryless configuration.
func TestFetcher_NilStore(t *testing.T) {
	getter := &countingGetter{body: []byte("body")}
	fetcher := NewFetcher(getter, nil, &logging.Nop)

	if _, err := fetcher.Fetch(context.Background(), testURL, true); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if getter.calls != 1 {
		t.Errorf("expected 1 call, got %d", getter.calls)
	}
}
