package speech

import (
	"context"
	"testing"
)

func TestCacheGetOrFetch(t *testing.T) {
	synth := newFakeSynth()
	sink := &fakeSink{}
	cache := NewCache(synth, sink, quietLogger())
	ctx := context.Background()

	clip, err := cache.GetOrFetch(ctx, "Preheat the oven")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(clip) != "pcm:Preheat the oven" {
		t.Fatalf("unexpected clip: %q", clip)
	}
	if synth.callCount("Preheat the oven") != 1 {
		t.Fatalf("expected 1 synthesis call, got %d", synth.callCount("Preheat the oven"))
	}

	// Second fetch must reuse the cached clip.
	if _, err := cache.GetOrFetch(ctx, "Preheat the oven"); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if synth.callCount("Preheat the oven") != 1 {
		t.Fatalf("cache miss on second fetch: %d calls", synth.callCount("Preheat the oven"))
	}

	hits, misses := cache.Stats()
	if hits != 1 || misses != 1 {
		t.Fatalf("expected 1 hit / 1 miss, got %d / %d", hits, misses)
	}
}

func TestCacheKeyedByExactText(t *testing.T) {
	synth := newFakeSynth()
	cache := NewCache(synth, &fakeSink{}, quietLogger())
	ctx := context.Background()

	for _, text := range []string{"Stir well.", "Stir well. ", "stir well."} {
		if _, err := cache.GetOrFetch(ctx, text); err != nil {
			t.Fatalf("fetch %q: %v", text, err)
		}
	}
	if cache.Len() != 3 {
		t.Fatalf("expected 3 distinct entries, got %d", cache.Len())
	}
}

func TestCacheFetchErrorNotCached(t *testing.T) {
	synth := newFakeSynth()
	synth.fail = true
	cache := NewCache(synth, &fakeSink{}, quietLogger())
	ctx := context.Background()

	if _, err := cache.GetOrFetch(ctx, "Boil the pasta"); err == nil {
		t.Fatal("expected error")
	}
	if cache.Has("Boil the pasta") {
		t.Fatal("failed fetch must not populate the cache")
	}

	// Recovery after the synthesizer comes back.
	synth.fail = false
	if _, err := cache.GetOrFetch(ctx, "Boil the pasta"); err != nil {
		t.Fatalf("fetch after recovery: %v", err)
	}
	if !cache.Has("Boil the pasta") {
		t.Fatal("expected entry after successful fetch")
	}
}
