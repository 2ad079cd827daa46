// Package speech provides the speech-synthesis cache and the playback
// controller that drives spoken step instructions.
package speech

import (
	"context"
	"sync"

	"github.com/DVDHSN/RecipeAI/internal/domain"
	"github.com/DVDHSN/RecipeAI/internal/logger"
)

// Cache is a process-wide, thread-safe map from exact utterance text to
// decoded, ready-to-play audio. Two steps with identical wording share one
// entry. Entries are never evicted; the session is short-lived and clips
// are small.
//
// Concurrent fetches of the same uncached text are not deduplicated: both
// synthesize and both land in the same slot. Writes are idempotent (the
// same text always decodes to equivalent audio), so the race is harmless
// and the controller's cancel-before-speak policy serializes requests in
// practice anyway.
type Cache struct {
	synth domain.SpeechSynthesizer
	sink  domain.AudioSink
	log   *logger.Logger

	mu      sync.RWMutex
	entries map[string]domain.AudioClip
	hits    int64
	misses  int64
}

// NewCache creates an empty cache backed by the given synthesizer and
// decoder.
func NewCache(synth domain.SpeechSynthesizer, sink domain.AudioSink, log *logger.Logger) *Cache {
	return &Cache{
		synth:   synth,
		sink:    sink,
		log:     log,
		entries: make(map[string]domain.AudioClip),
	}
}

// GetOrFetch returns the cached clip for text, synthesizing and decoding
// it on a miss. The literal text is the cache key.
func (c *Cache) GetOrFetch(ctx context.Context, text string) (domain.AudioClip, error) {
	if text == "" {
		return nil, domain.ErrEmptyUtterance
	}

	c.mu.RLock()
	clip, ok := c.entries[text]
	c.mu.RUnlock()

	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		c.log.Debug("speech cache hit: %s (%d bytes)", truncate(text, 40), len(clip))
		return clip, nil
	}

	c.mu.Lock()
	c.misses++
	c.mu.Unlock()

	raw, err := c.synth.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}
	clip, err = c.sink.Decode(raw)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[text] = clip
	size := len(c.entries)
	c.mu.Unlock()

	c.log.Debug("speech cache store: %s (%d bytes, %d entries)", truncate(text, 40), len(clip), size)
	return clip, nil
}

// Has reports whether a clip for the text is already cached.
func (c *Cache) Has(text string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[text]
	return ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// truncate shortens a string for logging.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
