package speech

import (
	"context"
	"sync"

	"github.com/DVDHSN/RecipeAI/internal/domain"
	"github.com/DVDHSN/RecipeAI/internal/logger"
)

// PlayState is the playback controller's state.
type PlayState int

const (
	// StateIdle means nothing is being fetched or played.
	StateIdle PlayState = iota
	// StateLoading means a fetch/decode is in flight.
	StateLoading
	// StatePlaying means audio is actively sounding.
	StatePlaying
)

// String returns a human-readable play state.
func (s PlayState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Controller owns at most one active playback. Speak unconditionally stops
// whatever is sounding or in flight before starting, so utterances never
// overlap; Cancel is always safe, including when idle. A generation
// counter makes cancellation watertight: any completion or fetch result
// from a superseded generation is dropped on the floor.
type Controller struct {
	cache *Cache
	sink  domain.AudioSink
	log   *logger.Logger

	mu     sync.Mutex
	state  PlayState
	active domain.Playback
	gen    uint64
}

// NewController creates a playback controller on top of the cache and sink.
func NewController(cache *Cache, sink domain.AudioSink, log *logger.Logger) *Controller {
	return &Controller{cache: cache, sink: sink, log: log}
}

// Speak cancels any current utterance, resolves audio for text through the
// cache (synthesizing on a miss), and starts playback. Fetch/decode
// failures are logged and leave the controller idle; they are not fatal.
func (c *Controller) Speak(ctx context.Context, text string) {
	if text == "" {
		return
	}

	c.mu.Lock()
	c.stopLocked()
	c.gen++
	gen := c.gen
	c.state = StateLoading
	c.mu.Unlock()

	clip, err := c.cache.GetOrFetch(ctx, text)
	if err != nil {
		c.log.Error("speak: fetch failed: %v", err)
		c.settle(gen, StateIdle)
		return
	}

	c.mu.Lock()
	if gen != c.gen {
		// Superseded while fetching.
		c.mu.Unlock()
		return
	}
	pb, err := c.sink.Play(clip, func() { c.settle(gen, StateIdle) })
	if err != nil {
		c.log.Error("speak: playback failed: %v", err)
		c.state = StateIdle
		c.mu.Unlock()
		return
	}
	c.active = pb
	c.state = StatePlaying
	c.mu.Unlock()

	c.log.Debug("speaking: %s", truncate(text, 60))
}

// Cancel stops the active utterance, if any, and resets to idle. The
// completion callback is detached before the stop so a stale completion
// can never resurrect a superseded state. No-op when idle.
func (c *Controller) Cancel() {
	c.mu.Lock()
	c.stopLocked()
	c.gen++
	c.state = StateIdle
	c.mu.Unlock()
}

// stopLocked detaches and stops the active playback. Caller holds c.mu.
func (c *Controller) stopLocked() {
	if c.active != nil {
		c.active.Detach()
		c.active.Stop()
		c.active = nil
	}
}

// settle moves to the given state only if gen is still current.
func (c *Controller) settle(gen uint64, state PlayState) {
	c.mu.Lock()
	if gen == c.gen {
		c.state = state
		c.active = nil
	}
	c.mu.Unlock()
}

// Prefetch warms the cache for the given texts in background goroutines.
// Already-cached and empty texts are skipped; synthesis failures are
// logged and swallowed — the audio is simply fetched again at speak time.
// Playback state never changes.
func (c *Controller) Prefetch(ctx context.Context, texts ...string) {
	for _, text := range texts {
		if text == "" || c.cache.Has(text) {
			continue
		}
		go func(t string) {
			if _, err := c.cache.GetOrFetch(ctx, t); err != nil {
				c.log.Warn("prefetch failed: %v", err)
			}
		}(text)
	}
}

// IsSpeaking reports whether an utterance is loading or sounding. Callers
// need not distinguish fetch latency from actual audio.
func (c *Controller) IsSpeaking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != StateIdle
}

// State returns the controller's current play state.
func (c *Controller) State() PlayState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close cancels any active playback. Call on teardown so no orphaned
// audio outlives the controller.
func (c *Controller) Close() {
	c.Cancel()
}
