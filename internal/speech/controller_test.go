package speech

import (
	"context"
	"testing"
	"time"
)

func setupController(t *testing.T) (*Controller, *fakeSynth, *fakeSink) {
	t.Helper()
	synth := newFakeSynth()
	sink := &fakeSink{}
	cache := NewCache(synth, sink, quietLogger())
	return NewController(cache, sink, quietLogger()), synth, sink
}

func TestSpeakAndComplete(t *testing.T) {
	ctrl, _, sink := setupController(t)
	ctx := context.Background()

	ctrl.Speak(ctx, "Chop the onion.")
	if ctrl.State() != StatePlaying {
		t.Fatalf("expected playing, got %s", ctrl.State())
	}
	if !ctrl.IsSpeaking() {
		t.Fatal("expected IsSpeaking")
	}

	sink.last().finish()
	if ctrl.State() != StateIdle {
		t.Fatalf("expected idle after completion, got %s", ctrl.State())
	}
}

func TestSpeakSupersedesSpeak(t *testing.T) {
	ctrl, _, sink := setupController(t)
	ctx := context.Background()

	ctrl.Speak(ctx, "Step A")
	first := sink.last()

	ctrl.Speak(ctx, "Step B")
	second := sink.last()

	if first == second {
		t.Fatal("expected a second playback handle")
	}
	if !first.stopped || !first.detached {
		t.Fatal("first playback must be detached and stopped before B starts")
	}

	// A stale completion from A must not disturb B.
	first.finish()
	if ctrl.State() != StatePlaying {
		t.Fatalf("state must still reflect B, got %s", ctrl.State())
	}

	second.finish()
	if ctrl.State() != StateIdle {
		t.Fatalf("expected idle after B completes, got %s", ctrl.State())
	}
}

func TestCancel(t *testing.T) {
	ctrl, _, sink := setupController(t)
	ctx := context.Background()

	// Cancel when idle is a no-op.
	ctrl.Cancel()
	if ctrl.State() != StateIdle {
		t.Fatalf("expected idle, got %s", ctrl.State())
	}

	ctrl.Speak(ctx, "Simmer for ten minutes.")
	pb := sink.last()
	ctrl.Cancel()

	if !pb.detached || !pb.stopped {
		t.Fatal("cancel must detach then stop the active playback")
	}
	if ctrl.IsSpeaking() {
		t.Fatal("expected idle after cancel")
	}

	// A stale completion after cancel must not change state.
	pb.finish()
	if ctrl.State() != StateIdle {
		t.Fatalf("stale completion resurrected state: %s", ctrl.State())
	}
}

func TestSpeakFetchErrorGoesIdle(t *testing.T) {
	ctrl, synth, _ := setupController(t)
	synth.fail = true

	ctrl.Speak(context.Background(), "Whisk the eggs.")
	if ctrl.State() != StateIdle {
		t.Fatalf("expected idle after fetch failure, got %s", ctrl.State())
	}
}

func TestPrefetchWarmsCacheOnce(t *testing.T) {
	ctrl, synth, _ := setupController(t)
	ctx := context.Background()

	ctrl.Prefetch(ctx, "Preheat the oven")
	waitForCalls(t, synth, 1)
	if ctrl.IsSpeaking() {
		t.Fatal("prefetch must not change playback state")
	}

	// Second prefetch is a no-op; speak hits the cache. At most two
	// synthesis calls total are allowed (prefetch + one fallback), and
	// here the cache is warm so it stays at one.
	ctrl.Prefetch(ctx, "Preheat the oven")
	ctrl.Speak(ctx, "Preheat the oven")

	if got := synth.totalCalls(); got > 2 {
		t.Fatalf("expected at most 2 synthesis calls, got %d", got)
	}
	if got := synth.callCount("Preheat the oven"); got != 1 {
		t.Fatalf("expected warm cache to serve speak, got %d calls", got)
	}
}

func TestPrefetchSwallowsErrors(t *testing.T) {
	ctrl, synth, _ := setupController(t)
	synth.fail = true

	ctrl.Prefetch(context.Background(), "Knead the dough.")
	waitForCalls(t, synth, 1)

	if ctrl.State() != StateIdle {
		t.Fatalf("prefetch failure must not surface, got %s", ctrl.State())
	}
}

func TestPrefetchSkipsEmptyText(t *testing.T) {
	ctrl, synth, _ := setupController(t)

	ctrl.Prefetch(context.Background(), "")
	time.Sleep(20 * time.Millisecond)
	if synth.totalCalls() != 0 {
		t.Fatalf("empty text must not be synthesized, got %d calls", synth.totalCalls())
	}
}

func TestCloseCancelsPlayback(t *testing.T) {
	ctrl, _, sink := setupController(t)

	ctrl.Speak(context.Background(), "Serve immediately.")
	pb := sink.last()
	ctrl.Close()

	if !pb.stopped {
		t.Fatal("close must stop active playback")
	}
	if ctrl.IsSpeaking() {
		t.Fatal("expected idle after close")
	}
}

// waitForCalls polls until the synthesizer has made n total calls.
// Prefetch runs in background goroutines.
func waitForCalls(t *testing.T, synth *fakeSynth, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if synth.totalCalls() >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d synthesis calls (got %d)", n, synth.totalCalls())
}
