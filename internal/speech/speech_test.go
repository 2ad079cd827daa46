package speech

import (
	"context"
	"errors"
	"sync"

	"github.com/DVDHSN/RecipeAI/internal/domain"
	"github.com/DVDHSN/RecipeAI/internal/logger"
)

// fakeSynth is a scripted synthesizer that counts calls per utterance.
type fakeSynth struct {
	mu    sync.Mutex
	calls map[string]int
	fail  bool
}

func newFakeSynth() *fakeSynth {
	return &fakeSynth{calls: make(map[string]int)}
}

func (f *fakeSynth) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.mu.Lock()
	f.calls[text]++
	f.mu.Unlock()
	if f.fail {
		return nil, errors.New("synthesis unavailable")
	}
	return []byte("pcm:" + text), nil
}

func (f *fakeSynth) callCount(text string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[text]
}

func (f *fakeSynth) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// fakePlayback records detach/stop and lets tests fire completion by hand.
type fakePlayback struct {
	mu       sync.Mutex
	onDone   func()
	stopped  bool
	detached bool
}

func (p *fakePlayback) Detach() {
	p.mu.Lock()
	p.detached = true
	p.onDone = nil
	p.mu.Unlock()
}

func (p *fakePlayback) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
}

// finish simulates natural end of playback.
func (p *fakePlayback) finish() {
	p.mu.Lock()
	done := p.onDone
	p.mu.Unlock()
	if done != nil {
		done()
	}
}

// fakeSink decodes trivially and hands out fakePlaybacks.
type fakeSink struct {
	mu        sync.Mutex
	playbacks []*fakePlayback
}

func (s *fakeSink) Decode(data []byte) (domain.AudioClip, error) {
	return domain.AudioClip(data), nil
}

func (s *fakeSink) Play(clip domain.AudioClip, onDone func()) (domain.Playback, error) {
	pb := &fakePlayback{onDone: onDone}
	s.mu.Lock()
	s.playbacks = append(s.playbacks, pb)
	s.mu.Unlock()
	return pb, nil
}

func (s *fakeSink) last() *fakePlayback {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.playbacks) == 0 {
		return nil
	}
	return s.playbacks[len(s.playbacks)-1]
}

func quietLogger() *logger.Logger {
	return logger.New(logger.LevelOff, nil)
}
