// Package audio implements the playback sink on top of oto.
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/DVDHSN/RecipeAI/internal/domain"
	"github.com/DVDHSN/RecipeAI/internal/logger"
	"github.com/DVDHSN/RecipeAI/internal/speech"
)

// Compile-time interface check.
var _ domain.AudioSink = (*Sink)(nil)

// Sink plays PCM clips through the system audio device.
type Sink struct {
	ctx *oto.Context
	log *logger.Logger
}

// NewSink initializes the system audio context. Returns an error if the
// audio device is unavailable.
func NewSink(log *logger.Logger) (*Sink, error) {
	op := &oto.NewContextOptions{
		SampleRate:   speech.SampleRate,
		ChannelCount: speech.ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	log.Debug("audio sink initialized (rate=%d, channels=%d)", speech.SampleRate, speech.ChannelCount)
	return &Sink{ctx: ctx, log: log}, nil
}

// Decode turns synthesized audio bytes into a playable clip. WAV input has
// its RIFF header stripped; anything else is treated as raw s16le PCM and
// must have an even byte length.
func (s *Sink) Decode(data []byte) (domain.AudioClip, error) {
	if len(data) == 0 {
		return nil, errors.New("empty audio data")
	}
	if isWAV(data) {
		pcm, err := extractPCM(data)
		if err != nil {
			return nil, err
		}
		return domain.AudioClip(pcm), nil
	}
	if len(data)%2 != 0 {
		return nil, errors.New("odd-length PCM data")
	}
	return domain.AudioClip(data), nil
}

// Play starts asynchronous playback of a clip. onDone fires once when the
// clip finishes naturally; it does not fire after Detach or Stop.
func (s *Sink) Play(clip domain.AudioClip, onDone func()) (domain.Playback, error) {
	if len(clip) == 0 {
		return nil, errors.New("empty clip")
	}

	player := s.ctx.NewPlayer(bytes.NewReader(clip))
	pb := &playback{player: player, onDone: onDone}
	player.Play()
	s.log.Debug("audio sink: playing %d bytes of PCM", len(clip))

	go pb.watch()
	return pb, nil
}

// playback is a handle on one active clip.
type playback struct {
	mu      sync.Mutex
	player  *oto.Player
	onDone  func()
	stopped bool
	closed  bool
}

// Detach disarms the completion callback.
func (p *playback) Detach() {
	p.mu.Lock()
	p.onDone = nil
	p.mu.Unlock()
}

// Stop interrupts playback. Safe to call repeatedly and after completion.
func (p *playback) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	player := p.player
	p.mu.Unlock()

	if player != nil {
		player.Pause()
	}
}

// watch polls the player until the clip ends or Stop is called, then
// closes the player and fires the completion callback if still armed.
func (p *playback) watch() {
	for {
		p.mu.Lock()
		stopped := p.stopped
		playing := p.player.IsPlaying()
		p.mu.Unlock()

		if stopped || !playing {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	done := p.onDone
	if p.stopped {
		done = nil
	}
	player := p.player
	p.mu.Unlock()

	player.Close()
	if done != nil {
		done()
	}
}

// ── WAV handling ─────────────────────────────────────────────────

func isWAV(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}

// extractPCM walks the RIFF chunks and returns the raw data payload.
func extractPCM(wav []byte) ([]byte, error) {
	if len(wav) < 44 {
		return nil, errors.New("wav data too short")
	}

	pos := 12
	for pos < len(wav)-8 {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))

		if chunkID == "data" {
			start := pos + 8
			end := start + chunkSize
			if end > len(wav) {
				end = len(wav)
			}
			return wav[start:end], nil
		}

		pos += 8 + chunkSize
		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			pos++
		}
	}

	return nil, errors.New("data chunk not found in WAV")
}
