package audio

import (
	"encoding/binary"
	"testing"
)

// buildWAV assembles a minimal RIFF/WAVE file around the given PCM bytes.
func buildWAV(t *testing.T, pcm []byte) []byte {
	t.Helper()

	var out []byte
	out = append(out, []byte("RIFF")...)
	out = binary.LittleEndian.AppendUint32(out, uint32(36+len(pcm)))
	out = append(out, []byte("WAVE")...)

	out = append(out, []byte("fmt ")...)
	out = binary.LittleEndian.AppendUint32(out, 16)
	fmtChunk := make([]byte, 16)
	binary.LittleEndian.PutUint16(fmtChunk[0:], 1)      // PCM
	binary.LittleEndian.PutUint16(fmtChunk[2:], 1)      // mono
	binary.LittleEndian.PutUint32(fmtChunk[4:], 24000)  // sample rate
	binary.LittleEndian.PutUint32(fmtChunk[8:], 48000)  // byte rate
	binary.LittleEndian.PutUint16(fmtChunk[12:], 2)     // block align
	binary.LittleEndian.PutUint16(fmtChunk[14:], 16)    // bits
	out = append(out, fmtChunk...)

	out = append(out, []byte("data")...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(pcm)))
	out = append(out, pcm...)
	return out
}

func TestExtractPCM(t *testing.T) {
	pcm := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	wav := buildWAV(t, pcm)

	got, err := extractPCM(wav)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(got) != string(pcm) {
		t.Fatalf("extracted %v, want %v", got, pcm)
	}
}

func TestExtractPCMErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too short", []byte("RIFF")},
		{"no data chunk", append([]byte("RIFF\x00\x00\x00\x00WAVE"), make([]byte, 40)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := extractPCM(tt.data); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestIsWAV(t *testing.T) {
	if !isWAV(buildWAV(t, []byte{0, 0})) {
		t.Fatal("expected WAV detection")
	}
	if isWAV([]byte{1, 2, 3, 4}) {
		t.Fatal("raw PCM misdetected as WAV")
	}
}

func TestSinkDecodeValidation(t *testing.T) {
	// Decode is pure; it needs no audio device.
	s := &Sink{}

	if _, err := s.Decode(nil); err == nil {
		t.Fatal("expected error on empty data")
	}
	if _, err := s.Decode([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error on odd-length PCM")
	}

	clip, err := s.Decode([]byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("decode raw PCM: %v", err)
	}
	if len(clip) != 4 {
		t.Fatalf("expected 4-byte clip, got %d", len(clip))
	}

	pcm := []byte{9, 9, 8, 8}
	clip, err = s.Decode(buildWAV(t, pcm))
	if err != nil {
		t.Fatalf("decode wav: %v", err)
	}
	if string(clip) != string(pcm) {
		t.Fatalf("wav decode = %v, want %v", clip, pcm)
	}
}
