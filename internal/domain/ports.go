package domain

import "context"

// RecipeAnalyzer is the generative capability behind the workflow: it
// identifies ingredients in photos and proposes recipes for a corrected
// ingredient list. Implementations can be Gemini-backed or scripted fakes.
type RecipeAnalyzer interface {
	IdentifyIngredients(ctx context.Context, images [][]byte) ([]string, error)
	GenerateRecipes(ctx context.Context, req GenerateRequest) (*AnalysisResult, error)
}

// SpeechSynthesizer converts an utterance into audio bytes ready for
// AudioSink.Decode.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// AudioClip is decoded, ready-to-play audio.
type AudioClip []byte

// AudioSink abstracts the platform audio output. Decode turns synthesized
// bytes into a playable clip; Play starts asynchronous playback and invokes
// onDone exactly once when the clip finishes naturally. Neither call blocks
// for the duration of playback.
type AudioSink interface {
	Decode(data []byte) (AudioClip, error)
	Play(clip AudioClip, onDone func()) (Playback, error)
}

// Playback is a handle on one active clip. Detach disarms the completion
// callback so a stale completion can never fire after cancellation; Stop
// interrupts the audio. Both are safe to call more than once.
type Playback interface {
	Detach()
	Stop()
}

// HistoryStore persists the cookbook across sessions. Load recovers from
// missing or corrupt data by returning an empty list; Save failures are
// reported so the caller can log them, never crash on them.
type HistoryStore interface {
	Load() ([]CookedRecipe, error)
	Save(entries []CookedRecipe) error
}
