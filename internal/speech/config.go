package speech

// Default voice for TTS. Change this constant to switch voices.
// Full list: https://ai.google.dev/gemini-api/docs/speech-generation#voices
const DefaultVoice = "Zephyr"

// Model used for speech synthesis.
const DefaultTTSModel = "gemini-2.5-flash-preview-tts"

// Audio parameters of the PCM stream the TTS model returns.
const (
	SampleRate   = 24000
	ChannelCount = 1
	BitDepth     = 16
)

// Env var name for the Gemini API key, shared with the analyzer.
const EnvGeminiAPIKey = "GEMINI_API_KEY"
