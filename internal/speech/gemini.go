package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DVDHSN/RecipeAI/internal/domain"
	"github.com/DVDHSN/RecipeAI/internal/logger"
)

// Compile-time interface check.
var _ domain.SpeechSynthesizer = (*GeminiClient)(nil)

// GeminiOption configures the Gemini TTS client.
type GeminiOption func(*GeminiClient)

// WithVoice sets the TTS voice.
func WithVoice(voice string) GeminiOption {
	return func(c *GeminiClient) {
		c.voice = voice
	}
}

// WithTTSModel overrides the synthesis model.
func WithTTSModel(model string) GeminiOption {
	return func(c *GeminiClient) {
		c.model = model
	}
}

// WithHTTPTimeout sets the HTTP client timeout for synthesis requests.
func WithHTTPTimeout(d time.Duration) GeminiOption {
	return func(c *GeminiClient) {
		c.httpClient.Timeout = d
	}
}

// GeminiClient synthesizes speech via the Gemini generateContent endpoint
// with an audio response modality. The returned payload is raw PCM
// (24 kHz, mono, signed 16-bit little-endian).
type GeminiClient struct {
	apiKey     string
	model      string
	voice      string
	httpClient *http.Client
	log        *logger.Logger
}

// NewGeminiClient creates a Gemini TTS client with the given API key.
func NewGeminiClient(apiKey string, log *logger.Logger, opts ...GeminiOption) *GeminiClient {
	c := &GeminiClient{
		apiKey: apiKey,
		model:  DefaultTTSModel,
		voice:  DefaultVoice,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Voice returns the configured voice name.
func (c *GeminiClient) Voice() string { return c.voice }

// ── wire types ───────────────────────────────────────────────────

type ttsRequest struct {
	Contents         []ttsContent        `json:"contents"`
	GenerationConfig ttsGenerationConfig `json:"generationConfig"`
}

type ttsContent struct {
	Parts []ttsPart `json:"parts"`
}

type ttsPart struct {
	Text string `json:"text"`
}

type ttsGenerationConfig struct {
	ResponseModalities []string        `json:"responseModalities"`
	SpeechConfig       ttsSpeechConfig `json:"speechConfig"`
}

type ttsSpeechConfig struct {
	VoiceConfig ttsVoiceConfig `json:"voiceConfig"`
}

type ttsVoiceConfig struct {
	PrebuiltVoiceConfig ttsPrebuiltVoice `json:"prebuiltVoiceConfig"`
}

type ttsPrebuiltVoice struct {
	VoiceName string `json:"voiceName"`
}

type ttsResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				InlineData struct {
					Data string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Synthesize converts text to raw PCM audio bytes.
func (c *GeminiClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", c.model)

	// The tone prompt rides along with every utterance; it is not part of
	// the cache key upstream because it never varies.
	prompt := "Say it in a friendly, encouraging tone for someone cooking a recipe: " + text

	body, err := json.Marshal(ttsRequest{
		Contents: []ttsContent{{Parts: []ttsPart{{Text: prompt}}}},
		GenerationConfig: ttsGenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: ttsSpeechConfig{
				VoiceConfig: ttsVoiceConfig{
					PrebuiltVoiceConfig: ttsPrebuiltVoice{VoiceName: c.voice},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	c.log.Debug("gemini tts: synthesizing %d chars with voice %s", len(text), c.voice)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini tts error %d: %s", resp.StatusCode, string(msg))
	}

	var parsed ttsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini tts returned no audio")
	}

	audio, err := base64.StdEncoding.DecodeString(parsed.Candidates[0].Content.Parts[0].InlineData.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding audio payload: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("gemini tts returned empty audio")
	}

	c.log.Debug("gemini tts: got %d bytes of audio", len(audio))
	return audio, nil
}
