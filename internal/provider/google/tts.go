package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"artisan/internal/provider"
)

// TextToSpeech implements provider.Synthesizer.
type TextToSpeech struct {
	client *Client
}

func NewTextToSpeech(c *Client) *TextToSpeech {
	return &TextToSpeech{client: c}
}

func (t *TextToSpeech) Name() string {
	return "google-tts"
}

type synthesizeRequest struct {
	Input       synthesisInput `json:"input"`
	Voice       voiceSelection `json:"voice"`
	AudioConfig audioConfig    `json:"audioConfig"`
}

type synthesisInput struct {
	SSML string `json:"ssml"`
}

type voiceSelection struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name,omitempty"`
}

type audioConfig struct {
	AudioEncoding string `json:"audioEncoding"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"` // Base64 encoded
}

func (t *TextToSpeech) Synthesize(ctx context.Context, req provider.SynthesisRequest) ([]byte, error) {
	startTime := time.Now()
	log.Printf("[Google TTS] Synthesizing %d characters of SSML, voice: %s (%s)",
		len(req.SSML), req.VoiceName, req.LanguageCode)

	reqBody := synthesizeRequest{
		Input:       synthesisInput{SSML: req.SSML},
		Voice:       voiceSelection{LanguageCode: req.LanguageCode, Name: req.VoiceName},
		AudioConfig: audioConfig{AudioEncoding: req.Encoding},
	}

	var resp synthesizeResponse
	if err := t.client.post(ctx, t.client.endpoints.TextToSpeech+"/v1/text:synthesize", reqBody, &resp); err != nil {
		log.Printf("[Google TTS] API error: %v", err)
		return nil, err
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio content: %w", err)
	}

	log.Printf("[Google TTS] Synthesized %d bytes of audio in %v", len(audio), time.Since(startTime))
	return audio, nil
}
