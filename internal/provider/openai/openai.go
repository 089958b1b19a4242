// Package openai provides a Describer and a Recognizer backed by the OpenAI API.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"artisan/internal/provider"
)

// NewAPIClient creates an OpenAI client. An empty baseURL uses the public API.
func NewAPIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// Describer generates image descriptions with a vision-capable chat model.
type Describer struct {
	client *openai.Client
	model  string
}

func NewDescriber(client *openai.Client, model string) *Describer {
	return &Describer{client: client, model: model}
}

func (d *Describer) Name() string {
	return "openai-vision"
}

func (d *Describer) Describe(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	startTime := time.Now()
	log.Printf("[OpenAI Vision] Calling %s, image size: %d bytes", d.model, len(image))

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	req := openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
				},
			},
		},
	}

	resp, err := d.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Printf("[OpenAI Vision] API error: %v", err)
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("OpenAI returned an empty description")
	}

	log.Printf("[OpenAI Vision] Description received (length: %d) in %v", len(text), time.Since(startTime))
	log.Printf("[OpenAI Vision] Usage - Prompt tokens: %d, Completion tokens: %d, Total tokens: %d",
		resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
	return text, nil
}

// Recognizer transcribes audio with Whisper.
type Recognizer struct {
	client *openai.Client
}

func NewRecognizer(client *openai.Client) *Recognizer {
	return &Recognizer{client: client}
}

func (r *Recognizer) Name() string {
	return "openai-whisper"
}

// Recognize returns the whole transcription as a single segment.
func (r *Recognizer) Recognize(ctx context.Context, req provider.RecognitionRequest) ([]provider.Segment, error) {
	startTime := time.Now()
	log.Printf("[OpenAI Whisper] Processing audio, size: %d bytes", len(req.Audio))

	resp, err := r.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: "audio" + extensionFor(req.Encoding),
		Reader:   bytes.NewReader(req.Audio),
		Language: primaryLanguage(req.LanguageCode),
	})
	if err != nil {
		log.Printf("[OpenAI Whisper] API error: %v", err)
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	log.Printf("[OpenAI Whisper] Transcription received (length: %d) in %v", len(resp.Text), time.Since(startTime))
	if resp.Text == "" {
		return nil, nil
	}
	return []provider.Segment{{Transcript: resp.Text}}, nil
}

// primaryLanguage reduces a BCP-47 tag to the ISO-639-1 code Whisper expects.
func primaryLanguage(code string) string {
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	return strings.ToLower(code)
}

func extensionFor(encoding string) string {
	switch encoding {
	case "LINEAR16":
		return ".wav"
	case "FLAC":
		return ".flac"
	case "OGG_OPUS":
		return ".ogg"
	default:
		return ".mp3"
	}
}
