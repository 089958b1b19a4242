// Package fpt implements provider.Recognizer using the FPT.AI Speech-to-Text API.
package fpt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"artisan/internal/provider"
)

// Provider implements STT using FPT.AI Speech-to-Text API
type Provider struct {
	apiKey string
	url    string
	http   *resty.Client
}

// NewProvider creates a new FPT STT provider
func NewProvider(apiKey, url string) *Provider {
	return &Provider{
		apiKey: apiKey,
		url:    url,
		http:   resty.New(),
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "fpt"
}

// sttResponse represents FPT.AI STT API response
type sttResponse struct {
	Hypotheses []struct {
		Utterance  string  `json:"utterance"`
		Confidence float64 `json:"confidence"`
	} `json:"hypotheses"`
	ErrorCode int    `json:"errorCode,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Recognize sends the audio to FPT.AI and returns the best hypothesis as a
// single segment. FPT.AI detects the encoding itself, so the request's
// encoding and language hints are only logged.
func (p *Provider) Recognize(ctx context.Context, req provider.RecognitionRequest) ([]provider.Segment, error) {
	startTime := time.Now()
	log.Printf("[FPT STT] Processing audio, size: %d bytes, encoding hint: %s", len(req.Audio), req.Encoding)

	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("api-key", p.apiKey).
		SetHeader("Content-Type", "text/plain").
		SetBody(req.Audio).
		Post(p.url)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to FPT.AI: %w", err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		log.Printf("[FPT STT] API error: Status %d, Body: %s", resp.StatusCode(), preview(string(body)))
		return nil, fmt.Errorf("FPT.AI API returned status %d: %s", resp.StatusCode(), preview(string(body)))
	}

	var sttResp sttResponse
	if err := json.Unmarshal(body, &sttResp); err != nil {
		log.Printf("[FPT STT] Failed to parse response. Raw body: %s", preview(string(body)))
		return nil, fmt.Errorf("failed to parse FPT.AI response: %w", err)
	}

	if sttResp.ErrorCode != 0 {
		log.Printf("[FPT STT] API error code %d: %s", sttResp.ErrorCode, sttResp.Message)
		return nil, fmt.Errorf("FPT.AI API error %d: %s", sttResp.ErrorCode, sttResp.Message)
	}

	if len(sttResp.Hypotheses) == 0 {
		log.Printf("[FPT STT] No hypotheses returned")
		return nil, nil
	}

	hyp := sttResp.Hypotheses[0]
	transcript := strings.TrimSpace(hyp.Utterance)

	log.Printf("[FPT STT] Transcription successful: confidence=%.2f, length=%d, duration=%v",
		hyp.Confidence, len(transcript), time.Since(startTime))

	return []provider.Segment{{Transcript: transcript, Confidence: hyp.Confidence}}, nil
}

func preview(s string) string {
	if len(s) > 500 {
		return s[:500] + "..."
	}
	return s
}
