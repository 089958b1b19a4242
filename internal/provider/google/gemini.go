package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Gemini implements provider.Describer with a Gemini model. Service account
// credentials go through Vertex AI; an API key goes through the Generative
// Language API.
type Gemini struct {
	client *Client
	model  string
}

func NewGemini(c *Client, model string) *Gemini {
	return &Gemini{client: c, model: model}
}

func (g *Gemini) Name() string {
	return "google-gemini"
}

type generateRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // Base64 encoded
}

type generateResponse struct {
	Candidates     []geminiCandidate `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

func (g *Gemini) url() string {
	if g.client.apiKey != "" {
		return fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.client.endpoints.GenerativeLanguage, g.model)
	}
	return fmt.Sprintf("%s/v1/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
		g.client.endpoints.AIPlatform, g.client.projectID, g.client.location, g.model)
}

// Describe sends the image followed by the prompt and returns the text of
// the first candidate.
func (g *Gemini) Describe(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	if g.client.apiKey == "" && g.client.projectID == "" {
		return "", fmt.Errorf("GOOGLE_PROJECT_ID is required for Vertex AI")
	}

	startTime := time.Now()
	log.Printf("[Google Gemini] Generating content with model %s, image size: %d bytes, prompt length: %d",
		g.model, len(image), len(prompt))

	reqBody := generateRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(image)}},
				{Text: prompt},
			},
		}},
	}

	var resp generateResponse
	if err := g.client.post(ctx, g.url(), reqBody, &resp); err != nil {
		log.Printf("[Google Gemini] API error: %v", err)
		return "", err
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		builder.WriteString(part.Text)
	}
	text := builder.String()
	if text == "" {
		return "", fmt.Errorf("model returned no text (finish reason: %s)", resp.Candidates[0].FinishReason)
	}

	log.Printf("[Google Gemini] Generated %d characters in %v", len(text), time.Since(startTime))
	return text, nil
}
