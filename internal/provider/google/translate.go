package google

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"artisan/internal/provider"
)

// Translate implements provider.Translator with the Translation v2 API.
type Translate struct {
	client *Client
}

func NewTranslate(c *Client) *Translate {
	return &Translate{client: c}
}

func (t *Translate) Name() string {
	return "google-translate"
}

type translateRequest struct {
	Q      string `json:"q"`
	Target string `json:"target"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

func (t *Translate) Translate(ctx context.Context, text, target string) (*provider.Translation, error) {
	log.Printf("[Google Translate] Translating %d characters to %s", len(text), target)

	var resp translateResponse
	url := t.client.endpoints.Translate + "/language/translate/v2"
	if err := t.client.post(ctx, url, translateRequest{Q: text, Target: target}, &resp); err != nil {
		log.Printf("[Google Translate] API error: %v", err)
		return nil, err
	}

	if len(resp.Data.Translations) == 0 {
		return nil, fmt.Errorf("translation API returned no translations")
	}

	tr := resp.Data.Translations[0]
	log.Printf("[Google Translate] Translated from %s to %s", tr.DetectedSourceLanguage, target)
	return &provider.Translation{
		Text:                   tr.TranslatedText,
		DetectedSourceLanguage: tr.DetectedSourceLanguage,
	}, nil
}
