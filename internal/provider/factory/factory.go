// Package factory builds the provider set from configuration.
package factory

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"artisan/internal/config"
	"artisan/internal/provider"
	"artisan/internal/provider/fpt"
	"artisan/internal/provider/google"
	"artisan/internal/provider/openai"
)

// Options override provider endpoints; zero values use the public APIs.
type Options struct {
	Google        []google.Option
	OpenAIBaseURL string
}

// NewSet creates every provider once. Google backs labels, synthesis and
// translation; the describer and recognizer follow DESCRIBER_PROVIDER and
// STT_PROVIDER.
func NewSet(ctx context.Context, cfg *config.Config, opts Options) (provider.Set, error) {
	gc, err := google.NewClient(ctx, cfg.GoogleProjectID, cfg.GoogleLocation, cfg.GoogleCredentials, opts.Google...)
	if err != nil {
		return provider.Set{}, fmt.Errorf("failed to create Google client: %w", err)
	}

	set := provider.Set{
		Labels:      google.NewVision(gc),
		Synthesizer: google.NewTextToSpeech(gc),
		Translator:  google.NewTranslate(gc),
	}

	switch cfg.DescriberProvider {
	case "google":
		set.Describer = google.NewGemini(gc, cfg.GeminiModel)
	case "openai":
		set.Describer = openai.NewDescriber(openai.NewAPIClient(cfg.OpenAIKey, opts.OpenAIBaseURL), cfg.OpenAIVisionModel)
	default:
		return provider.Set{}, fmt.Errorf("unsupported describer provider: %s. Supported: google, openai", cfg.DescriberProvider)
	}

	switch cfg.STTProvider {
	case "google":
		set.Recognizer = google.NewSpeech(gc)
	case "openai":
		set.Recognizer = openai.NewRecognizer(openai.NewAPIClient(cfg.OpenAIKey, opts.OpenAIBaseURL))
	case "fpt":
		set.Recognizer = fpt.NewProvider(cfg.FPTApiKey, cfg.FPTSTTURL)
	default:
		return provider.Set{}, fmt.Errorf("unsupported STT provider: %s. Supported: google, openai, fpt", cfg.STTProvider)
	}

	log.Printf("[Providers] labels=%s describer=%s synthesizer=%s translator=%s recognizer=%s",
		set.Labels.Name(), set.Describer.Name(), set.Synthesizer.Name(), set.Translator.Name(), set.Recognizer.Name())
	return set, nil
}
