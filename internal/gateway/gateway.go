// Package gateway turns client requests into provider calls and provider
// results into client-facing values. Each operation validates its input,
// calls its providers synchronously and returns either a result or a
// *ValidationError / *ProviderError.
package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	log "github.com/sirupsen/logrus"

	"artisan/internal/config"
	"artisan/internal/metrics"
	"artisan/internal/provider"
	"artisan/internal/report"
)

const (
	// Transcription settings are fixed and not negotiated with the caller.
	transcriptionEncoding = provider.EncodingMP3
	transcriptionLanguage = "en-US"

	synthesisEncoding = provider.EncodingMP3
	defaultImageMIME  = "image/jpeg"
	defaultRate       = 1.0
)

type Gateway struct {
	providers provider.Set
	speech    config.Speech
	metrics   *metrics.Metrics
	reporter  report.Reporter
}

type Option func(*Gateway)

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

func WithReporter(r report.Reporter) Option {
	return func(g *Gateway) { g.reporter = r }
}

func New(providers provider.Set, speech config.Speech, opts ...Option) *Gateway {
	g := &Gateway{
		providers: providers,
		speech:    speech,
		reporter:  report.Nop{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// VoiceFor returns the synthesizer voice configured for lang.
func (g *Gateway) VoiceFor(lang string) config.Voice {
	return g.speech.VoiceFor(lang)
}

// AnalyzeImage labels the image, then asks the describer for a marketing
// description of the same image using the labels as context.
func (g *Gateway) AnalyzeImage(ctx context.Context, req ImageAnalysisRequest) (*ImageAnalysisResult, error) {
	if len(req.Image) == 0 {
		return nil, invalid("No image uploaded")
	}

	var labels []provider.Label
	err := g.call(g.providers.Labels.Name(), "detect_labels", func() (err error) {
		labels, err = g.providers.Labels.DetectLabels(ctx, req.Image)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &ImageAnalysisResult{Labels: make([]string, 0, len(labels))}
	for _, l := range labels {
		result.Labels = append(result.Labels, l.Description)
	}

	prompt := BuildDescribePrompt(result.LabelsText())
	mimeType := detectImageMIME(req.Image)

	err = g.call(g.providers.Describer.Name(), "describe", func() (err error) {
		result.Description, err = g.providers.Describer.Describe(ctx, req.Image, mimeType, prompt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Synthesize renders text as MP3 speech with the voice selected for the
// request language.
func (g *Gateway) Synthesize(ctx context.Context, req SpeechRequest) (*SpeechResult, error) {
	if req.Text == "" {
		return nil, invalid("No text provided")
	}

	lang := req.Language
	if lang == "" {
		lang = g.speech.DefaultLanguage
	}
	rate := defaultRate
	if req.SpeakingRate != nil {
		rate = *req.SpeakingRate
	}
	if !validRate(rate) {
		return nil, invalid("speakingRate must be a positive number")
	}

	voice := g.speech.VoiceFor(lang)
	synth := provider.SynthesisRequest{
		SSML:         BuildSSML(req.Text, rate),
		LanguageCode: voice.LanguageCode,
		VoiceName:    voice.Name,
		Encoding:     synthesisEncoding,
	}

	var audio []byte
	err := g.call(g.providers.Synthesizer.Name(), "synthesize", func() (err error) {
		audio, err = g.providers.Synthesizer.Synthesize(ctx, synth)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &SpeechResult{Audio: audio, Voice: voice}, nil
}

func (g *Gateway) Translate(ctx context.Context, req TranslationRequest) (*TranslationResult, error) {
	if req.Text == "" {
		return nil, invalid("No text provided")
	}
	target := req.Target
	if target == "" {
		target = g.speech.DefaultTranslateTarget
	}

	var tr *provider.Translation
	err := g.call(g.providers.Translator.Name(), "translate", func() (err error) {
		tr, err = g.providers.Translator.Translate(ctx, req.Text, target)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &TranslationResult{Translation: tr.Text, SourceLanguage: tr.DetectedSourceLanguage}, nil
}

// Transcribe concatenates segment transcripts in provider order without
// adding separators.
func (g *Gateway) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResult, error) {
	if len(req.Audio) == 0 {
		return nil, invalid("No audio file provided")
	}

	var segments []provider.Segment
	err := g.call(g.providers.Recognizer.Name(), "recognize", func() (err error) {
		segments, err = g.providers.Recognizer.Recognize(ctx, provider.RecognitionRequest{
			Audio:        req.Audio,
			Encoding:     transcriptionEncoding,
			LanguageCode: transcriptionLanguage,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	var builder strings.Builder
	for _, s := range segments {
		builder.WriteString(s.Transcript)
	}
	return &TranscriptionResult{Transcript: builder.String(), Segments: len(segments)}, nil
}

// call runs one provider call, records it and converts a failure into a
// *ProviderError.
func (g *Gateway) call(name, operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	g.metrics.ObserveProviderCall(name, operation, start, err)
	if err == nil {
		return nil
	}

	log.WithFields(log.Fields{
		"provider":  name,
		"operation": operation,
		"duration":  time.Since(start).String(),
	}).Errorf("[Gateway] Provider call failed: %v", err)
	g.reporter.Report(err, map[string]string{"provider": name, "operation": operation})

	return &ProviderError{Provider: name, Operation: operation, Err: err}
}

func detectImageMIME(image []byte) string {
	m := mimetype.Detect(image)
	if strings.HasPrefix(m.String(), "image/") {
		return m.String()
	}
	return defaultImageMIME
}
