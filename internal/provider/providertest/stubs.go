// Package providertest has in-memory providers for tests. Each stub counts
// its calls, remembers the last request and returns Err when set.
package providertest

import (
	"context"
	"sync"

	"artisan/internal/provider"
)

type counter struct {
	mu    sync.Mutex
	calls int
}

func (c *counter) inc() {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

// Calls returns how many times the stub was invoked.
func (c *counter) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type LabelDetector struct {
	counter
	Labels    []provider.Label
	Err       error
	LastImage []byte
}

func (s *LabelDetector) Name() string { return "stub-labels" }

func (s *LabelDetector) DetectLabels(_ context.Context, image []byte) ([]provider.Label, error) {
	s.inc()
	s.LastImage = image
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Labels, nil
}

type Describer struct {
	counter
	Text         string
	Err          error
	LastImage    []byte
	LastMIMEType string
	LastPrompt   string
}

func (s *Describer) Name() string { return "stub-describer" }

func (s *Describer) Describe(_ context.Context, image []byte, mimeType, prompt string) (string, error) {
	s.inc()
	s.LastImage, s.LastMIMEType, s.LastPrompt = image, mimeType, prompt
	if s.Err != nil {
		return "", s.Err
	}
	return s.Text, nil
}

type Synthesizer struct {
	counter
	Audio       []byte
	Err         error
	LastRequest provider.SynthesisRequest
}

func (s *Synthesizer) Name() string { return "stub-synthesizer" }

func (s *Synthesizer) Synthesize(_ context.Context, req provider.SynthesisRequest) ([]byte, error) {
	s.inc()
	s.LastRequest = req
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Audio, nil
}

// EchoTranslator returns the input text unchanged.
type EchoTranslator struct {
	counter
	Err        error
	LastTarget string
}

func (s *EchoTranslator) Name() string { return "stub-translator" }

func (s *EchoTranslator) Translate(_ context.Context, text, target string) (*provider.Translation, error) {
	s.inc()
	s.LastTarget = target
	if s.Err != nil {
		return nil, s.Err
	}
	return &provider.Translation{Text: text}, nil
}

type Recognizer struct {
	counter
	Segments    []provider.Segment
	Err         error
	LastRequest provider.RecognitionRequest
}

func (s *Recognizer) Name() string { return "stub-recognizer" }

func (s *Recognizer) Recognize(_ context.Context, req provider.RecognitionRequest) ([]provider.Segment, error) {
	s.inc()
	s.LastRequest = req
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Segments, nil
}

// Stubs groups one stub of each kind.
type Stubs struct {
	Labels      *LabelDetector
	Describer   *Describer
	Synthesizer *Synthesizer
	Translator  *EchoTranslator
	Recognizer  *Recognizer
}

// New returns stubs with plausible default responses.
func New() *Stubs {
	return &Stubs{
		Labels: &LabelDetector{Labels: []provider.Label{
			{Description: "Pottery", Score: 0.97},
			{Description: "Ceramic", Score: 0.93},
			{Description: "Vase", Score: 0.88},
		}},
		Describer:   &Describer{Text: "A hand-thrown ceramic vase with a speckled glaze."},
		Synthesizer: &Synthesizer{Audio: []byte{0xff, 0xfb, 0x90, 0x64}},
		Translator:  &EchoTranslator{},
		Recognizer: &Recognizer{Segments: []provider.Segment{
			{Transcript: "foo "},
			{Transcript: "bar"},
		}},
	}
}

func (s *Stubs) Set() provider.Set {
	return provider.Set{
		Labels:      s.Labels,
		Describer:   s.Describer,
		Synthesizer: s.Synthesizer,
		Translator:  s.Translator,
		Recognizer:  s.Recognizer,
	}
}
