package provider

import "context"

// LabelDetector returns descriptive labels for an image
type LabelDetector interface {
	DetectLabels(ctx context.Context, image []byte) ([]Label, error)

	// Name returns the name of the provider (e.g., "google")
	Name() string
}

// Describer generates free text about an image guided by a prompt
type Describer interface {
	Describe(ctx context.Context, image []byte, mimeType, prompt string) (string, error)
	Name() string
}

// Synthesizer turns SSML into encoded audio
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error)
	Name() string
}

// Translator translates text into a target language
type Translator interface {
	Translate(ctx context.Context, text, target string) (*Translation, error)
	Name() string
}

// Recognizer transcribes encoded audio. Segments are returned in provider order.
type Recognizer interface {
	Recognize(ctx context.Context, req RecognitionRequest) ([]Segment, error)
	Name() string
}

// Set bundles the provider handles shared by every request.
type Set struct {
	Labels      LabelDetector
	Describer   Describer
	Synthesizer Synthesizer
	Translator  Translator
	Recognizer  Recognizer
}
