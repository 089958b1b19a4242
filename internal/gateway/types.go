package gateway

import (
	"encoding/hex"
	"strings"

	"artisan/internal/config"
)

type ImageAnalysisRequest struct {
	Image []byte
}

type ImageAnalysisResult struct {
	Labels      []string
	Description string
}

// LabelsText is the comma-joined label list sent to the client and embedded
// in the prompt.
func (r *ImageAnalysisResult) LabelsText() string {
	return strings.Join(r.Labels, ", ")
}

// SpeechRequest carries the synthesis input. Empty Language and nil
// SpeakingRate select the configured defaults.
type SpeechRequest struct {
	Text         string
	Language     string
	SpeakingRate *float64
}

type SpeechResult struct {
	Audio []byte
	Voice config.Voice
}

// AudioHex is the transport encoding used in the JSON envelope.
func (r *SpeechResult) AudioHex() string {
	return hex.EncodeToString(r.Audio)
}

type TranslationRequest struct {
	Text   string
	Target string
}

type TranslationResult struct {
	Translation    string
	SourceLanguage string
}

type TranscriptionRequest struct {
	Audio []byte
}

type TranscriptionResult struct {
	Transcript string
	Segments   int
}
