package google

import (
	"context"
	"encoding/base64"
	"time"

	log "github.com/sirupsen/logrus"

	"artisan/internal/provider"
)

// Speech implements provider.Recognizer using Google Cloud Speech-to-Text REST API
type Speech struct {
	client *Client
}

func NewSpeech(c *Client) *Speech {
	return &Speech{client: c}
}

func (s *Speech) Name() string {
	return "google-speech"
}

// recognizeRequest represents Google Speech-to-Text API request
type recognizeRequest struct {
	Config recognitionConfig `json:"config"`
	Audio  recognitionAudio  `json:"audio"`
}

type recognitionConfig struct {
	Encoding     string `json:"encoding"`
	LanguageCode string `json:"languageCode"`
}

type recognitionAudio struct {
	Content string `json:"content"` // Base64 encoded
}

type recognizeResponse struct {
	Results []speechResult `json:"results"`
}

type speechResult struct {
	Alternatives []speechAlternative `json:"alternatives"`
}

type speechAlternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// Recognize returns one segment per result, taken from its best alternative.
// An empty result list is not an error: the audio simply had no speech.
func (s *Speech) Recognize(ctx context.Context, req provider.RecognitionRequest) ([]provider.Segment, error) {
	startTime := time.Now()
	log.Printf("[Google STT] Processing audio, size: %d bytes, encoding: %s, language: %s",
		len(req.Audio), req.Encoding, req.LanguageCode)

	reqBody := recognizeRequest{
		Config: recognitionConfig{
			Encoding:     req.Encoding,
			LanguageCode: req.LanguageCode,
		},
		Audio: recognitionAudio{
			Content: base64.StdEncoding.EncodeToString(req.Audio),
		},
	}

	var resp recognizeResponse
	if err := s.client.post(ctx, s.client.endpoints.Speech+"/v1/speech:recognize", reqBody, &resp); err != nil {
		log.Printf("[Google STT] API error: %v", err)
		return nil, err
	}

	segments := make([]provider.Segment, 0, len(resp.Results))
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		alt := result.Alternatives[0]
		segments = append(segments, provider.Segment{Transcript: alt.Transcript, Confidence: alt.Confidence})
	}

	log.Printf("[Google STT] Recognized %d segments in %v", len(segments), time.Since(startTime))
	return segments, nil
}
