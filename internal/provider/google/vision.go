package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"artisan/internal/provider"
)

// Vision implements provider.LabelDetector using the Cloud Vision API.
type Vision struct {
	client *Client
}

func NewVision(c *Client) *Vision {
	return &Vision{client: c}
}

func (v *Vision) Name() string {
	return "google-vision"
}

type annotateRequest struct {
	Requests []annotateImageRequest `json:"requests"`
}

type annotateImageRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"` // Base64 encoded
}

type visionFeature struct {
	Type string `json:"type"`
}

type annotateResponse struct {
	Responses []annotateImageResponse `json:"responses"`
}

type annotateImageResponse struct {
	LabelAnnotations []entityAnnotation `json:"labelAnnotations"`
	Error            *APIError          `json:"error,omitempty"`
}

type entityAnnotation struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// DetectLabels returns labels in the order the API ranks them.
func (v *Vision) DetectLabels(ctx context.Context, image []byte) ([]provider.Label, error) {
	startTime := time.Now()
	log.Printf("[Google Vision] Detecting labels, image size: %d bytes", len(image))

	reqBody := annotateRequest{
		Requests: []annotateImageRequest{{
			Image:    visionImage{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []visionFeature{{Type: "LABEL_DETECTION"}},
		}},
	}

	var resp annotateResponse
	if err := v.client.post(ctx, v.client.endpoints.Vision+"/v1/images:annotate", reqBody, &resp); err != nil {
		log.Printf("[Google Vision] API error: %v", err)
		return nil, err
	}

	if len(resp.Responses) == 0 {
		return nil, fmt.Errorf("vision API returned no responses")
	}
	if apiErr := resp.Responses[0].Error; apiErr != nil && apiErr.Message != "" {
		log.Printf("[Google Vision] Image error: Code %d, Message: %s", apiErr.Code, apiErr.Message)
		return nil, apiErr
	}

	labels := make([]provider.Label, 0, len(resp.Responses[0].LabelAnnotations))
	for _, a := range resp.Responses[0].LabelAnnotations {
		labels = append(labels, provider.Label{Description: a.Description, Score: a.Score})
	}

	log.Printf("[Google Vision] Detected %d labels in %v", len(labels), time.Since(startTime))
	return labels, nil
}
