// Package google calls Google Cloud REST APIs (Vision, Vertex AI Gemini,
// Text-to-Speech, Translation, Speech-to-Text) with one shared authenticated
// HTTP client.
package google

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Endpoints are the API base URLs. Zero values fall back to the public
// Google endpoints; tests point them at local servers.
type Endpoints struct {
	Vision             string
	AIPlatform         string // empty: https://{location}-aiplatform.googleapis.com
	GenerativeLanguage string
	TextToSpeech       string
	Translate          string
	Speech             string
}

func (e Endpoints) withDefaults(location string) Endpoints {
	if e.Vision == "" {
		e.Vision = "https://vision.googleapis.com"
	}
	if e.AIPlatform == "" {
		e.AIPlatform = fmt.Sprintf("https://%s-aiplatform.googleapis.com", location)
	}
	if e.GenerativeLanguage == "" {
		e.GenerativeLanguage = "https://generativelanguage.googleapis.com"
	}
	if e.TextToSpeech == "" {
		e.TextToSpeech = "https://texttospeech.googleapis.com"
	}
	if e.Translate == "" {
		e.Translate = "https://translation.googleapis.com"
	}
	if e.Speech == "" {
		e.Speech = "https://speech.googleapis.com"
	}
	return e
}

// Client is the authenticated transport shared by every Google provider.
type Client struct {
	http      *resty.Client
	apiKey    string
	projectID string
	location  string
	endpoints Endpoints
}

type Option func(*Client)

func WithEndpoints(e Endpoints) Option {
	return func(c *Client) {
		c.endpoints = e.withDefaults(c.location)
	}
}

// WithHTTPClient replaces the credential-derived HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc)
	}
}

// NewClient creates a Google client.
// keyData can be either:
//   - An API key (39 characters, typically starts with "AIzaSy")
//   - A file path to a JSON key file (e.g., "./keys/service-account.json")
//   - A JSON string containing the service account credentials
//   - Empty, to use application default credentials
func NewClient(ctx context.Context, projectID, location, keyData string, opts ...Option) (*Client, error) {
	c := &Client{
		projectID: projectID,
		location:  location,
	}
	c.endpoints = Endpoints{}.withDefaults(location)

	hc, apiKey, err := newHTTPClient(ctx, strings.TrimSpace(keyData))
	if err != nil {
		return nil, err
	}
	c.http = resty.NewWithClient(hc)
	c.apiKey = apiKey

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// IsAPIKey reports whether keyData looks like a Google API key rather than
// service account credentials.
func IsAPIKey(keyData string) bool {
	keyData = strings.TrimSpace(keyData)
	return len(keyData) == 39 && strings.HasPrefix(keyData, "AIzaSy")
}

func newHTTPClient(ctx context.Context, keyData string) (*http.Client, string, error) {
	if IsAPIKey(keyData) {
		log.Printf("[Google] Using API key authentication")
		return &http.Client{}, keyData, nil
	}

	var creds *google.Credentials
	var err error

	switch {
	case keyData == "":
		creds, err = google.FindDefaultCredentials(ctx, cloudPlatformScope)
		if err != nil {
			return nil, "", fmt.Errorf("failed to find default credentials: %w. Please set GOOGLE_APPLICATION_CREDENTIALS", err)
		}
		log.Printf("[Google] Using application default credentials")
	case strings.HasPrefix(keyData, "{"):
		log.Printf("[Google] Using JSON credentials from environment variable")
		creds, err = google.CredentialsFromJSON(ctx, []byte(keyData), cloudPlatformScope)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create credentials from JSON: %w", err)
		}
	default:
		log.Printf("[Google] Reading key file: %s", keyData)
		jsonData, err := os.ReadFile(keyData)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read key file '%s': %w", keyData, err)
		}
		creds, err = google.CredentialsFromJSON(ctx, jsonData, cloudPlatformScope)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create credentials from JSON: %w", err)
		}
	}

	return oauth2.NewClient(ctx, creds.TokenSource), "", nil
}

// APIError is the error envelope returned by Google APIs.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *APIError) Error() string {
	return e.Message
}

type errorResponse struct {
	Error *APIError `json:"error"`
}

// post sends body as JSON to url and decodes a 2xx response into result.
func (c *Client) post(ctx context.Context, url string, body, result interface{}) error {
	var errResp errorResponse

	req := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(&errResp)
	if c.apiKey != "" {
		req.SetQueryParam("key", c.apiKey)
	}

	resp, err := req.Post(url)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	if resp.IsError() {
		if errResp.Error != nil && errResp.Error.Message != "" {
			if errResp.Error.Code == 0 {
				errResp.Error.Code = resp.StatusCode()
			}
			return errResp.Error
		}
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode(), preview(resp.String(), 500))
	}
	return nil
}

func preview(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
