package fpt

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artisan/internal/provider"
)

func TestRecognize(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    []provider.Segment
		wantErr string
	}{
		{
			name:   "best hypothesis",
			status: http.StatusOK,
			body:   `{"hypotheses": [{"utterance": " xin chào ", "confidence": 0.93}, {"utterance": "sin chao"}]}`,
			want:   []provider.Segment{{Transcript: "xin chào", Confidence: 0.93}},
		},
		{
			name:   "no speech",
			status: http.StatusOK,
			body:   `{"hypotheses": []}`,
			want:   nil,
		},
		{
			name:    "api error code",
			status:  http.StatusOK,
			body:    `{"errorCode": 9, "message": "invalid audio"}`,
			wantErr: "FPT.AI API error 9: invalid audio",
		},
		{
			name:    "http error",
			status:  http.StatusUnauthorized,
			body:    `{"message": "bad key"}`,
			wantErr: "status 401",
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `not json`,
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "test-key", r.Header.Get("api-key"))
				data, _ := io.ReadAll(r.Body)
				assert.Equal(t, "audio-bytes", string(data))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewProvider("test-key", srv.URL)
			segments, err := p.Recognize(context.Background(), provider.RecognitionRequest{
				Audio:    []byte("audio-bytes"),
				Encoding: provider.EncodingMP3,
			})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, segments)
		})
	}
}
