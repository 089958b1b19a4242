package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artisan/internal/config"
	"artisan/internal/metrics"
	"artisan/internal/provider"
	"artisan/internal/provider/providertest"
)

// pngHeader is enough for MIME sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type recordingReporter struct {
	errs []error
	tags []map[string]string
}

func (r *recordingReporter) Report(err error, tags map[string]string) {
	r.errs = append(r.errs, err)
	r.tags = append(r.tags, tags)
}

func newGateway(stubs *providertest.Stubs, opts ...Option) *Gateway {
	return New(stubs.Set(), config.DefaultSpeech(), opts...)
}

func floatPtr(f float64) *float64 { return &f }

func TestAnalyzeImage(t *testing.T) {
	stubs := providertest.New()
	g := newGateway(stubs)

	res, err := g.AnalyzeImage(context.Background(), ImageAnalysisRequest{Image: pngHeader})
	require.NoError(t, err)

	assert.Equal(t, []string{"Pottery", "Ceramic", "Vase"}, res.Labels)
	assert.Equal(t, "Pottery, Ceramic, Vase", res.LabelsText())
	assert.Equal(t, "A hand-thrown ceramic vase with a speckled glaze.", res.Description)

	assert.Equal(t, pngHeader, stubs.Labels.LastImage)
	assert.Equal(t, pngHeader, stubs.Describer.LastImage)
	assert.Equal(t, "image/png", stubs.Describer.LastMIMEType)
	assert.Equal(t,
		"Write a professional marketing description for a handmade craft with the following labels: Pottery, Ceramic, Vase",
		stubs.Describer.LastPrompt)
}

func TestAnalyzeImageUnknownFormatDefaultsToJPEG(t *testing.T) {
	stubs := providertest.New()
	_, err := newGateway(stubs).AnalyzeImage(context.Background(), ImageAnalysisRequest{Image: []byte("raw bytes")})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", stubs.Describer.LastMIMEType)
}

func TestAnalyzeImageNoLabels(t *testing.T) {
	stubs := providertest.New()
	stubs.Labels.Labels = nil

	res, err := newGateway(stubs).AnalyzeImage(context.Background(), ImageAnalysisRequest{Image: pngHeader})
	require.NoError(t, err)
	assert.Equal(t, "", res.LabelsText())
	assert.Equal(t, BuildDescribePrompt(""), stubs.Describer.LastPrompt)
}

func TestAnalyzeImageValidation(t *testing.T) {
	stubs := providertest.New()
	_, err := newGateway(stubs).AnalyzeImage(context.Background(), ImageAnalysisRequest{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "No image uploaded", verr.Message)
	assert.Zero(t, stubs.Labels.Calls())
	assert.Zero(t, stubs.Describer.Calls())
}

func TestAnalyzeImageProviderFailures(t *testing.T) {
	t.Run("label detector", func(t *testing.T) {
		stubs := providertest.New()
		stubs.Labels.Err = errors.New("403 PERMISSION_DENIED")
		reporter := &recordingReporter{}

		_, err := newGateway(stubs, WithReporter(reporter)).AnalyzeImage(context.Background(), ImageAnalysisRequest{Image: pngHeader})

		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "403 PERMISSION_DENIED", err.Error())
		assert.Equal(t, "stub-labels", perr.Provider)
		assert.Equal(t, "detect_labels", perr.Operation)
		assert.Zero(t, stubs.Describer.Calls())
		require.Len(t, reporter.errs, 1)
		assert.Equal(t, "stub-labels", reporter.tags[0]["provider"])
	})

	t.Run("describer", func(t *testing.T) {
		stubs := providertest.New()
		stubs.Describer.Err = errors.New("quota exceeded")

		_, err := newGateway(stubs).AnalyzeImage(context.Background(), ImageAnalysisRequest{Image: pngHeader})

		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "quota exceeded", err.Error())
		assert.Equal(t, "describe", perr.Operation)
		assert.Equal(t, 1, stubs.Labels.Calls())
	})
}

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name      string
		req       SpeechRequest
		wantVoice string
		wantLang  string
		wantSSML  string
	}{
		{
			name:      "defaults",
			req:       SpeechRequest{Text: "hello"},
			wantVoice: "en-US-Neural2-F",
			wantLang:  "en-US",
			wantSSML:  "<speak><prosody rate='1.0'>hello</prosody></speak>",
		},
		{
			name:      "hindi at custom rate",
			req:       SpeechRequest{Text: "namaste", Language: "hi", SpeakingRate: floatPtr(0.85)},
			wantVoice: "hi-IN-Wavenet-A",
			wantLang:  "hi-IN",
			wantSSML:  "<speak><prosody rate='0.85'>namaste</prosody></speak>",
		},
		{
			name:      "bengali",
			req:       SpeechRequest{Text: "nomoskar", Language: "bn", SpeakingRate: floatPtr(2)},
			wantVoice: "bn-IN-Wavenet-A",
			wantLang:  "bn-IN",
			wantSSML:  "<speak><prosody rate='2.0'>nomoskar</prosody></speak>",
		},
		{
			name:      "unrecognized language falls back",
			req:       SpeechRequest{Text: "bonjour", Language: "fr"},
			wantVoice: "en-US-Neural2-F",
			wantLang:  "en-US",
			wantSSML:  "<speak><prosody rate='1.0'>bonjour</prosody></speak>",
		},
		{
			name:      "markup is escaped",
			req:       SpeechRequest{Text: "clay & <glaze>"},
			wantVoice: "en-US-Neural2-F",
			wantLang:  "en-US",
			wantSSML:  "<speak><prosody rate='1.0'>clay &amp; &lt;glaze&gt;</prosody></speak>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubs := providertest.New()
			res, err := newGateway(stubs).Synthesize(context.Background(), tt.req)
			require.NoError(t, err)

			got := stubs.Synthesizer.LastRequest
			assert.Equal(t, tt.wantVoice, got.VoiceName)
			assert.Equal(t, tt.wantLang, got.LanguageCode)
			assert.Equal(t, tt.wantSSML, got.SSML)
			assert.Equal(t, provider.EncodingMP3, got.Encoding)
			assert.Equal(t, "fffb9064", res.AudioHex())
			assert.Equal(t, tt.wantVoice, res.Voice.Name)
		})
	}
}

func TestSynthesizeValidation(t *testing.T) {
	tests := []struct {
		name string
		req  SpeechRequest
		want string
	}{
		{"empty text", SpeechRequest{}, "No text provided"},
		{"zero rate", SpeechRequest{Text: "hi", SpeakingRate: floatPtr(0)}, "speakingRate must be a positive number"},
		{"negative rate", SpeechRequest{Text: "hi", SpeakingRate: floatPtr(-1.5)}, "speakingRate must be a positive number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubs := providertest.New()
			_, err := newGateway(stubs).Synthesize(context.Background(), tt.req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Message)
			assert.Zero(t, stubs.Synthesizer.Calls())
		})
	}
}

func TestSynthesizeProviderFailure(t *testing.T) {
	stubs := providertest.New()
	stubs.Synthesizer.Err = errors.New("Voice 'xx' does not exist")

	_, err := newGateway(stubs).Synthesize(context.Background(), SpeechRequest{Text: "hi"})
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Voice 'xx' does not exist", err.Error())
}

func TestTranslate(t *testing.T) {
	stubs := providertest.New()
	g := newGateway(stubs)

	res, err := g.Translate(context.Background(), TranslationRequest{Text: "hello", Target: "bn"})
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Translation)
	assert.Equal(t, "bn", stubs.Translator.LastTarget)

	_, err = g.Translate(context.Background(), TranslationRequest{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "bn", stubs.Translator.LastTarget, "default target")

	_, err = g.Translate(context.Background(), TranslationRequest{Text: "hello", Target: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", stubs.Translator.LastTarget)
}

func TestTranslateValidationAndFailure(t *testing.T) {
	stubs := providertest.New()
	g := newGateway(stubs)

	_, err := g.Translate(context.Background(), TranslationRequest{Target: "bn"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, stubs.Translator.Calls())

	stubs.Translator.Err = errors.New("Invalid Value")
	_, err = g.Translate(context.Background(), TranslationRequest{Text: "hello", Target: "zz"})
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Invalid Value", err.Error())
}

func TestTranscribe(t *testing.T) {
	stubs := providertest.New()
	res, err := newGateway(stubs).Transcribe(context.Background(), TranscriptionRequest{Audio: []byte("mp3")})
	require.NoError(t, err)

	assert.Equal(t, "foo bar", res.Transcript)
	assert.Equal(t, 2, res.Segments)
	assert.Equal(t, provider.RecognitionRequest{
		Audio:        []byte("mp3"),
		Encoding:     "MP3",
		LanguageCode: "en-US",
	}, stubs.Recognizer.LastRequest)
}

func TestTranscribeNoSpeech(t *testing.T) {
	stubs := providertest.New()
	stubs.Recognizer.Segments = nil

	res, err := newGateway(stubs).Transcribe(context.Background(), TranscriptionRequest{Audio: []byte("mp3")})
	require.NoError(t, err)
	assert.Equal(t, "", res.Transcript)
}

func TestTranscribeValidationAndFailure(t *testing.T) {
	stubs := providertest.New()
	g := newGateway(stubs)

	_, err := g.Transcribe(context.Background(), TranscriptionRequest{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "No audio file provided", verr.Message)
	assert.Zero(t, stubs.Recognizer.Calls())

	stubs.Recognizer.Err = errors.New("bad encoding")
	_, err = g.Transcribe(context.Background(), TranscriptionRequest{Audio: []byte("mp3")})
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad encoding", err.Error())
}

func TestProviderCallMetrics(t *testing.T) {
	stubs := providertest.New()
	m := metrics.New()
	g := newGateway(stubs, WithMetrics(m))

	_, _ = g.Translate(context.Background(), TranslationRequest{Text: "hello"})
	stubs.Translator.Err = errors.New("down")
	_, _ = g.Translate(context.Background(), TranslationRequest{Text: "hello"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderCalls.WithLabelValues("stub-translator", "translate", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderCalls.WithLabelValues("stub-translator", "translate", "error")))
}

func TestVoiceFor(t *testing.T) {
	g := newGateway(providertest.New())
	assert.Equal(t, "hi-IN-Wavenet-A", g.VoiceFor("hi").Name)
	assert.Equal(t, "en-US-Neural2-F", g.VoiceFor("en-US").Name)
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "1.0", formatRate(1))
	assert.Equal(t, "1.25", formatRate(1.25))
	assert.Equal(t, "0.5", formatRate(0.5))
	assert.Equal(t, "3.0", formatRate(3))
}
