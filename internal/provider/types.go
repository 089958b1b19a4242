package provider

// AudioEncoding values follow the Google Cloud enum names.
const (
	EncodingMP3 = "MP3"
)

type Label struct {
	Description string
	Score       float64
}

type SynthesisRequest struct {
	SSML         string
	LanguageCode string
	VoiceName    string
	Encoding     string
}

type Translation struct {
	Text                   string
	DetectedSourceLanguage string
}

type RecognitionRequest struct {
	Audio        []byte
	Encoding     string
	LanguageCode string
}

// Segment is one recognized chunk of audio. Confidence may be 0 if the
// provider does not report one.
type Segment struct {
	Transcript string
	Confidence float64
}
