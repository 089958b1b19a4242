package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Voice names a synthesizer voice and the language code it is requested with.
type Voice struct {
	Name         string `yaml:"name"`
	LanguageCode string `yaml:"language_code"`
}

// Speech holds the fixed language defaults and the voice selection table.
type Speech struct {
	DefaultLanguage        string           `yaml:"default_language"`
	DefaultTranslateTarget string           `yaml:"default_translate_target"`
	FallbackVoice          Voice            `yaml:"fallback_voice"`
	Voices                 map[string]Voice `yaml:"voices"`
}

func DefaultSpeech() Speech {
	return Speech{
		DefaultLanguage:        "en",
		DefaultTranslateTarget: "bn",
		FallbackVoice:          Voice{Name: "en-US-Neural2-F", LanguageCode: "en-US"},
		Voices: map[string]Voice{
			"en": {Name: "en-US-Neural2-F", LanguageCode: "en-US"},
			"hi": {Name: "hi-IN-Wavenet-A", LanguageCode: "hi-IN"},
			"bn": {Name: "bn-IN-Wavenet-A", LanguageCode: "bn-IN"},
		},
	}
}

// LoadSpeech reads a YAML voice table. Fields left out of the file keep
// their built-in values; entries under voices replace or extend the table.
func LoadSpeech(path string) (Speech, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Speech{}, fmt.Errorf("failed to read voices file '%s': %w", path, err)
	}

	var file Speech
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Speech{}, fmt.Errorf("failed to parse voices file '%s': %w", path, err)
	}

	speech := DefaultSpeech()
	if file.DefaultLanguage != "" {
		speech.DefaultLanguage = file.DefaultLanguage
	}
	if file.DefaultTranslateTarget != "" {
		speech.DefaultTranslateTarget = file.DefaultTranslateTarget
	}
	if file.FallbackVoice.Name != "" {
		speech.FallbackVoice = file.FallbackVoice
	}
	for lang, voice := range file.Voices {
		if voice.Name == "" {
			return Speech{}, fmt.Errorf("voices file '%s': voice for %q has no name", path, lang)
		}
		speech.Voices[lang] = voice
	}
	return speech, nil
}

// VoiceFor returns the voice configured for lang, or the fallback voice.
// A voice without its own language code is requested with lang itself.
func (s Speech) VoiceFor(lang string) Voice {
	voice, ok := s.Voices[lang]
	if !ok {
		return s.FallbackVoice
	}
	if voice.LanguageCode == "" {
		voice.LanguageCode = lang
	}
	return voice
}
