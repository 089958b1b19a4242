// Package model holds the JSON bodies accepted by the HTTP surface.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TTSRequest is the body of POST /tts.
type TTSRequest struct {
	Text         string `json:"text"`
	Lang         string `json:"lang"`
	SpeakingRate *Rate  `json:"speakingRate"`
}

// Rate accepts either a JSON number or a string holding one, since browser
// clients commonly send form values as strings.
type Rate float64

func (r *Rate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("speakingRate must be a number, got %q", s)
		}
		*r = Rate(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("speakingRate must be a number, got %s", data)
	}
	*r = Rate(f)
	return nil
}

// Float returns nil when no rate was sent.
func (r *Rate) Float() *float64 {
	if r == nil {
		return nil
	}
	f := float64(*r)
	return &f
}

// TranslateRequest is the body of POST /translate.
type TranslateRequest struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}
