package gateway

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
)

const describePromptTemplate = "Write a professional marketing description for a handmade craft with the following labels: %s"

// BuildDescribePrompt builds the describer prompt from the joined labels.
func BuildDescribePrompt(labelsText string) string {
	return fmt.Sprintf(describePromptTemplate, labelsText)
}

// BuildSSML wraps text in a speak envelope carrying the speaking rate.
// The text is escaped so markup in user input cannot break the document.
func BuildSSML(text string, rate float64) string {
	return fmt.Sprintf("<speak><prosody rate='%s'>%s</prosody></speak>", formatRate(rate), html.EscapeString(text))
}

// formatRate always keeps a decimal point: 1 -> "1.0", 1.25 -> "1.25".
func formatRate(rate float64) string {
	s := strconv.FormatFloat(rate, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func validRate(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0)
}
