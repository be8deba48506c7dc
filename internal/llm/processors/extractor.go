package processors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractionError reports that no usable JSON value could be recovered from
// the model output. It retains the raw text for diagnostics.
type ExtractionError struct {
	Raw string
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to extract JSON from model response: %v", e.Err)
	}
	return "failed to extract JSON from model response"
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// JSONExtractor recovers structured JSON from raw language-model output.
// Models routinely wrap JSON in commentary or markdown code fences; the
// extractor first tries the text as-is, then salvages the span between the
// first opening and last closing delimiter.
type JSONExtractor struct{}

// NewJSONExtractor creates a new JSON extractor
func NewJSONExtractor() *JSONExtractor {
	return &JSONExtractor{}
}

// StripFences removes a leading ```json (or bare ```) marker and a trailing
// ``` if present, and trims surrounding whitespace
func (x *JSONExtractor) StripFences(raw string) string {
	text := strings.TrimSpace(raw)

	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}

// ExtractObject locates the first well-formed JSON object in raw and decodes
// it into out. It never leaves out partially populated: decoding only happens
// once a candidate passes structural validation.
func (x *JSONExtractor) ExtractObject(raw string, out any) error {
	return x.extract(raw, "{", "}", out)
}

// ExtractArray locates the first well-formed JSON array in raw and decodes it
// into out
func (x *JSONExtractor) ExtractArray(raw string, out any) error {
	return x.extract(raw, "[", "]", out)
}

// ParseObject decodes raw as a single JSON object after fence stripping, with
// no brace-scanning salvage. Used where the model contract is narrow enough
// that anything but pure JSON is treated as a failure.
func (x *JSONExtractor) ParseObject(raw string, out any) error {
	text := x.StripFences(raw)

	if !json.Valid([]byte(text)) || !strings.HasPrefix(text, "{") {
		return &ExtractionError{Raw: raw, Err: fmt.Errorf("response is not a JSON object")}
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return &ExtractionError{Raw: raw, Err: err}
	}
	return nil
}

func (x *JSONExtractor) extract(raw, open, closing string, out any) error {
	text := x.StripFences(raw)

	// Direct parse first
	if strings.HasPrefix(text, open) && json.Valid([]byte(text)) {
		if err := json.Unmarshal([]byte(text), out); err == nil {
			return nil
		}
	}

	// Salvage: span from the first opening delimiter to the last closing one.
	// If the response contains two sibling JSON values this span is invalid
	// and extraction fails; that is the documented behavior, not a bug.
	start := strings.Index(text, open)
	end := strings.LastIndex(text, closing)
	if start < 0 || end <= start {
		return &ExtractionError{Raw: raw, Err: fmt.Errorf("no JSON %s...%s span found", open, closing)}
	}

	candidate := text[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return &ExtractionError{Raw: raw, Err: fmt.Errorf("salvaged span is not valid JSON")}
	}
	if err := json.Unmarshal([]byte(candidate), out); err != nil {
		return &ExtractionError{Raw: raw, Err: err}
	}
	return nil
}
