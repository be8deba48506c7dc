package resume

import (
	"encoding/json"
	"fmt"

	"resumeforge/pkg/models"
)

// SectionNotFoundError reports that the model output did not contain the
// requested section under any recognized wrapper key
type SectionNotFoundError struct {
	Section string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section %q not found in model output", e.Section)
}

// wrapperKeys are keys the model is known to misnest section payloads under
// despite being asked for a bare {"<section>": <value>} object
var wrapperKeys = []string{"div", "section"}

// MergeSection produces a new resume document equal to current with exactly
// the named section replaced by the value found in modelOutput. The input
// document is never mutated.
//
// Resolution order for the section value: the direct key first, then one
// level under each recognized wrapper key. First match wins.
func MergeSection(section string, modelOutput map[string]json.RawMessage, current *models.ResumeDocument) (*models.ResumeDocument, error) {
	value, ok := lookupSection(section, modelOutput)
	if !ok {
		return nil, &SectionNotFoundError{Section: section}
	}

	base, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("encode current resume: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(base, &doc); err != nil {
		return nil, fmt.Errorf("decode current resume: %w", err)
	}
	doc[section] = value

	merged, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode merged resume: %w", err)
	}

	out := &models.ResumeDocument{}
	if err := json.Unmarshal(merged, out); err != nil {
		return nil, fmt.Errorf("section %q value has wrong shape: %w", section, err)
	}
	out.Normalize()

	return out, nil
}

func lookupSection(section string, modelOutput map[string]json.RawMessage) (json.RawMessage, bool) {
	if value, ok := modelOutput[section]; ok {
		return value, true
	}

	for _, wrapper := range wrapperKeys {
		raw, ok := modelOutput[wrapper]
		if !ok {
			continue
		}
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(raw, &inner); err != nil {
			continue
		}
		if value, ok := inner[section]; ok {
			return value, true
		}
	}

	return nil, false
}
