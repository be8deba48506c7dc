package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalizedDocumentSerializesAllFields(t *testing.T) {
	doc := &ResumeDocument{FullName: "Ada"}
	doc.Normalize()

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for _, key := range SectionNames {
		if !strings.Contains(string(data), `"`+key+`"`) {
			t.Errorf("serialized document missing field %q", key)
		}
	}
	if strings.Contains(string(data), "null") {
		t.Fatalf("normalized document must not serialize null sequences: %s", data)
	}
}

func TestIsValidSection(t *testing.T) {
	for _, name := range SectionNames {
		if !IsValidSection(name) {
			t.Errorf("%q should be a valid section", name)
		}
	}
	if IsValidSection("hobbies") || IsValidSection("") {
		t.Error("unknown names must not validate")
	}
}
