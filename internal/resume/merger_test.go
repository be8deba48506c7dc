package resume

import (
	"encoding/json"
	"errors"
	"testing"

	"resumeforge/pkg/models"
)

func baseResume() *models.ResumeDocument {
	return &models.ResumeDocument{
		FullName: "Ada Lovelace",
		JobTitle: "Engineer",
		Summary:  "Original summary",
		Skills:   []string{"Go"},
	}
}

func rawMap(t *testing.T, s string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return m
}

func TestMergeSectionDirectKey(t *testing.T) {
	current := baseResume()
	out, err := MergeSection("summary", rawMap(t, `{"summary": "Rewritten summary"}`), current)
	if err != nil {
		t.Fatalf("MergeSection: %v", err)
	}
	if out.Summary != "Rewritten summary" {
		t.Fatalf("expected rewritten summary, got %q", out.Summary)
	}
	// Untouched sections survive
	if out.FullName != "Ada Lovelace" || len(out.Skills) != 1 {
		t.Fatalf("unrelated sections modified: %+v", out)
	}
}

func TestMergeSectionDivWrapper(t *testing.T) {
	out, err := MergeSection("skills", rawMap(t, `{"div": {"skills": ["Go", "SQL"]}}`), baseResume())
	if err != nil {
		t.Fatalf("MergeSection: %v", err)
	}
	if len(out.Skills) != 2 || out.Skills[1] != "SQL" {
		t.Fatalf("expected merged skills, got %v", out.Skills)
	}
}

func TestMergeSectionSectionWrapper(t *testing.T) {
	out, err := MergeSection("job_title", rawMap(t, `{"section": {"job_title": "Staff Engineer"}}`), baseResume())
	if err != nil {
		t.Fatalf("MergeSection: %v", err)
	}
	if out.JobTitle != "Staff Engineer" {
		t.Fatalf("expected new job title, got %q", out.JobTitle)
	}
}

func TestMergeSectionDirectKeyWinsOverWrapper(t *testing.T) {
	out, err := MergeSection("summary", rawMap(t, `{"summary": "direct", "div": {"summary": "wrapped"}}`), baseResume())
	if err != nil {
		t.Fatalf("MergeSection: %v", err)
	}
	if out.Summary != "direct" {
		t.Fatalf("direct key should win, got %q", out.Summary)
	}
}

func TestMergeSectionNotFound(t *testing.T) {
	_, err := MergeSection("summary", rawMap(t, `{"experience": []}`), baseResume())
	if err == nil {
		t.Fatal("expected section not found error")
	}
	var nf *SectionNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *SectionNotFoundError, got %T", err)
	}
	if nf.Section != "summary" {
		t.Fatalf("error should name the missing section, got %q", nf.Section)
	}
}

func TestMergeSectionDoesNotMutateInput(t *testing.T) {
	current := baseResume()
	_, err := MergeSection("summary", rawMap(t, `{"summary": "changed"}`), current)
	if err != nil {
		t.Fatalf("MergeSection: %v", err)
	}
	if current.Summary != "Original summary" {
		t.Fatalf("input document was mutated: %q", current.Summary)
	}
}

func TestMergeSectionWrongShape(t *testing.T) {
	// skills must be an array of strings
	_, err := MergeSection("skills", rawMap(t, `{"skills": "not-an-array"}`), baseResume())
	if err == nil {
		t.Fatal("expected error for wrong value shape")
	}
}

func TestMergeSectionNormalizesNilSlices(t *testing.T) {
	current := &models.ResumeDocument{FullName: "Ada"}
	out, err := MergeSection("summary", rawMap(t, `{"summary": "s"}`), current)
	if err != nil {
		t.Fatalf("MergeSection: %v", err)
	}
	if out.Experience == nil || out.Skills == nil || out.Certifications == nil {
		t.Fatal("merged document should have empty, not nil, sequences")
	}
}
