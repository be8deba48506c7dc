package renderer

import (
	"strings"
	"testing"

	"resumeforge/pkg/models"
)

func TestRenderDefaultTheme(t *testing.T) {
	e := NewEngine()
	doc := &models.ResumeDocument{
		FullName: "Ada Lovelace",
		JobTitle: "Engineer",
		Email:    "ada@example.com",
		Summary:  "Builds compilers",
		Skills:   []string{"Go", "SQL"},
		Experience: []models.Experience{
			{Company: "Analytical Engines Ltd", Duration: "1840-1850", Description: "Wrote the first program"},
		},
	}

	html, err := e.RenderHTML(doc)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}

	for _, want := range []string{"Ada Lovelace", "Engineer", "ada@example.com", "Analytical Engines Ltd", "<li>Go</li>", "<li>SQL</li>"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	e := NewEngine()
	doc := &models.ResumeDocument{FullName: `<script>alert("x")</script>`}

	html, err := e.RenderHTML(doc)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Fatal("model-supplied text must be escaped")
	}
}

func TestRenderEmptyNameFallback(t *testing.T) {
	e := NewEngine()
	html, err := e.RenderHTML(&models.ResumeDocument{})
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(html, "Unnamed Candidate") {
		t.Fatal("expected fallback candidate name")
	}
}

func TestRenderSkipsEmptySections(t *testing.T) {
	e := NewEngine()
	html, err := e.RenderHTML(&models.ResumeDocument{FullName: "Ada"})
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	for _, heading := range []string{"Experience", "Projects", "Education", "Certifications"} {
		if strings.Contains(html, ">"+heading+"<") {
			t.Errorf("empty section %q should not render a heading", heading)
		}
	}
}

func TestRenderUnknownTheme(t *testing.T) {
	e := NewEngine()
	if _, err := e.Render(&models.ResumeDocument{}, "NEON_DARK"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestRenderThemeNameIsCaseInsensitive(t *testing.T) {
	e := NewEngine()
	if _, err := e.Render(&models.ResumeDocument{FullName: "Ada"}, "default_theme"); err != nil {
		t.Fatalf("Render: %v", err)
	}
}
