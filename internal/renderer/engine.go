package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"resumeforge/pkg/models"
)

// Engine renders resume documents into printable HTML using named themes
type Engine struct {
}

func NewEngine() *Engine { return &Engine{} }

// DefaultTheme is the theme used when the caller does not pick one
const DefaultTheme = "DEFAULT_THEME"

// Render takes a resume document and theme name, and returns HTML as string
func (e *Engine) Render(doc *models.ResumeDocument, theme string) (string, error) {
	tstr, err := getThemeTemplate(theme)
	if err != nil {
		return "", err
	}

	vm := buildViewModel(doc)

	funcMap := template.FuncMap{
		"join": strings.Join,
	}
	tmpl, err := template.New("resume").Funcs(funcMap).Parse(tstr)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vm); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// RenderHTML renders with the default theme; this is the pipeline-facing entry
func (e *Engine) RenderHTML(doc *models.ResumeDocument) (string, error) {
	return e.Render(doc, DefaultTheme)
}

func getThemeTemplate(theme string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(theme)) {
	case "", DefaultTheme:
		return defaultThemeTemplate, nil
	default:
		return "", fmt.Errorf("unknown theme: %s", theme)
	}
}

// ===== View model and helpers =====

type ContactVM struct {
	Email    string
	Phone    string
	Location string
}

type ViewModel struct {
	FullName       string
	JobTitle       string
	Contact        ContactVM
	Summary        string
	Experience     []models.Experience
	Projects       []models.Project
	Education      []models.Education
	Skills         []string
	Certifications []string

	HasExperience     bool
	HasProjects       bool
	HasEducation      bool
	HasSkills         bool
	HasCertifications bool
}

func buildViewModel(doc *models.ResumeDocument) ViewModel {
	name := strings.TrimSpace(doc.FullName)
	if name == "" {
		name = "Unnamed Candidate"
	}

	return ViewModel{
		FullName: name,
		JobTitle: doc.JobTitle,
		Contact: ContactVM{
			Email:    doc.Email,
			Phone:    doc.Phone,
			Location: doc.Location,
		},
		Summary:        doc.Summary,
		Experience:     doc.Experience,
		Projects:       doc.Projects,
		Education:      doc.Education,
		Skills:         doc.Skills,
		Certifications: doc.Certifications,

		HasExperience:     len(doc.Experience) > 0,
		HasProjects:       len(doc.Projects) > 0,
		HasEducation:      len(doc.Education) > 0,
		HasSkills:         len(doc.Skills) > 0,
		HasCertifications: len(doc.Certifications) > 0,
	}
}
