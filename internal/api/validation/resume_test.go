package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"resumeforge/pkg/models"
)

func TestResumeSectionValidator(t *testing.T) {
	v := validator.New()
	RegisterResumeValidators(v)

	type payload struct {
		Section string `validate:"required,resume_section"`
	}

	for _, section := range models.SectionNames {
		if err := v.Struct(payload{Section: section}); err != nil {
			t.Errorf("section %q should validate: %v", section, err)
		}
	}

	for _, section := range []string{"hobbies", "SUMMARY", "summary "} {
		if err := v.Struct(payload{Section: section}); err == nil {
			t.Errorf("section %q should be rejected", section)
		}
	}
}

func TestThemeValidator(t *testing.T) {
	v := validator.New()
	RegisterResumeValidators(v)

	type payload struct {
		Theme string `validate:"omitempty,theme"`
	}

	valid := []string{"DEFAULT_THEME", "classic", "dark-2"}
	for _, theme := range valid {
		if err := v.Struct(payload{Theme: theme}); err != nil {
			t.Errorf("theme %q should validate: %v", theme, err)
		}
	}

	invalid := []string{"../etc", "a b", "1theme"}
	for _, theme := range invalid {
		if err := v.Struct(payload{Theme: theme}); err == nil {
			t.Errorf("theme %q should be rejected", theme)
		}
	}
}
