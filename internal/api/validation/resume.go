package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"resumeforge/pkg/models"
)

// ValidateResumeSection checks the section name against the known resume sections
func ValidateResumeSection(fl validator.FieldLevel) bool {
	return models.IsValidSection(fl.Field().String())
}

// ThemePattern restricts themes to safe tokens (e.g., DEFAULT_THEME)
var ThemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{1,31}$`)

// ValidateTheme ensures theme name is a safe token
func ValidateTheme(fl validator.FieldLevel) bool {
	return ThemePattern.MatchString(fl.Field().String())
}

// RegisterResumeValidators registers all resume-related custom validators
func RegisterResumeValidators(v *validator.Validate) {
	v.RegisterValidation("resume_section", ValidateResumeSection)
	v.RegisterValidation("theme", ValidateTheme)
}
