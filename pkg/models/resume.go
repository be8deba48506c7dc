package models

// Experience represents a single work-experience entry in a resume
type Experience struct {
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Project represents a single project entry in a resume
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Education represents a single education entry in a resume
type Education struct {
	Institution string `json:"institution"`
	Duration    string `json:"duration"`
	Course      string `json:"course"`
}

// ResumeDocument is the canonical resume shape produced and consumed by the
// generation pipeline. Every field is always present in serialized form,
// even when empty.
type ResumeDocument struct {
	FullName       string       `json:"full_name"`
	JobTitle       string       `json:"job_title"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Location       string       `json:"location"`
	Summary        string       `json:"summary"`
	Experience     []Experience `json:"experience"`
	Projects       []Project    `json:"projects"`
	Education      []Education  `json:"education"`
	Skills         []string     `json:"skills"`
	Certifications []string     `json:"certifications"`
}

// SectionNames lists the top-level resume fields addressable by the
// section-update operation.
var SectionNames = []string{
	"full_name",
	"job_title",
	"email",
	"phone",
	"location",
	"summary",
	"experience",
	"projects",
	"education",
	"skills",
	"certifications",
}

// IsValidSection reports whether name is an addressable resume section
func IsValidSection(name string) bool {
	for _, s := range SectionNames {
		if s == name {
			return true
		}
	}
	return false
}

// Normalize replaces nil sequences with empty ones so that all fields
// serialize as present even when the model returned nothing for them
func (d *ResumeDocument) Normalize() {
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills == nil {
		d.Skills = []string{}
	}
	if d.Certifications == nil {
		d.Certifications = []string{}
	}
}
