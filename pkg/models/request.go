package models

// GenerateResumeRequest is the request body for the full-resume generation
// endpoints (object and array form)
type GenerateResumeRequest struct {
	Prompt      string  `json:"prompt" validate:"required"`
	UserID      string  `json:"user_id" validate:"required"`
	JobseekerID *string `json:"jobseeker_id,omitempty"`
}

// UpdateResumeSectionRequest is the request body for editing a single
// section of an existing resume
type UpdateResumeSectionRequest struct {
	Section       string          `json:"section" validate:"required,resume_section"`
	Prompt        string          `json:"prompt" validate:"required"`
	CurrentResume *ResumeDocument `json:"current_resume" validate:"required"`
	UserID        string          `json:"user_id" validate:"required"`
	JobseekerID   *string         `json:"jobseeker_id,omitempty"`
}

// ExportResumeRequest is the request body for rendering a resume to PDF and
// uploading it to the content store
type ExportResumeRequest struct {
	Resume *ResumeDocument `json:"resume" validate:"required"`
	UserID string          `json:"user_id" validate:"required"`
	Theme  string          `json:"theme,omitempty" validate:"omitempty,theme"`
}
