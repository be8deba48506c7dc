package models

import "time"

// GenerateResumeResponse is the success envelope for resume generation
type GenerateResumeResponse struct {
	Success       bool            `json:"success"`
	Document      *ResumeDocument `json:"document"`
	RenderedHTML  string          `json:"rendered_html,omitempty"`
	LogID         int64           `json:"log_id"`
	RenderWarning string          `json:"render_warning,omitempty"`
	RequestID     string          `json:"request_id"`
}

// UpdateResumeSectionResponse is the success envelope for a section update
type UpdateResumeSectionResponse struct {
	Success       bool            `json:"success"`
	Section       string          `json:"section"`
	Document      *ResumeDocument `json:"document"`
	RenderedHTML  string          `json:"rendered_html,omitempty"`
	LogID         int64           `json:"log_id"`
	RenderWarning string          `json:"render_warning,omitempty"`
	RequestID     string          `json:"request_id"`
}

// ExportResumeResponse is the success envelope for a PDF export
type ExportResumeResponse struct {
	Success   bool   `json:"success"`
	ExportURL string `json:"export_url"`
	RequestID string `json:"request_id"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
