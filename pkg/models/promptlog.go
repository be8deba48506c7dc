package models

import "time"

// Prompt log statuses
const (
	PromptStatusPending   = "pending"
	PromptStatusCompleted = "completed"
	PromptStatusError     = "error"
)

// Prompt types recorded in the audit log
const (
	PromptTypeFullResume      = "full_resume"
	PromptTypeFullResumeArray = "full_resume_array"
	PromptTypeSectionPrefix   = "section_" // followed by the section name
)

// PromptLogEntry is the durable audit record of a single request sent to the
// external language model. Entries are created with status pending before the
// call and patched exactly once after the call resolves.
type PromptLogEntry struct {
	LogID        int64     `json:"log_id"`
	UserID       string    `json:"user_id"`
	JobseekerID  *string   `json:"jobseeker_id,omitempty"`
	PromptText   string    `json:"prompt_text"`
	PromptType   string    `json:"prompt_type"`
	ModelUsed    string    `json:"model_used"`
	Status       string    `json:"status"`
	GPTResponse  string    `json:"gpt_response,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
