package promptlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"resumeforge/pkg/models"
)

// ErrNotFound is returned when a prompt log entry does not exist
var ErrNotFound = errors.New("prompt log entry not found")

// CreateParams are the fields recorded when a prompt is logged, before the
// external model call is made
type CreateParams struct {
	UserID      string
	JobseekerID *string
	PromptText  string
	PromptType  string
	ModelUsed   string
}

// UpdateParams patch a prompt log entry after the model call resolves.
// Nil pointers leave the column untouched.
type UpdateParams struct {
	Status       string
	GPTResponse  *string
	ErrorMessage *string
	ModelUsed    *string
}

// Store persists the audit trail of prompts sent to the external model
type Store interface {
	// Create inserts a new entry with status pending and returns its log id
	Create(ctx context.Context, params CreateParams) (int64, error)

	// Update patches the entry after the model call resolves
	Update(ctx context.Context, logID int64, params UpdateParams) error

	// GetByID fetches a single entry
	GetByID(ctx context.Context, logID int64) (*models.PromptLogEntry, error)
}

// PGStore is the Postgres-backed prompt log store
type PGStore struct {
	DB *sql.DB
}

// NewPGStore creates a prompt log store on top of an existing connection pool
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) Create(ctx context.Context, params CreateParams) (int64, error) {
	const query = `
INSERT INTO resumeai_prompt_log (user_id, jobseeker_id, prompt_text, prompt_type, model_used, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
RETURNING log_id`

	var logID int64
	err := s.DB.QueryRowContext(ctx, query,
		params.UserID,
		nullableStringPtr(params.JobseekerID),
		params.PromptText,
		nullableString(params.PromptType),
		nullableString(params.ModelUsed),
		models.PromptStatusPending,
	).Scan(&logID)
	if err != nil {
		return 0, fmt.Errorf("insert prompt log: %w", err)
	}
	return logID, nil
}

func (s *PGStore) Update(ctx context.Context, logID int64, params UpdateParams) error {
	const query = `
UPDATE resumeai_prompt_log
SET status = $2,
    gpt_response = COALESCE($3, gpt_response),
    error_message = COALESCE($4, error_message),
    model_used = COALESCE($5, model_used),
    updated_at = now()
WHERE log_id = $1`

	result, err := s.DB.ExecContext(ctx, query,
		logID,
		params.Status,
		params.GPTResponse,
		params.ErrorMessage,
		params.ModelUsed,
	)
	if err != nil {
		return fmt.Errorf("update prompt log %d: %w", logID, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) GetByID(ctx context.Context, logID int64) (*models.PromptLogEntry, error) {
	const query = `
SELECT log_id, user_id, jobseeker_id, prompt_text, prompt_type, model_used, status, gpt_response, error_message, created_at, updated_at
FROM resumeai_prompt_log
WHERE log_id = $1
LIMIT 1`

	var entry models.PromptLogEntry
	var jobseekerID sql.NullString
	var promptType sql.NullString
	var modelUsed sql.NullString
	var gptResponse sql.NullString
	var errorMessage sql.NullString

	err := s.DB.QueryRowContext(ctx, query, logID).Scan(
		&entry.LogID,
		&entry.UserID,
		&jobseekerID,
		&entry.PromptText,
		&promptType,
		&modelUsed,
		&entry.Status,
		&gptResponse,
		&errorMessage,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select prompt log %d: %w", logID, err)
	}

	if jobseekerID.Valid {
		entry.JobseekerID = &jobseekerID.String
	}
	entry.PromptType = promptType.String
	entry.ModelUsed = modelUsed.String
	entry.GPTResponse = gptResponse.String
	entry.ErrorMessage = errorMessage.String

	return &entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableStringPtr(value *string) any {
	if value == nil || *value == "" {
		return nil
	}
	return *value
}
