package promptlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"resumeforge/pkg/models"
)

func newMockStore(t *testing.T) (*PGStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPGStore(db), mock
}

func TestPGStoreCreateInsertsPendingEntry(t *testing.T) {
	store, mock := newMockStore(t)

	jobseeker := "js-1"
	mock.ExpectQuery("INSERT INTO resumeai_prompt_log").
		WithArgs(
			"user-1",
			"js-1",
			"build me a resume",
			"full_resume",
			"claude-3-haiku-20240307",
			models.PromptStatusPending,
		).
		WillReturnRows(sqlmock.NewRows([]string{"log_id"}).AddRow(int64(42)))

	logID, err := store.Create(context.Background(), CreateParams{
		UserID:      "user-1",
		JobseekerID: &jobseeker,
		PromptText:  "build me a resume",
		PromptType:  "full_resume",
		ModelUsed:   "claude-3-haiku-20240307",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if logID != 42 {
		t.Fatalf("expected log id 42, got %d", logID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreCreateNullsEmptyOptionals(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO resumeai_prompt_log").
		WithArgs(
			"user-1",
			nil, // jobseeker_id absent
			"prompt",
			nil, // prompt type is optional, stored as NULL
			nil, // model unknown at create time
			models.PromptStatusPending,
		).
		WillReturnRows(sqlmock.NewRows([]string{"log_id"}).AddRow(int64(7)))

	_, err := store.Create(context.Background(), CreateParams{
		UserID:     "user-1",
		PromptText: "prompt",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreUpdatePatchesOnlyProvidedFields(t *testing.T) {
	store, mock := newMockStore(t)

	response := `{"full_name": "Ada"}`
	mock.ExpectExec("UPDATE resumeai_prompt_log").
		WithArgs(int64(42), models.PromptStatusCompleted, response, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Update(context.Background(), 42, UpdateParams{
		Status:      models.PromptStatusCompleted,
		GPTResponse: &response,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreUpdateMissingRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE resumeai_prompt_log").
		WithArgs(int64(99), models.PromptStatusError, nil, sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	msg := "model unavailable"
	err := store.Update(context.Background(), 99, UpdateParams{
		Status:       models.PromptStatusError,
		ErrorMessage: &msg,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreGetByID(t *testing.T) {
	store, mock := newMockStore(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"log_id", "user_id", "jobseeker_id", "prompt_text", "prompt_type",
		"model_used", "status", "gpt_response", "error_message", "created_at", "updated_at",
	}).AddRow(int64(42), "user-1", nil, "prompt", "full_resume", "claude-3-haiku-20240307",
		models.PromptStatusCompleted, `{"full_name": "Ada"}`, nil, now, now)

	mock.ExpectQuery("SELECT (.+) FROM resumeai_prompt_log").
		WithArgs(int64(42)).
		WillReturnRows(rows)

	entry, err := store.GetByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if entry.LogID != 42 || entry.UserID != "user-1" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.JobseekerID != nil {
		t.Fatal("nil jobseeker_id must stay nil")
	}
	if entry.Status != models.PromptStatusCompleted {
		t.Fatalf("unexpected status %q", entry.Status)
	}
}

func TestPGStoreGetByIDNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM resumeai_prompt_log").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"log_id"}))

	_, err := store.GetByID(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
