package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"resumeforge/internal/config"
	"resumeforge/internal/llm"
	"resumeforge/internal/promptlog"
	"resumeforge/pkg/models"
)

type fakeStore struct {
	nextID    int64
	created   []promptlog.CreateParams
	updates   []promptlog.UpdateParams
	createErr error
	updateErr error
}

func (s *fakeStore) Create(_ context.Context, params promptlog.CreateParams) (int64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	s.created = append(s.created, params)
	s.nextID++
	return s.nextID, nil
}

func (s *fakeStore) Update(_ context.Context, _ int64, params promptlog.UpdateParams) error {
	s.updates = append(s.updates, params)
	return s.updateErr
}

func (s *fakeStore) GetByID(_ context.Context, _ int64) (*models.PromptLogEntry, error) {
	return nil, promptlog.ErrNotFound
}

type fakeCompleter struct {
	response string
	err      error
	requests []llm.CompletionRequest
}

func (c *fakeCompleter) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

type fakeRenderer struct {
	html string
	err  error
}

func (r *fakeRenderer) RenderHTML(_ *models.ResumeDocument) (string, error) {
	return r.html, r.err
}

type fakeCache struct {
	stored []int64
	err    error
}

func (c *fakeCache) StoreResult(_ context.Context, _ string, logID int64, _ *models.ResumeDocument) error {
	if c.err != nil {
		return c.err
	}
	c.stored = append(c.stored, logID)
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LLM.Model = "claude-3-haiku-20240307"
	cfg.LLM.Temperature = 0.7
	cfg.LLM.MaxTokens = 8192
	return cfg
}

const validResumeJSON = `{"full_name": "Ada Lovelace", "job_title": "Engineer", "email": "", "phone": "", "location": "", "summary": "Builds compilers", "experience": [], "projects": [], "education": [], "skills": ["Go"], "certifications": []}`

func TestGenerateHappyPath(t *testing.T) {
	store := &fakeStore{}
	completer := &fakeCompleter{response: validResumeJSON}
	cache := &fakeCache{}
	p := New(testConfig(), store, completer, &fakeRenderer{html: "<html></html>"}, cache)

	result, err := p.Generate(context.Background(), GenerateParams{Prompt: "build me a resume", UserID: "user-1"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if result.Document.FullName != "Ada Lovelace" {
		t.Fatalf("unexpected document: %+v", result.Document)
	}
	if result.RenderedHTML == "" {
		t.Fatal("expected rendered HTML")
	}

	// Log lifecycle: one pending create, one completed update carrying the raw response
	if len(store.created) != 1 || store.created[0].PromptType != models.PromptTypeFullResume {
		t.Fatalf("unexpected create calls: %+v", store.created)
	}
	if len(store.updates) != 1 || store.updates[0].Status != models.PromptStatusCompleted {
		t.Fatalf("unexpected update calls: %+v", store.updates)
	}
	if store.updates[0].GPTResponse == nil || *store.updates[0].GPTResponse != validResumeJSON {
		t.Fatal("completed update must carry the raw model response")
	}

	if len(cache.stored) != 1 {
		t.Fatalf("expected one cache write, got %d", len(cache.stored))
	}
}

func TestGenerateValidation(t *testing.T) {
	store := &fakeStore{}
	completer := &fakeCompleter{response: validResumeJSON}
	p := New(testConfig(), store, completer, nil, nil)

	cases := []struct {
		name   string
		params GenerateParams
	}{
		{"empty prompt", GenerateParams{Prompt: "   ", UserID: "u"}},
		{"missing user", GenerateParams{Prompt: "p"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Generate(context.Background(), tc.params)
			if KindOf(err) != KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	// Nothing external was touched
	if len(store.created) != 0 || len(completer.requests) != 0 {
		t.Fatal("validation failures must not reach the store or the model")
	}
}

func TestGenerateUpstreamFailureSettlesLogAsError(t *testing.T) {
	store := &fakeStore{}
	completer := &fakeCompleter{err: fmt.Errorf("api unavailable")}
	p := New(testConfig(), store, completer, nil, nil)

	_, err := p.Generate(context.Background(), GenerateParams{Prompt: "p", UserID: "u"})
	if KindOf(err) != KindUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}

	if len(store.updates) != 1 || store.updates[0].Status != models.PromptStatusError {
		t.Fatalf("expected one error update, got %+v", store.updates)
	}
	if store.updates[0].ErrorMessage == nil || *store.updates[0].ErrorMessage == "" {
		t.Fatal("error update must carry a non-empty message")
	}
}

func TestGenerateBadModelContentIsExtractionFailure(t *testing.T) {
	store := &fakeStore{}
	completer := &fakeCompleter{response: "I am unable to help with that."}
	p := New(testConfig(), store, completer, nil, nil)

	_, err := p.Generate(context.Background(), GenerateParams{Prompt: "p", UserID: "u"})
	if KindOf(err) != KindExtraction {
		t.Fatalf("expected extraction failure, got %v", err)
	}

	var pe *Error
	if !errors.As(err, &pe) || pe.Raw == "" {
		t.Fatal("extraction failure must retain the raw model text")
	}

	// The model did answer: the log entry stays completed
	if len(store.updates) != 1 || store.updates[0].Status != models.PromptStatusCompleted {
		t.Fatalf("expected completed update despite bad content, got %+v", store.updates)
	}
}

func TestGenerateStoreFailureIsPersistenceError(t *testing.T) {
	store := &fakeStore{createErr: fmt.Errorf("db down")}
	completer := &fakeCompleter{response: validResumeJSON}
	p := New(testConfig(), store, completer, nil, nil)

	_, err := p.Generate(context.Background(), GenerateParams{Prompt: "p", UserID: "u"})
	if KindOf(err) != KindPersistence {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if len(completer.requests) != 0 {
		t.Fatal("model must not be called when the prompt log cannot be created")
	}
}

func TestGenerateLogUpdateFailureDoesNotMaskResult(t *testing.T) {
	store := &fakeStore{updateErr: fmt.Errorf("update lost")}
	completer := &fakeCompleter{response: validResumeJSON}
	p := New(testConfig(), store, completer, nil, nil)

	result, err := p.Generate(context.Background(), GenerateParams{Prompt: "p", UserID: "u"})
	if err != nil {
		t.Fatalf("log settlement is best-effort, got %v", err)
	}
	if result.Document.FullName != "Ada Lovelace" {
		t.Fatalf("unexpected document: %+v", result.Document)
	}
}

func TestGenerateRenderFailureIsWarningOnly(t *testing.T) {
	store := &fakeStore{}
	completer := &fakeCompleter{response: validResumeJSON}
	p := New(testConfig(), store, completer, &fakeRenderer{err: fmt.Errorf("template broken")}, nil)

	result, err := p.Generate(context.Background(), GenerateParams{Prompt: "p", UserID: "u"})
	if err != nil {
		t.Fatalf("render failure must not fail generation: %v", err)
	}
	if result.RenderWarning == "" {
		t.Fatal("expected a render warning")
	}
	if result.RenderedHTML != "" {
		t.Fatal("no HTML should be returned when rendering failed")
	}
}

func TestGenerateCacheFailureIsSilent(t *testing.T) {
	store := &fakeStore{}
	completer := &fakeCompleter{response: validResumeJSON}
	p := New(testConfig(), store, completer, nil, &fakeCache{err: fmt.Errorf("redis gone")})

	if _, err := p.Generate(context.Background(), GenerateParams{Prompt: "p", UserID: "u"}); err != nil {
		t.Fatalf("cache failure must not fail generation: %v", err)
	}
}

func TestGenerateArrayKeepsFirstElement(t *testing.T) {
	store := &fakeStore{}
	completer := &fakeCompleter{response: `[` + validResumeJSON + `, {"full_name": "Second"}]`}
	p := New(testConfig(), store, completer, nil, nil)

	result, err := p.GenerateArray(context.Background(), GenerateParams{Prompt: "p", UserID: "u"})
	if err != nil {
		t.Fatalf("GenerateArray: %v", err)
	}
	if result.Document.FullName != "Ada Lovelace" {
		t.Fatalf("expected first element, got %+v", result.Document)
	}
	if store.created[0].PromptType != models.PromptTypeFullResumeArray {
		t.Fatalf("unexpected prompt type %q", store.created[0].PromptType)
	}
}

func TestGenerateArrayEmptyArrayFails(t *testing.T) {
	store := &fakeStore{}
	completer := &fakeCompleter{response: `[]`}
	p := New(testConfig(), store, completer, nil, nil)

	_, err := p.GenerateArray(context.Background(), GenerateParams{Prompt: "p", UserID: "u"})
	if KindOf(err) != KindExtraction {
		t.Fatalf("expected extraction failure for empty array, got %v", err)
	}
}

func TestUpdateSectionHappyPath(t *testing.T) {
	store := &fakeStore{}
	completer := &fakeCompleter{response: `{"summary": "Better summary"}`}
	p := New(testConfig(), store, completer, nil, nil)

	current := &models.ResumeDocument{FullName: "Ada Lovelace", Summary: "Old"}
	result, err := p.UpdateSection(context.Background(), UpdateSectionParams{
		Section:       "summary",
		Prompt:        "make it punchier",
		CurrentResume: current,
		UserID:        "u",
	})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}

	if result.Document.Summary != "Better summary" {
		t.Fatalf("unexpected summary %q", result.Document.Summary)
	}
	if current.Summary != "Old" {
		t.Fatal("input document was mutated")
	}
	if store.created[0].PromptType != "section_summary" {
		t.Fatalf("unexpected prompt type %q", store.created[0].PromptType)
	}

	// Two user turns: current document JSON, then the instruction
	req := completer.requests[0]
	if len(req.Messages) != 2 {
		t.Fatalf("expected 2 user messages, got %d", len(req.Messages))
	}
	if req.Messages[1].Content != "make it punchier" {
		t.Fatalf("second turn must be the instruction, got %q", req.Messages[1].Content)
	}
}

func TestUpdateSectionUnknownSection(t *testing.T) {
	p := New(testConfig(), &fakeStore{}, &fakeCompleter{}, nil, nil)

	_, err := p.UpdateSection(context.Background(), UpdateSectionParams{
		Section:       "hobbies",
		Prompt:        "p",
		CurrentResume: &models.ResumeDocument{},
		UserID:        "u",
	})
	if KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for unknown section, got %v", err)
	}
}

func TestUpdateSectionWrapperUnwrap(t *testing.T) {
	completer := &fakeCompleter{response: `{"div": {"summary": "Wrapped"}}`}
	p := New(testConfig(), &fakeStore{}, completer, nil, nil)

	result, err := p.UpdateSection(context.Background(), UpdateSectionParams{
		Section:       "summary",
		Prompt:        "p",
		CurrentResume: &models.ResumeDocument{},
		UserID:        "u",
	})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	if result.Document.Summary != "Wrapped" {
		t.Fatalf("expected unwrapped value, got %q", result.Document.Summary)
	}
}

func TestUpdateSectionMissingSectionInOutput(t *testing.T) {
	completer := &fakeCompleter{response: `{"experience": []}`}
	p := New(testConfig(), &fakeStore{}, completer, nil, nil)

	_, err := p.UpdateSection(context.Background(), UpdateSectionParams{
		Section:       "summary",
		Prompt:        "p",
		CurrentResume: &models.ResumeDocument{},
		UserID:        "u",
	})
	if KindOf(err) != KindSectionNotFound {
		t.Fatalf("expected section_not_found, got %v", err)
	}

	var pe *Error
	if !errors.As(err, &pe) || pe.Section != "summary" {
		t.Fatal("error must name the requested section")
	}
}

func TestUpdateSectionProseResponseFails(t *testing.T) {
	// The section contract is strict: embedded JSON inside prose is rejected
	completer := &fakeCompleter{response: `Sure: {"summary": "text"}`}
	p := New(testConfig(), &fakeStore{}, completer, nil, nil)

	_, err := p.UpdateSection(context.Background(), UpdateSectionParams{
		Section:       "summary",
		Prompt:        "p",
		CurrentResume: &models.ResumeDocument{},
		UserID:        "u",
	})
	if KindOf(err) != KindExtraction {
		t.Fatalf("expected extraction failure, got %v", err)
	}
}
