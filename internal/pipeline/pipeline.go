package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resumeforge/internal/config"
	"resumeforge/internal/llm"
	"resumeforge/internal/llm/processors"
	"resumeforge/internal/logging"
	"resumeforge/internal/promptlog"
	"resumeforge/internal/resume"
	"resumeforge/pkg/models"
)

// Completer is the slice of the LLM manager the pipeline depends on
type Completer interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// Renderer turns a resume document into printable HTML
type Renderer interface {
	RenderHTML(doc *models.ResumeDocument) (string, error)
}

// ResultCache keeps the latest generated document per user for cheap
// re-fetching by the caller. Writes are best-effort.
type ResultCache interface {
	StoreResult(ctx context.Context, userID string, logID int64, doc *models.ResumeDocument) error
}

// GenerateParams are the inputs to the full-resume generation operations
type GenerateParams struct {
	Prompt      string
	UserID      string
	JobseekerID *string
}

// UpdateSectionParams are the inputs to the section-update operation
type UpdateSectionParams struct {
	Section       string
	Prompt        string
	CurrentResume *models.ResumeDocument
	UserID        string
	JobseekerID   *string
}

// GenerateResult is the outcome of a successful generation
type GenerateResult struct {
	Document      *models.ResumeDocument
	RenderedHTML  string
	LogID         int64
	RenderWarning string
}

// UpdateSectionResult is the outcome of a successful section update
type UpdateSectionResult struct {
	Section       string
	Document      *models.ResumeDocument
	RenderedHTML  string
	LogID         int64
	RenderWarning string
}

// Pipeline orchestrates prompt logging, the external model call, response
// extraction, section merging and rendering. All collaborators are injected;
// the pipeline holds no per-call state and is safe for concurrent use.
type Pipeline struct {
	store     promptlog.Store
	completer Completer
	extractor *processors.JSONExtractor
	renderer  Renderer
	cache     ResultCache
	config    *config.Config
	logger    logging.Logger
}

// New creates a resume pipeline. renderer and cache may be nil; rendering and
// result caching are then skipped.
func New(cfg *config.Config, store promptlog.Store, completer Completer, renderer Renderer, cache ResultCache) *Pipeline {
	return &Pipeline{
		store:     store,
		completer: completer,
		extractor: processors.NewJSONExtractor(),
		renderer:  renderer,
		cache:     cache,
		config:    cfg,
		logger:    logging.GetGlobalLogger(),
	}
}

// Generate runs the full-resume generation flow: log, call model, extract,
// render. The strict-extraction contract leaves unmentioned fields empty.
func (p *Pipeline) Generate(ctx context.Context, params GenerateParams) (*GenerateResult, error) {
	if strings.TrimSpace(params.Prompt) == "" || params.UserID == "" {
		return nil, newError(KindValidation, "prompt and user_id are required", nil)
	}

	logID, err := p.store.Create(ctx, promptlog.CreateParams{
		UserID:      params.UserID,
		JobseekerID: params.JobseekerID,
		PromptText:  params.Prompt,
		PromptType:  models.PromptTypeFullResume,
		ModelUsed:   p.config.LLM.Model,
	})
	if err != nil {
		return nil, newError(KindPersistence, "failed to record prompt log", err)
	}

	raw, err := p.callModel(ctx, logID, fullResumeSystemPrompt, []llm.Message{
		{Role: "user", Content: params.Prompt},
	})
	if err != nil {
		return nil, err
	}

	doc := &models.ResumeDocument{}
	if err := p.extractor.ExtractObject(raw, doc); err != nil {
		// The model answered; it just answered badly. The log entry stays
		// completed - this is a content error, not an upstream one.
		return nil, p.extractionError(logID, raw, err)
	}
	doc.Normalize()

	result := &GenerateResult{Document: doc, LogID: logID}
	result.RenderedHTML, result.RenderWarning = p.render(doc)

	p.cacheResult(ctx, params.UserID, logID, doc)

	return result, nil
}

// GenerateArray runs the array-form generation flow. The model returns a
// one-element array by contract; only the first element is kept.
func (p *Pipeline) GenerateArray(ctx context.Context, params GenerateParams) (*GenerateResult, error) {
	if strings.TrimSpace(params.Prompt) == "" || params.UserID == "" {
		return nil, newError(KindValidation, "prompt and user_id are required", nil)
	}

	logID, err := p.store.Create(ctx, promptlog.CreateParams{
		UserID:      params.UserID,
		JobseekerID: params.JobseekerID,
		PromptText:  params.Prompt,
		PromptType:  models.PromptTypeFullResumeArray,
		ModelUsed:   p.config.LLM.Model,
	})
	if err != nil {
		return nil, newError(KindPersistence, "failed to record prompt log", err)
	}

	raw, err := p.callModel(ctx, logID, arrayResumeSystemPrompt, []llm.Message{
		{Role: "user", Content: params.Prompt},
	})
	if err != nil {
		return nil, err
	}

	var docs []models.ResumeDocument
	if err := p.extractor.ExtractArray(raw, &docs); err != nil {
		return nil, p.extractionError(logID, raw, err)
	}
	if len(docs) == 0 {
		return nil, p.extractionError(logID, raw, fmt.Errorf("model returned an empty array"))
	}

	// The array wrapper is a model-output convention, not a multi-result
	// feature: any elements after the first are discarded.
	doc := &docs[0]
	doc.Normalize()

	p.cacheResult(ctx, params.UserID, logID, doc)

	return &GenerateResult{Document: doc, LogID: logID}, nil
}

// UpdateSection runs the single-section edit flow: log, call model with the
// current document and the instruction as separate turns, parse, merge,
// render.
func (p *Pipeline) UpdateSection(ctx context.Context, params UpdateSectionParams) (*UpdateSectionResult, error) {
	if params.Section == "" || strings.TrimSpace(params.Prompt) == "" || params.CurrentResume == nil || params.UserID == "" {
		return nil, newError(KindValidation, "section, prompt and current_resume are required", nil)
	}
	if !models.IsValidSection(params.Section) {
		return nil, newError(KindValidation, fmt.Sprintf("unknown resume section %q", params.Section), nil)
	}

	logID, err := p.store.Create(ctx, promptlog.CreateParams{
		UserID:      params.UserID,
		JobseekerID: params.JobseekerID,
		PromptText:  params.Prompt,
		PromptType:  models.PromptTypeSectionPrefix + params.Section,
		ModelUsed:   p.config.LLM.Model,
	})
	if err != nil {
		return nil, newError(KindPersistence, "failed to record prompt log", err)
	}

	currentJSON, err := json.Marshal(params.CurrentResume)
	if err != nil {
		return nil, newError(KindValidation, "current resume is not serializable", err)
	}

	raw, err := p.callModel(ctx, logID, sectionSystemPrompt(params.Section), []llm.Message{
		{Role: "user", Content: string(currentJSON)},
		{Role: "user", Content: params.Prompt},
	})
	if err != nil {
		return nil, err
	}

	// Narrower contract than generation: fences are stripped but the result
	// must parse as a single JSON object, no brace-scanning salvage.
	var modelOutput map[string]json.RawMessage
	if err := p.extractor.ParseObject(raw, &modelOutput); err != nil {
		return nil, p.extractionError(logID, raw, err)
	}

	merged, err := resume.MergeSection(params.Section, modelOutput, params.CurrentResume)
	if err != nil {
		var notFound *resume.SectionNotFoundError
		if errors.As(err, &notFound) {
			return nil, &Error{
				Kind:    KindSectionNotFound,
				Message: err.Error(),
				Section: params.Section,
				Err:     err,
			}
		}
		return nil, &Error{
			Kind:    KindExtraction,
			Message: "model output could not be merged",
			Section: params.Section,
			Raw:     raw,
			Err:     err,
		}
	}

	result := &UpdateSectionResult{
		Section:  params.Section,
		Document: merged,
		LogID:    logID,
	}
	result.RenderedHTML, result.RenderWarning = p.render(merged)

	p.cacheResult(ctx, params.UserID, logID, merged)

	return result, nil
}

// callModel sends the completion request and settles the prompt log entry.
// A model failure marks the entry status=error and returns an upstream
// error; a success marks it completed with the raw response. Log-update
// failures never mask the model outcome.
func (p *Pipeline) callModel(ctx context.Context, logID int64, system string, messages []llm.Message) (string, error) {
	raw, err := p.completer.Complete(ctx, llm.CompletionRequest{
		System:      system,
		Messages:    messages,
		Model:       p.config.LLM.Model,
		Temperature: p.config.LLM.Temperature,
		MaxTokens:   p.config.LLM.MaxTokens,
	})
	if err != nil {
		message := err.Error()
		p.settleLog(logID, promptlog.UpdateParams{
			Status:       models.PromptStatusError,
			ErrorMessage: &message,
		})
		return "", newError(KindUpstream, "language model call failed", err)
	}

	p.settleLog(logID, promptlog.UpdateParams{
		Status:      models.PromptStatusCompleted,
		GPTResponse: &raw,
	})

	return raw, nil
}

// settleLog patches the prompt log after the model call resolves. This is a
// best-effort secondary write: failures are reported through the logger and
// never surfaced as the primary error.
func (p *Pipeline) settleLog(logID int64, params promptlog.UpdateParams) {
	// Detached context: the log patch should survive a caller that has
	// already given up on the request.
	if err := p.store.Update(context.Background(), logID, params); err != nil {
		p.logger.Warn("Prompt log update failed", map[string]interface{}{
			"log_id": logID,
			"status": params.Status,
			"error":  err.Error(),
		})
	}
}

func (p *Pipeline) extractionError(logID int64, raw string, err error) *Error {
	p.logger.Warn("Model response was not recoverable as JSON", map[string]interface{}{
		"log_id":          logID,
		"response_length": len(raw),
	})
	return &Error{
		Kind:    KindExtraction,
		Message: "model response was not valid JSON",
		Raw:     raw,
		Err:     err,
	}
}

// render is best-effort: a renderer failure is reported as a warning
// alongside the parsed document, never as the primary error
func (p *Pipeline) render(doc *models.ResumeDocument) (string, string) {
	if p.renderer == nil {
		return "", ""
	}
	html, err := p.renderer.RenderHTML(doc)
	if err != nil {
		p.logger.Warn("Resume rendering failed", map[string]interface{}{"error": err.Error()})
		return "", err.Error()
	}
	return html, ""
}

func (p *Pipeline) cacheResult(ctx context.Context, userID string, logID int64, doc *models.ResumeDocument) {
	if p.cache == nil {
		return
	}
	if err := p.cache.StoreResult(ctx, userID, logID, doc); err != nil {
		p.logger.Debug("Result cache write failed", map[string]interface{}{
			"user_id": userID,
			"log_id":  logID,
			"error":   err.Error(),
		})
	}
}
