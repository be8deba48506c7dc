package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"resumeforge/internal/api/validation"
	"resumeforge/internal/config"
	"resumeforge/internal/exporter"
	"resumeforge/internal/logging"
	"resumeforge/internal/pipeline"
	"resumeforge/internal/promptlog"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

var resumeValidator = validator.New()

func init() {
	// Register shared resume validators
	validation.RegisterResumeValidators(resumeValidator)
}

// GenerateResumeHandler handles POST /api/v1/resume/generate
func GenerateResumeHandler(pl *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		logger.Info("Processing resume generation request", map[string]interface{}{
			"request_id": requestID,
			"endpoint":   "/api/v1/resume/generate",
			"method":     "POST",
		})

		var req models.GenerateResumeRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, requestID, "invalid_request", "Invalid request body: "+err.Error())
		}
		if err := resumeValidator.Struct(&req); err != nil {
			return badRequest(c, requestID, "validation_failed", "Request validation failed: "+err.Error())
		}

		result, err := pl.Generate(c.Request().Context(), pipeline.GenerateParams{
			Prompt:      req.Prompt,
			UserID:      req.UserID,
			JobseekerID: req.JobseekerID,
		})
		if err != nil {
			return pipelineError(c, requestID, err)
		}

		logger.Info("Resume generated successfully", map[string]interface{}{
			"request_id": requestID,
			"user_id":    req.UserID,
			"log_id":     result.LogID,
		})

		return c.JSON(http.StatusOK, models.GenerateResumeResponse{
			Success:       true,
			Document:      result.Document,
			RenderedHTML:  result.RenderedHTML,
			LogID:         result.LogID,
			RenderWarning: result.RenderWarning,
			RequestID:     requestID,
		})
	}
}

// GenerateResumeArrayHandler handles POST /api/v1/resume/generate-array. The
// model is prompted for an array payload; only the first document is returned.
func GenerateResumeArrayHandler(pl *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		logger.Info("Processing resume array generation request", map[string]interface{}{
			"request_id": requestID,
			"endpoint":   "/api/v1/resume/generate-array",
			"method":     "POST",
		})

		var req models.GenerateResumeRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, requestID, "invalid_request", "Invalid request body: "+err.Error())
		}
		if err := resumeValidator.Struct(&req); err != nil {
			return badRequest(c, requestID, "validation_failed", "Request validation failed: "+err.Error())
		}

		result, err := pl.GenerateArray(c.Request().Context(), pipeline.GenerateParams{
			Prompt:      req.Prompt,
			UserID:      req.UserID,
			JobseekerID: req.JobseekerID,
		})
		if err != nil {
			return pipelineError(c, requestID, err)
		}

		return c.JSON(http.StatusOK, models.GenerateResumeResponse{
			Success:       true,
			Document:      result.Document,
			RenderedHTML:  result.RenderedHTML,
			LogID:         result.LogID,
			RenderWarning: result.RenderWarning,
			RequestID:     requestID,
		})
	}
}

// UpdateResumeSectionHandler handles POST /api/v1/resume/section
func UpdateResumeSectionHandler(pl *pipeline.Pipeline) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		logger.Info("Processing resume section update request", map[string]interface{}{
			"request_id": requestID,
			"endpoint":   "/api/v1/resume/section",
			"method":     "POST",
		})

		var req models.UpdateResumeSectionRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, requestID, "invalid_request", "Invalid request body: "+err.Error())
		}
		if err := resumeValidator.Struct(&req); err != nil {
			return badRequest(c, requestID, "validation_failed", "Request validation failed: "+err.Error())
		}

		result, err := pl.UpdateSection(c.Request().Context(), pipeline.UpdateSectionParams{
			Section:       req.Section,
			Prompt:        req.Prompt,
			CurrentResume: req.CurrentResume,
			UserID:        req.UserID,
			JobseekerID:   req.JobseekerID,
		})
		if err != nil {
			return pipelineError(c, requestID, err)
		}

		logger.Info("Resume section updated successfully", map[string]interface{}{
			"request_id": requestID,
			"user_id":    req.UserID,
			"section":    req.Section,
			"log_id":     result.LogID,
		})

		return c.JSON(http.StatusOK, models.UpdateResumeSectionResponse{
			Success:       true,
			Section:       result.Section,
			Document:      result.Document,
			RenderedHTML:  result.RenderedHTML,
			LogID:         result.LogID,
			RenderWarning: result.RenderWarning,
			RequestID:     requestID,
		})
	}
}

// ExportResumeHandler handles POST /api/v1/resume/export to render a PDF and
// upload it to Spaces
func ExportResumeHandler(cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()
		c.Set("request_id", requestID)

		logger.Info("Processing resume export request", map[string]interface{}{
			"request_id": requestID,
			"endpoint":   "/api/v1/resume/export",
			"method":     "POST",
		})

		var req models.ExportResumeRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, requestID, "invalid_request", "Invalid request body: "+err.Error())
		}
		if err := resumeValidator.Struct(&req); err != nil {
			return badRequest(c, requestID, "validation_failed", "Request validation failed: "+err.Error())
		}

		url, err := exporter.ExportResume(c.Request().Context(), cfg, req.Resume, req.Theme, req.UserID)
		if err != nil {
			// Map well-known sentinel errors to stable codes
			code := "internal_error"
			msg := "Export failed"
			switch {
			case errors.Is(err, exporter.ErrRender):
				code = "render_error"
				msg = "Failed to render resume PDF"
			case errors.Is(err, exporter.ErrStorageConfig):
				code = "storage_configuration"
				msg = "Storage not configured"
			case errors.Is(err, exporter.ErrUpload):
				code = "upload_failed"
				msg = "Failed to upload export"
			}
			logger.Error("Resume export failed", map[string]interface{}{
				"request_id": requestID,
				"user_id":    req.UserID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     code,
				Message:   msg,
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, models.ExportResumeResponse{
			Success:   true,
			ExportURL: url,
			RequestID: requestID,
		})
	}
}

// ResultSource serves the most recent cached generation for a user.
type ResultSource interface {
	GetLatestResult(ctx context.Context, userID string) (*utils.CachedResult, error)
}

// GetLatestResumeHandler handles GET /api/v1/resume/latest. It returns the
// user's last generated document from the cache so clients can re-fetch it
// without replaying the model.
func GetLatestResumeHandler(cache ResultSource) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		c.Set("request_id", requestID)

		userID := c.QueryParam("user_id")
		if userID == "" {
			return badRequest(c, requestID, "validation_failed", "user_id query parameter is required")
		}

		if cache == nil {
			return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:     "cache_unavailable",
				Message:   "Result cache is not configured",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		entry, err := cache.GetLatestResult(c.Request().Context(), userID)
		if err != nil {
			logging.GetGlobalLogger().Error("Failed to read cached resume", map[string]interface{}{
				"request_id": requestID,
				"user_id":    userID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:     "cache_unavailable",
				Message:   "Result cache is unreachable",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}
		if entry == nil {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:     "not_found",
				Message:   "No cached resume for that user",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, entry)
	}
}

// GetPromptLogHandler handles GET /api/v1/resume/logs/:id
func GetPromptLogHandler(store promptlog.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()
		c.Set("request_id", requestID)

		logID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return badRequest(c, requestID, "invalid_request", "Log id must be an integer")
		}

		entry, err := store.GetByID(c.Request().Context(), logID)
		if err != nil {
			if errors.Is(err, promptlog.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse{
					Error:     "not_found",
					Message:   "No prompt log with that id",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "persistence_error",
				Message:   "Failed to load prompt log",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, entry)
	}
}

// badRequest writes a 400 response in the standard error envelope
func badRequest(c echo.Context, requestID, code, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}

// pipelineError maps a pipeline error kind to an HTTP status and writes the
// standard error envelope
func pipelineError(c echo.Context, requestID string, err error) error {
	logger := logging.GetGlobalLogger()

	kind := pipeline.KindOf(err)
	if kind == "" {
		kind = "internal_error"
	}
	status := http.StatusInternalServerError
	switch kind {
	case pipeline.KindValidation:
		status = http.StatusBadRequest
	case pipeline.KindUpstream:
		status = http.StatusBadGateway
	case pipeline.KindExtraction, pipeline.KindSectionNotFound:
		status = http.StatusUnprocessableEntity
	case pipeline.KindPersistence, pipeline.KindRender:
		status = http.StatusInternalServerError
	}

	logger.Error("Resume pipeline request failed", map[string]interface{}{
		"request_id": requestID,
		"kind":       string(kind),
		"error":      err.Error(),
	})

	return c.JSON(status, models.ErrorResponse{
		Error:     string(kind),
		Message:   err.Error(),
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}
