package exporter

import (
	"context"
	"errors"
	"fmt"

	"resumeforge/internal/config"
	"resumeforge/internal/logging"
	"resumeforge/internal/renderer"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// Sentinel errors to allow precise mapping in handlers
var (
	ErrRender        = errors.New("render_error")
	ErrStorageConfig = errors.New("storage_configuration")
	ErrUpload        = errors.New("upload_failed")
)

// ExportResume renders a resume into themed HTML, prints it to PDF and uploads
// the PDF to Spaces. Returns the public URL of the uploaded file.
func ExportResume(ctx context.Context, cfg *config.Config, resume *models.ResumeDocument, theme string, userID string) (string, error) {
	logger := logging.GetGlobalLogger()

	engine := renderer.NewEngine()
	html, err := engine.Render(resume, theme)
	if err != nil {
		logger.Error("Failed to render resume HTML for export", map[string]interface{}{
			"user_id": userID,
			"theme":   theme,
			"error":   err.Error(),
		})
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	printer := renderer.NewPDFPrinter(cfg)
	pdf, err := printer.Print(ctx, html)
	if err != nil {
		logger.Error("Failed to print resume PDF for export", map[string]interface{}{
			"user_id": userID,
			"theme":   theme,
			"error":   err.Error(),
		})
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	spaces, err := utils.NewSpacesClient(cfg)
	if err != nil {
		logger.Error("Storage not configured for export", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return "", fmt.Errorf("%w: %v", ErrStorageConfig, err)
	}

	url, err := spaces.UploadResumePDF(userID, pdf)
	if err != nil {
		logger.Error("Failed to upload resume PDF", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	return url, nil
}
