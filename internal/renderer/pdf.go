package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"resumeforge/internal/config"
)

// PDFPrinter turns rendered HTML into PDF bytes. When a remote renderer URL
// is configured the work is delegated to the standalone pdf-renderer service;
// otherwise a local headless Chrome instance is used.
type PDFPrinter struct {
	remoteURL  string
	chromePath string
	timeout    time.Duration
}

// NewPDFPrinter creates a printer from the renderer configuration
func NewPDFPrinter(cfg *config.Config) *PDFPrinter {
	return &PDFPrinter{
		remoteURL:  cfg.Renderer.RemoteURL,
		chromePath: cfg.Renderer.ChromePath,
		timeout:    cfg.Renderer.Timeout,
	}
}

// Print compiles HTML to PDF. Returns the produced PDF bytes or an error.
func (p *PDFPrinter) Print(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, fmt.Errorf("empty HTML source")
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if p.remoteURL != "" {
		return p.printRemote(ctx, html)
	}
	return p.printLocal(ctx, html)
}

// printRemote delegates compilation to the standalone pdf-renderer service
func (p *PDFPrinter) printRemote(ctx context.Context, html string) ([]byte, error) {
	body, _ := json.Marshal(map[string]string{"html": html})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(p.remoteURL, "/")+"/compile", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("renderer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("renderer error: status=%d body=%s", resp.StatusCode, string(b))
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read renderer response: %w", err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("renderer returned empty pdf")
	}
	return pdf, nil
}

// printLocal runs a headless Chrome instance and prints the page to PDF
func (p *PDFPrinter) printLocal(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(p.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	chromeCtx, cancelChrome := chromedp.NewContext(allocCtx)
	defer cancelChrome()

	// Serve the page from a temp file so relative print CSS resolves
	tmpDir, err := os.MkdirTemp("", "resume-render-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("write html: %w", err)
	}

	var pdfBuf []byte
	err = chromedp.Run(chromeCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return pdfBuf, nil
}
