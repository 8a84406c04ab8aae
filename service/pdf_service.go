package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFService is the headless document-rendering collaborator: it navigates
// Chrome to a render URL and returns the printed PDF bytes. Treated as a
// black box by the export pipeline, with a single failure mode.
type PDFService struct {
	timeout time.Duration
}

// NewPDFService creates a PDF renderer with the default timeout.
func NewPDFService() *PDFService {
	return &PDFService{timeout: 30 * time.Second}
}

// Ensure PDFService implements DocumentRendererInterface
var _ DocumentRendererInterface = (*PDFService)(nil)

// detectChromePath detects the Chrome/Chromium executable, checking the
// CHROME_PATH env var first, then common installation paths.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// RenderPDF prints the document served at renderURL to A4 PDF bytes.
func (s *PDFService) RenderPDF(ctx context.Context, renderURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // required in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // 210mm x 297mm at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		// Wait for fonts and every image to settle before printing, so the
		// slot diagram and insert artwork are never captured half-loaded.
		chromedp.Evaluate(`
			(function() {
				return Promise.all([
					document.fonts.ready,
					Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
						return new Promise((resolve) => {
							if (img.complete && img.naturalWidth > 0 && img.naturalHeight > 0) {
								resolve();
								return;
							}
							const timeout = setTimeout(() => resolve(), 5000);
							img.onload = () => { clearTimeout(timeout); resolve(); };
							img.onerror = () => { clearTimeout(timeout); resolve(); };
						});
					}))
				]);
			})();
		`, nil),
		chromedp.Sleep(500*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 8.27" x 11.69". Margins live in the document CSS.
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdfBuf, nil
}
