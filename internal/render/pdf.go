package render

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/tanakrit-dev/thaidoc/internal/document"
)

// PDFRenderer prints document HTML to PDF via headless Chromium.
type PDFRenderer struct {
	cfg document.Config
}

func NewPDFRenderer(cfg document.Config) PDFRenderer {
	return PDFRenderer{cfg: cfg}
}

// Render builds the HTML page and prints it. If Chromium is unavailable
// it returns an error so the caller can retry or fall back to HTML.
func (r PDFRenderer) Render(ctx context.Context, issued document.Issued, draft document.Draft, totals document.Totals) ([]byte, error) {
	html, err := HTML(issued, draft, totals)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if r.cfg.PDFChromiumPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.cfg.PDFChromiumPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	timeout := r.cfg.PDFTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	runCtx, cancelRun := chromedp.NewContext(allocCtx)
	defer cancelRun()
	runCtx, cancelTimeout := context.WithTimeout(runCtx, timeout)
	defer cancelTimeout()

	var pdfBuf []byte
	dataURL := "data:text/html," + url.PathEscape(html)
	err = chromedp.Run(runCtx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, perr := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if perr == nil {
				pdfBuf = buf
			}
			return perr
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp run failed: %w", err)
	}
	return pdfBuf, nil
}
