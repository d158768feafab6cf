// Package pdfexport prints HTML pages to PDF through a locally installed Chromium.
package pdfexport

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// ErrNoBrowser is returned when no Chromium-family browser can be found or started.
var ErrNoBrowser = noBrowserError{}

type noBrowserError struct{}

func (noBrowserError) Error() string   { return "no browser available for PDF export" }
func (noBrowserError) HTTPStatus() int { return http.StatusServiceUnavailable }

// lookPath is swapped in tests.
var lookPath = launcher.LookPath

// RenderPDF loads html into a headless browser page and prints it using the page's own @page size.
func RenderPDF(ctx context.Context, html string) ([]byte, error) {
	bin, ok := lookPath()
	if !ok {
		return nil, ErrNoBrowser
	}

	// Leakless(false) keeps antivirus tools from quarantining the helper binary.
	l := launcher.New().Context(ctx).Bin(bin).Headless(true).Leakless(false)
	defer l.Cleanup()
	u, err := l.Launch()
	if err != nil {
		zap.L().Warn("browser launch failed", zap.String("bin", bin), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrNoBrowser, err)
	}
	defer l.Kill()

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("loading report html: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for report load: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("printing pdf: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading pdf stream: %w", err)
	}
	return data, nil
}

// OpenBrowser opens url in the user's default browser. Failures are only logged.
func OpenBrowser(url string) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("could not open browser", zap.String("url", url), zap.Any("panic", r))
		}
	}()
	launcher.Open(url)
}
