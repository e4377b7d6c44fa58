package scenario

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// PageSummary is what the log keeps of a page dump
type PageSummary struct {
	Title    string
	Headings []string
	Messages []string
}

// SummarizePage extracts the title, top-level headings and any storefront
// messages from page markup
func SummarizePage(markup string) (PageSummary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return PageSummary{}, err
	}

	summary := PageSummary{Title: strings.TrimSpace(doc.Find("title").First().Text())}
	doc.Find("h1").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			summary.Headings = append(summary.Headings, text)
		}
	})
	doc.Find(".message, .messages [role='alert'], .field-error, .mage-error").Each(func(_ int, s *goquery.Selection) {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			summary.Messages = append(summary.Messages, text)
		}
	})
	return summary, nil
}

// captureDiagnostics saves the page markup, and optionally a screenshot, to
// the artifacts directory. Failures here are logged and never replace the
// error that triggered the capture.
func (r *Runner) captureDiagnostics(ctx context.Context, name string, screenshot bool) {
	ctx = context.WithoutCancel(ctx)

	if screenshot {
		path := filepath.Join(r.cfg.ArtifactsDir, ScreenshotFile)
		if err := r.session.Screenshot(ctx, path); err != nil {
			r.logger.Warn("Failed to save screenshot", zap.String("path", path), zap.Error(err))
		} else {
			r.artifacts = append(r.artifacts, path)
			r.logger.Info("Saved screenshot", zap.String("path", path))
		}
	}

	markup, err := r.session.PageSource(ctx)
	if err != nil {
		r.logger.Warn("Failed to read page source", zap.Error(err))
		return
	}

	url, _ := r.session.URL(ctx)
	fields := []zap.Field{
		zap.String("url", url),
		zap.Int("markup_bytes", len(markup)),
	}
	if summary, err := SummarizePage(markup); err == nil {
		fields = append(fields,
			zap.String("title", summary.Title),
			zap.Strings("headings", summary.Headings),
			zap.Strings("messages", summary.Messages),
		)
	}

	path := filepath.Join(r.cfg.ArtifactsDir, name+"_error.html")
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		r.logger.Warn("Failed to save page source", zap.String("path", path), zap.Error(err))
	} else {
		r.artifacts = append(r.artifacts, path)
		fields = append(fields, zap.String("path", path))
	}

	r.logger.Error("Captured page source", fields...)
	r.logger.Debug("Page source", zap.String("markup", markup))
}
