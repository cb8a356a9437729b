package browser

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/sammiviz/sammi/internal/domain"
)

// Snapshotter renders a page in headless Chrome and saves a PNG of it.
// Quality 100 yields PNG; lower values make chromedp encode JPEG.
type Snapshotter struct {
	Width   int64
	Height  int64
	Settle  time.Duration
	Timeout time.Duration
	Quality int
}

func NewSnapshotter() *Snapshotter {
	return &Snapshotter{
		Width:   1600,
		Height:  1000,
		Settle:  2 * time.Second,
		Timeout: 60 * time.Second,
		Quality: 100,
	}
}

// Capture loads target (a file path or URL) and writes a full-page PNG to out.
func (s *Snapshotter) Capture(ctx context.Context, target, out string) error {
	const op = "browser.snapshot"

	u, err := PageURL(target)
	if err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Path: target, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("allow-file-access-from-files", true),
		chromedp.WindowSize(int(s.Width), int(s.Height)),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var png []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate(u),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(s.Settle),
		chromedp.FullScreenshot(&png, s.Quality),
	)
	if err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: target, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: out, Err: err}
	}
	if err := os.WriteFile(out, png, 0o644); err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: out, Err: err}
	}
	return nil
}

// PageURL turns a local path into a file:// URL and passes URLs through.
func PageURL(target string) (string, error) {
	if u, err := url.Parse(target); err == nil && (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "file") {
		return target, nil
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("page %s: %w", abs, err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
